package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalorieBandEdges(t *testing.T) {
	cases := []struct {
		calories int
		want     string
	}{
		{0, Band1000To1200},
		{1299, Band1000To1200},
		{1300, Band1400To1600},
		{1699, Band1400To1600},
		{1700, Band1800To2000},
		{2099, Band1800To2000},
		{2100, Band2200To2500},
		{3000, Band2200To2500},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CalorieBand(tc.calories), "calories %d", tc.calories)
	}
}

func TestEffectiveCalories(t *testing.T) {
	assert.Equal(t, 1800, EffectiveCalories(1800, 2200))
	assert.Equal(t, 2200, EffectiveCalories(0, 2200))
	assert.Equal(t, DefaultCalories, EffectiveCalories(0, 0))
	assert.Equal(t, 1600, EffectiveCalories(0, 0))
	assert.Equal(t, Band1400To1600, CalorieBand(EffectiveCalories(0, 0)))
}

func TestIsCalorieBand(t *testing.T) {
	for _, band := range CalorieBands {
		assert.True(t, IsCalorieBand(band))
	}
	assert.False(t, IsCalorieBand("1200-1400"))
	assert.False(t, IsCalorieBand(""))
}
