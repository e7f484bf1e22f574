package domain

const (
	Band1000To1200 = "1000-1200"
	Band1400To1600 = "1400-1600"
	Band1800To2000 = "1800-2000"
	Band2200To2500 = "2200-2500"
)

// CalorieBands lists the band labels from lowest to highest.
var CalorieBands = []string{Band1000To1200, Band1400To1600, Band1800To2000, Band2200To2500}

func CalorieBand(calories int) string {
	switch {
	case calories >= 2100:
		return Band2200To2500
	case calories >= 1700:
		return Band1800To2000
	case calories >= 1300:
		return Band1400To1600
	default:
		return Band1000To1200
	}
}

func IsCalorieBand(label string) bool {
	for _, band := range CalorieBands {
		if band == label {
			return true
		}
	}
	return false
}

// EffectiveCalories resolves the calorie target used for planning.
func EffectiveCalories(orderCalories, customerCalories int) int {
	if orderCalories > 0 {
		return orderCalories
	}
	if customerCalories > 0 {
		return customerCalories
	}
	return DefaultCalories
}
