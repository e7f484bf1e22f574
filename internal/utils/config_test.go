package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigFrom_ReadsYAML(t *testing.T) {
	path := writeConfig(t, `
DB_HOST: "db.internal"
MEAL_PRICE: "45000"
IsProd: "true"
PLAN_CACHE_TTL: "2m"
`)
	require.NoError(t, LoadConfigFrom(path))

	assert.Equal(t, "db.internal", GetConfig("DB_HOST"))
	assert.Equal(t, 45000, GetConfigInt("MEAL_PRICE", 0))
	assert.True(t, GetConfigBool("IS_PROD"))
	assert.Equal(t, 2*time.Minute, GetConfigDuration("PLAN_CACHE_TTL", time.Minute))
	assert.Equal(t, "", GetConfig("UNKNOWN_KEY"))
	assert.Equal(t, "db.internal", AppConfig().DBHost)
}

func TestLoadConfigFrom_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `DB_HOST: "from-file"`)
	t.Setenv("DB_HOST", "from-env")

	require.NoError(t, LoadConfigFrom(path))
	assert.Equal(t, "from-env", GetConfig("DB_HOST"))
}

func TestLoadConfigFrom_MissingFileUsesEnvironment(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	require.NoError(t, LoadConfigFrom(filepath.Join(t.TempDir(), "absent.yaml")))
	assert.Equal(t, "redis://localhost:6379/0", GetConfig("REDIS_URL"))
}

func TestLoadConfigFrom_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "DB_HOST: [unterminated")
	assert.Error(t, LoadConfigFrom(path))
}

func TestTypedHelpersFallback(t *testing.T) {
	require.NoError(t, LoadConfigFrom(writeConfig(t, `MEAL_PRICE: "abc"`)))

	assert.Equal(t, 30000, GetConfigInt("MEAL_PRICE", 30000))
	assert.False(t, GetConfigBool("IsProd"))
	assert.Equal(t, time.Minute, GetConfigDuration("PLAN_CACHE_TTL", time.Minute))
}

func TestLocation(t *testing.T) {
	require.NoError(t, LoadConfigFrom(writeConfig(t, `APP_TIMEZONE: "UTC"`)))
	assert.Equal(t, time.UTC, Location())

	require.NoError(t, LoadConfigFrom(writeConfig(t, `APP_TIMEZONE: "Mars/Olympus"`)))
	assert.Equal(t, time.UTC, Location())
}

func TestValidatorCustomTags(t *testing.T) {
	InitValidator()
	type payload struct {
		Date string `validate:"isodate"`
		Time string `validate:"clock"`
	}

	assert.NoError(t, Validate.Struct(payload{Date: "2026-03-01", Time: "11:30"}))
	assert.Error(t, Validate.Struct(payload{Date: "01/03/2026", Time: "11:30"}))
	assert.Error(t, Validate.Struct(payload{Date: "2026-03-01", Time: "24:00"}))
}
