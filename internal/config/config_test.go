package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 30*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 20000, cfg.Runner.Iterations)
	assert.Equal(t, 4, cfg.Runner.Workers)
	assert.Equal(t, "outputs", cfg.Runner.OutputDir)
	assert.Equal(t, uint64(0), cfg.Runner.Seed)
	assert.Equal(t, 100000, cfg.Server.MaxIterations)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("RUN_ITERATIONS", "500")
	t.Setenv("RUN_WORKERS", "2")
	t.Setenv("RUN_SEED", "42")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 500, cfg.Runner.Iterations)
	assert.Equal(t, 2, cfg.Runner.Workers)
	assert.Equal(t, uint64(42), cfg.Runner.Seed)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("STEPPE_TEST_STR", "value")
	t.Setenv("STEPPE_TEST_INT", "7")
	t.Setenv("STEPPE_TEST_BOOL", "true")

	assert.Equal(t, "value", GetEnv("STEPPE_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", GetEnv("STEPPE_TEST_MISSING", "fallback"))
	assert.Equal(t, 7, GetEnvAsInt("STEPPE_TEST_INT", 1))
	assert.Equal(t, 1, GetEnvAsInt("STEPPE_TEST_MISSING", 1))
	assert.True(t, GetEnvAsBool("STEPPE_TEST_BOOL", false))
	assert.False(t, GetEnvAsBool("STEPPE_TEST_MISSING", false))
}
