// Package config loads the process configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config covers both serve mode (HTTP timeouts, run limits) and the suite
// runner's defaults. Every field is overridable through its environment
// variable.
type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	HTTP        struct {
		Port            int           `env:"HTTP_PORT" envDefault:"8080"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
		IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	}
	Logging struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
		Output string `env:"LOG_OUTPUT" envDefault:"stderr"`
	}
	Runner struct {
		// Iterations is the per-run trial budget.
		Iterations int `env:"RUN_ITERATIONS" envDefault:"20000"`
		// Workers bounds how many benchmark x algorithm pairs run at once.
		Workers int `env:"RUN_WORKERS" envDefault:"4"`
		// OutputDir receives the CSV summary and per-run traces.
		OutputDir string `env:"RUN_OUTPUT_DIR" envDefault:"outputs"`
		// Seed seeds the stochastic algorithms; 0 derives one per run.
		Seed uint64 `env:"RUN_SEED" envDefault:"0"`
	}
	Server struct {
		// MaxIterations caps the budget a remote run request may ask for.
		MaxIterations int `env:"SERVER_MAX_ITERATIONS" envDefault:"100000"`
	}
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.Environment == "development" && cfg.Logging.Level == "" {
		cfg.Logging.Level = "debug"
	}

	return cfg, nil
}

// GetEnv returns the value of the environment variable or the default value.
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt returns the value of the environment variable as int or the
// default value.
func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// GetEnvAsBool returns the value of the environment variable as bool or the
// default value.
func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
