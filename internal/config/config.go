package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration for the hogar backend.
// Environment variables are parsed from the HOGAR_ prefix.
type Config struct {
	// DBDriver selects the store implementation: sqlite or postgres.
	DBDriver string `envconfig:"DB_DRIVER" default:"sqlite"`

	// SQLitePath is the database file location for the sqlite driver.
	SQLitePath string `envconfig:"SQLITE_PATH" default:"data/hogar.db"`

	// PostgresDSN is required when DBDriver is postgres.
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Completion endpoint (local LLM) configuration
	LLMURL   string `envconfig:"LLM_URL" default:"http://localhost:11434"`
	LLMModel string `envconfig:"LLM_MODEL" default:"llama3.2"`

	// LLMTimeoutSeconds bounds a single completion call. A slow call blocks
	// only the request that made it.
	LLMTimeoutSeconds int `envconfig:"LLM_TIMEOUT_SECONDS" default:"60"`

	// ContextCacheTTLMinutes is the expiry window of the per-user assistant
	// context cache. The cache is an optimization, never a correctness
	// dependency.
	ContextCacheTTLMinutes int `envconfig:"CONTEXT_CACHE_TTL_MINUTES" default:"60"`

	// Health checker cadence
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"5"`
}

// Validate checks driver selection and required companion settings.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("HOGAR_SQLITE_PATH is required for the sqlite driver")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("HOGAR_POSTGRES_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	return nil
}

// New creates a Config by parsing HOGAR_-prefixed environment variables.
// Example: HOGAR_HTTP_PORT, HOGAR_DB_DRIVER, HOGAR_LLM_URL.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("HOGAR", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
