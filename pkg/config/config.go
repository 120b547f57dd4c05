// Package config handles loading and validation of shadow mode configuration
// from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the process-wide shadow mode configuration. It is constructed
// once at startup and passed explicitly into each component; packages must not
// read the environment themselves.
type Config struct {
	// ShadowMode enables the background comparison pipeline.
	ShadowMode bool `envconfig:"LANGCACHE_SHADOW_MODE" default:"false"`

	// APIKey is the LangCache bearer credential.
	APIKey string `envconfig:"LANGCACHE_API_KEY"`

	// CacheID identifies the target cache instance.
	CacheID string `envconfig:"LANGCACHE_CACHE_ID"`

	// BaseURL is the LangCache API base URL.
	BaseURL string `envconfig:"LANGCACHE_BASE_URL" default:"https://api.langcache.com"`

	// TimeoutSeconds bounds each cache HTTP call.
	TimeoutSeconds int `envconfig:"LANGCACHE_TIMEOUT" default:"10"`

	// RedisURL is the preferred shadow record store. Empty disables the
	// Redis backend without disabling shadow mode.
	RedisURL string `envconfig:"REDIS_URL" default:"redis://localhost:6379"`

	// ShadowLogFile is the fallback append-only record log.
	ShadowLogFile string `envconfig:"LANGCACHE_SHADOW_LOG" default:"shadow_mode.log"`

	// Logging configuration.
	LogLevel  string `envconfig:"LANGCACHE_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LANGCACHE_LOG_FORMAT" default:"json"`
}

// Load reads configuration from environment variables and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("processing env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for consistency. Credentials are only
// required when shadow mode is actually on; a disabled pipeline must load
// cleanly with an empty environment.
func (c Config) Validate() error {
	var errs []string

	if c.ShadowMode {
		if c.APIKey == "" {
			errs = append(errs, "LANGCACHE_API_KEY is required when shadow mode is enabled")
		}
		if c.CacheID == "" {
			errs = append(errs, "LANGCACHE_CACHE_ID is required when shadow mode is enabled")
		}
		if c.BaseURL == "" {
			errs = append(errs, "LANGCACHE_BASE_URL must not be empty")
		}
	}

	if c.TimeoutSeconds < 1 {
		errs = append(errs, fmt.Sprintf("LANGCACHE_TIMEOUT must be at least 1 second (got %d)", c.TimeoutSeconds))
	}

	if c.ShadowLogFile == "" {
		errs = append(errs, "LANGCACHE_SHADOW_LOG must not be empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.LogLevel] {
		errs = append(errs, fmt.Sprintf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel))
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[c.LogFormat] {
		errs = append(errs, fmt.Sprintf("invalid log format: %s (must be json or console)", c.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// Timeout returns the cache request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
