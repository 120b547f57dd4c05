// Package logging provides structured logging configuration using zerolog.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level string

	// Format selects the output format: "json" (default) or "console".
	Format string

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "json",
		Output: os.Stderr,
	}
}

// Setup configures the global zerolog logger and returns it.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: output}
	}

	logger := zerolog.New(output).With().Timestamp().Logger()
	log.Logger = logger

	return logger
}

// parseLevel converts a level string to a zerolog.Level.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: Detailed information for debugging
//   - Cache probe results (hit/miss, distance, latency)
//   - Record serialization and backend writes
//
// Info: Normal operation events
//   - Recorder backend selection at startup
//   - Shadow pipeline enabled/disabled state
//
// Warn: Warning conditions that don't prevent operation
//   - Cache probe failures (treated as miss)
//   - Record writes falling back or dropped
//   - Background task queue saturation
//
// Error: Error conditions requiring attention
//   - Configuration errors at startup
//
// Context Fields:
//   - request_id: Shadow record identifier
//   - cache_hit: Boolean probe outcome
//   - distance: Cache-reported vector distance
//   - llm_latency_ms / cache_latency_ms: Wall-clock durations
//   - backend: Recorder backend ("redis" or "file")
//   - operation: LangCache API operation (health, search, add_entry, ...)
