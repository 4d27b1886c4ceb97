// Package logging provides JSON-lines structured logging for editorlink.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strconv"
)

// Config configures the structured logger.
type Config struct {
	// Output is the writer for log output (default: os.Stderr)
	Output io.Writer

	// Level is the minimum log level (default: LevelInfo)
	Level slog.Level

	// Debug enables debug level logging (overrides Level)
	Debug bool
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: os.Stderr,
		Level:  slog.LevelInfo,
		Debug:  false,
	}
}

// New creates a new JSON-lines structured logger.
//
// Log levels:
//   - debug: per-record tracing (enabled via the profile's verbose flag or EDITORLINK_DEBUG=1)
//   - info: session start, bootstrap, session end
//   - warn: non-fatal issues (record spawn failures, history write failures)
//   - error: fatal issues requiring attention
func New(cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	level := cfg.Level
	if cfg.Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "ts"
			}
			return a
		},
	}

	handler := slog.NewJSONHandler(output, opts)
	return slog.New(handler)
}

// NewFromEnv creates a logger configured from the environment.
// EDITORLINK_DEBUG=1 enables debug logging; verbose forces it.
func NewFromEnv(verbose bool) *slog.Logger {
	cfg := DefaultConfig()
	cfg.Debug = verbose
	if v := os.Getenv("EDITORLINK_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			cfg.Debug = true
		}
	}
	return New(cfg)
}
