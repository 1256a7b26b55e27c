// Package monitoring provides the diagnostic logger used for expected
// degeneracies (empty endfoot meshes, zero extents) that are reported but
// never raised as errors.
package monitoring

import (
	"log/slog"
	"os"
	"strings"
)

// defaultLogger is shared by every package and replaced through SetLogger
var defaultLogger *slog.Logger

// Setup builds the default logger on stderr. LOG_LEVEL (debug, info, warn, error)
// sets the level, LOG_FORMAT=json switches to JSON output.
func Setup() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	defaultLogger = slog.New(handler)
	return defaultLogger
}

// L returns the default logger, set up on first use
func L() *slog.Logger {
	if defaultLogger == nil {
		return Setup()
	}
	return defaultLogger
}

// SetLogger replaces the default logger. Passing nil mutes it.
func SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	defaultLogger = logger
}
