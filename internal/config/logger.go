package config

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds the structured logger for the configured LOG_LEVEL.
// Production uses JSON output, everything else text.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(c.App.LogLevel)}

	var h slog.Handler
	if c.IsProduction() {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With("service", "portfolio", "version", c.App.Version)
}

// ParseLevel converts a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
