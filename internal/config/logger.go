package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger builds the stderr logger. quiet forces the error level.
func NewLogger(cfg LogConfig, quiet bool) *slog.Logger {
	return newLogger(os.Stderr, cfg, quiet)
}

func newLogger(w io.Writer, cfg LogConfig, quiet bool) *slog.Logger {
	level := ParseLevel(cfg.Level)
	if quiet {
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ParseLevel maps debug|info|warn|error to a level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
