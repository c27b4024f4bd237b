package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// logConfig holds logging settings read from the environment.
type logConfig struct {
	Level  string `env:"HBNB_LOG_LEVEL" envDefault:"warn"`
	Format string `env:"HBNB_LOG_FORMAT" envDefault:"text"`
}

// loggerFromEnv builds the process logger from HBNB_LOG_LEVEL and
// HBNB_LOG_FORMAT, writing to w.
func loggerFromEnv(w io.Writer) (*slog.Logger, error) {
	var cfg logConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return newLogger(cfg.Level, cfg.Format, w), nil
}

// newLogger creates a logger at the named level (debug, info, warn, error;
// anything else means info) using a text or json handler.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
