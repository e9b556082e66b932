// Package logger provides structured logging configuration and initialization.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/agent-scaffold/internal/config"
)

// System provides access to the configured logger instance.
type System interface {
	Logger() *slog.Logger
}

type logger struct {
	logger *slog.Logger
}

// New creates a logger system writing to stdout with the specified configuration.
func New(cfg *config.LoggingConfig) System {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter creates a logger system writing to w.
// Every record carries service=agent-scaffold.
func NewWithWriter(cfg *config.LoggingConfig, w io.Writer) System {
	opts := &slog.HandlerOptions{
		Level: cfg.Level.ToSlogLevel(),
	}

	var handler slog.Handler
	if cfg.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &logger{
		logger: slog.New(handler).With("service", "agent-scaffold"),
	}
}

// Logger returns the configured slog.Logger instance.
func (l *logger) Logger() *slog.Logger {
	return l.logger
}
