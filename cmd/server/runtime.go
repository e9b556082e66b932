package main

import (
	"log/slog"

	"github.com/JaimeStill/agent-scaffold/internal/config"
	"github.com/JaimeStill/agent-scaffold/internal/lifecycle"
	"github.com/JaimeStill/agent-scaffold/internal/logger"
	"github.com/JaimeStill/agent-scaffold/internal/metrics"
)

// Runtime holds the process-wide infrastructure shared by every subsystem.
type Runtime struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
}

func NewRuntime(cfg *config.Config) *Runtime {
	return &Runtime{
		Lifecycle: lifecycle.New(),
		Logger:    logger.New(&cfg.Logging).Logger(),
		Metrics:   metrics.New(),
	}
}
