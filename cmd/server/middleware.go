package main

import (
	"github.com/JaimeStill/agent-scaffold/internal/config"
	"github.com/JaimeStill/agent-scaffold/internal/middleware"
)

// buildMiddleware creates the middleware stack. The first entry wraps all others.
func buildMiddleware(runtime *Runtime, cfg *config.Config) middleware.System {
	middlewareSys := middleware.New()
	middlewareSys.Use(middleware.TrimSlash())
	middlewareSys.Use(middleware.RequestID())
	middlewareSys.Use(middleware.Logger(runtime.Logger))
	middlewareSys.Use(middleware.CORS(&cfg.CORS))
	middlewareSys.Use(middleware.MaxBody(cfg.Server.MaxBodySizeBytes()))
	return middlewareSys
}
