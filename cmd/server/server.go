package main

import (
	"fmt"
	"time"

	"github.com/JaimeStill/agent-scaffold/internal/config"
	"github.com/JaimeStill/agent-scaffold/internal/routes"
	"github.com/JaimeStill/agent-scaffold/internal/server"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	runtime *Runtime
	domain  *Domain
	http    server.System
}

// NewServer creates and initializes the service with all subsystems.
func NewServer(cfg *config.Config) (*Server, error) {
	runtime := NewRuntime(cfg)

	domain, err := NewDomain(runtime, cfg)
	if err != nil {
		return nil, err
	}

	routeSys := routes.New(runtime.Logger)
	if err := registerRoutes(routeSys, runtime, domain, cfg); err != nil {
		return nil, fmt.Errorf("route registration failed: %w", err)
	}

	handler := buildMiddleware(runtime, cfg).Apply(routeSys.Build())

	runtime.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", version,
	)

	return &Server{
		runtime: runtime,
		domain:  domain,
		http:    server.New(&cfg.Server, handler, runtime.Logger),
	}, nil
}

// Addr returns the address the HTTP listener is bound to.
func (s *Server) Addr() string {
	return s.http.Addr()
}

// Start begins all subsystems and returns once the listener is bound.
func (s *Server) Start() error {
	s.runtime.Logger.Info("starting service")

	if err := s.domain.Start(s.runtime); err != nil {
		return err
	}

	if err := s.http.Start(s.runtime.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.runtime.Lifecycle.WaitForStartup()
		s.runtime.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown gracefully stops all subsystems within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.runtime.Logger.Info("initiating shutdown")
	return s.runtime.Lifecycle.Shutdown(timeout)
}
