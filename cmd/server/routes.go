package main

import (
	"net/http"

	"github.com/JaimeStill/agent-scaffold/internal/agents"
	"github.com/JaimeStill/agent-scaffold/internal/config"
	"github.com/JaimeStill/agent-scaffold/internal/lifecycle"
	"github.com/JaimeStill/agent-scaffold/internal/routes"
	"github.com/JaimeStill/agent-scaffold/pkg/openapi"
	"github.com/JaimeStill/agent-scaffold/web/docs"
)

// registerRoutes configures all HTTP routes for the service.
func registerRoutes(r routes.System, runtime *Runtime, domain *Domain, cfg *config.Config) error {
	agentHandler := agents.NewHandler(domain.Agents, runtime.Logger, cfg.API.BasePath)
	r.RegisterGroup(agentHandler.Routes())

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: handleHealthCheck,
		OpenAPI: &openapi.Operation{
			Summary: "Health check endpoint",
			Tags:    []string{"Infrastructure"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Service is healthy"},
			},
		},
	})

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/readyz",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			handleReadinessCheck(w, runtime.Lifecycle)
		},
		OpenAPI: &openapi.Operation{
			Summary: "Readiness check endpoint",
			Tags:    []string{"Infrastructure"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Service is ready"},
				503: {Description: "Service not ready"},
			},
		},
	})

	if cfg.Metrics.IsEnabled() {
		r.RegisterRoute(routes.Route{
			Method:  "GET",
			Pattern: cfg.Metrics.Path,
			Handler: runtime.Metrics.Handler().ServeHTTP,
			OpenAPI: &openapi.Operation{
				Summary: "Prometheus metrics",
				Tags:    []string{"Infrastructure"},
				Responses: map[int]*openapi.Response{
					200: {Description: "Metrics in text exposition format"},
				},
			},
		})
	}

	components := openapi.NewComponents()
	components.AddSchemas(agents.Operations.Schemas())

	specBytes, err := openapi.MarshalJSON(generateSpec(r, components))
	if err != nil {
		return err
	}

	specURL := cfg.API.BasePath + "/openapi.json"
	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: specURL,
		Handler: serveOpenAPISpec(specBytes),
	})

	docsHandler, err := docs.NewHandler(specURL)
	if err != nil {
		return err
	}
	r.RegisterGroup(docsHandler.Routes())

	return nil
}

// handleHealthCheck responds with OK status for health monitoring.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func handleReadinessCheck(w http.ResponseWriter, ready lifecycle.ReadinessChecker) {
	if !ready.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("NOT READY"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}

func serveOpenAPISpec(spec []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(spec)
	}
}
