// Package metrics exposes Prometheus instrumentation for the registry and the
// scaffold materializer. Collectors live on a per-process registry so tests can
// build isolated instances.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "agent_scaffold"

// Result labels for registry operations.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Metrics holds the service collectors and the registry they are bound to.
type Metrics struct {
	registry   *prometheus.Registry
	agents     prometheus.Gauge
	operations *prometheus.CounterVec
	artifacts  *prometheus.CounterVec
}

// New creates a registry with process and Go runtime collectors plus the service collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	m := &Metrics{
		registry: reg,
		agents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "agents",
			Help:      "Number of agents currently registered",
		}),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "registry",
				Name:      "operations_total",
				Help:      "Registry operations by operation and result",
			},
			[]string{"operation", "result"},
		),
		artifacts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "artifacts_total",
				Help:      "Reconciled scaffold artifacts by file and action",
			},
			[]string{"artifact", "action"},
		),
	}

	reg.MustRegister(m.agents, m.operations, m.artifacts)
	return m
}

// Operation counts one registry operation outcome.
func (m *Metrics) Operation(operation, result string) {
	m.operations.WithLabelValues(operation, result).Inc()
}

// Agents sets the registered agent gauge.
func (m *Metrics) Agents(n int) {
	m.agents.Set(float64(n))
}

// Artifact counts one reconciled artifact.
func (m *Metrics) Artifact(name, action string) {
	m.artifacts.WithLabelValues(name, action).Inc()
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
