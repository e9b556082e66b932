package main

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/agent-scaffold/internal/config"
	"github.com/JaimeStill/agent-scaffold/pkg/openapi"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{
		Logging:  config.LoggingConfig{Level: config.LogLevelError},
		Scaffold: config.ScaffoldConfig{BasePath: filepath.Join(t.TempDir(), "agents")},
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	return cfg
}

func startServer(t *testing.T, cfg *config.Config) (*Server, string) {
	t.Helper()

	srv, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer() failed: %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	t.Cleanup(func() { srv.Shutdown(5 * time.Second) })

	srv.runtime.Lifecycle.WaitForStartup()
	return srv, "http://" + srv.Addr()
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestServer_Probes(t *testing.T) {
	_, base := startServer(t, testConfig(t))

	if status, body := get(t, base+"/healthz"); status != http.StatusOK || body != "OK" {
		t.Errorf("/healthz = %d %q", status, body)
	}
	if status, body := get(t, base+"/readyz"); status != http.StatusOK || body != "READY" {
		t.Errorf("/readyz = %d %q", status, body)
	}
}

func TestServer_AgentRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	_, base := startServer(t, cfg)

	resp, err := http.Post(base+"/api/agents", "application/json",
		strings.NewReader(`{"name":"bot1","imports":["numpy"],"env_vars":{"A":"1"}}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("response missing X-Request-ID")
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	dir := filepath.Join(cfg.Scaffold.BasePath, created.ID)
	for _, name := range []string{"agent.py", ".env", "environment.yml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not materialized: %v", name, err)
		}
	}

	if status, _ := get(t, base+"/api/agents/"+created.ID+"/"); status != http.StatusOK {
		t.Errorf("GET with trailing slash = %d, want %d after redirect", status, http.StatusOK)
	}
}

func TestServer_OpenAPI(t *testing.T) {
	_, base := startServer(t, testConfig(t))

	status, body := get(t, base+"/api/openapi.json")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}

	var spec openapi.Spec
	if err := json.Unmarshal([]byte(body), &spec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, path := range []string{"/api/agents", "/api/agents/{id}", "/healthz", "/readyz", "/metrics"} {
		if spec.Paths[path] == nil {
			t.Errorf("document missing path %s", path)
		}
	}
	if spec.Components == nil || spec.Components.Schemas["Agent"] == nil {
		t.Error("document missing Agent schema")
	}
}

func TestServer_Metrics(t *testing.T) {
	_, base := startServer(t, testConfig(t))

	resp, err := http.Post(base+"/api/agents", "application/json", strings.NewReader(`{"name":"bot1"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()

	status, body := get(t, base+"/metrics")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}

	for _, want := range []string{
		`agent_scaffold_registry_agents 1`,
		`agent_scaffold_registry_operations_total{operation="create",result="ok"} 1`,
		`agent_scaffold_artifacts_total{action="create",artifact="agent.py"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestServer_MetricsDisabled(t *testing.T) {
	cfg := testConfig(t)
	disabled := false
	cfg.Metrics.Enabled = &disabled

	_, base := startServer(t, cfg)

	if status, _ := get(t, base+"/metrics"); status != http.StatusNotFound {
		t.Errorf("/metrics = %d, want %d", status, http.StatusNotFound)
	}
}

func TestServer_Docs(t *testing.T) {
	_, base := startServer(t, testConfig(t))

	status, body := get(t, base+"/docs")
	if status != http.StatusOK || !strings.Contains(body, "/api/openapi.json") {
		t.Errorf("/docs = %d, body missing document url", status)
	}
}
