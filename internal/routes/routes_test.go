package routes_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/JaimeStill/agent-scaffold/internal/routes"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func TestBuild(t *testing.T) {
	sys := routes.New(testLogger())

	sys.RegisterRoute(routes.Route{Method: "GET", Pattern: "/healthz", Handler: respond("OK")})
	sys.RegisterGroup(routes.Group{
		Prefix: "/api",
		Children: []routes.Group{
			{
				Prefix: "/agents",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: respond("list")},
					{Method: "GET", Pattern: "/{id}", Handler: func(w http.ResponseWriter, r *http.Request) {
						w.Write([]byte("get " + r.PathValue("id")))
					}},
				},
			},
		},
	})

	handler := sys.Build()

	tests := []struct {
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"GET", "/healthz", http.StatusOK, "OK"},
		{"GET", "/api/agents", http.StatusOK, "list"},
		{"GET", "/api/agents/abc", http.StatusOK, "get abc"},
		{"POST", "/api/agents", http.StatusMethodNotAllowed, ""},
		{"GET", "/missing", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}

	if len(sys.Routes()) != 1 || len(sys.Groups()) != 1 {
		t.Errorf("Routes() = %d, Groups() = %d, want 1 and 1", len(sys.Routes()), len(sys.Groups()))
	}
}
