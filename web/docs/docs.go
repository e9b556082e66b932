// Package docs serves the interactive API reference page. The page shell is
// embedded; the Scalar renderer is loaded by the browser.
package docs

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/JaimeStill/agent-scaffold/internal/routes"
)

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// Handler serves the API reference page for a single OpenAPI document.
type Handler struct {
	page []byte
}

// NewHandler renders the reference page pointing at specURL.
func NewHandler(specURL string) (*Handler, error) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, struct{ SpecURL string }{specURL}); err != nil {
		return nil, err
	}
	return &Handler{page: buf.Bytes()}, nil
}

// Routes returns the route group for documentation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/docs",
		Tags:        []string{"Documentation"},
		Description: "Interactive API documentation powered by Scalar",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.serveIndex},
		},
	}
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(h.page)
}
