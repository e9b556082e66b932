package agents

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/agent-scaffold/internal/routes"
	"github.com/JaimeStill/agent-scaffold/pkg/handlers"
	"github.com/google/uuid"
)

// DeleteResult is the body returned after a successful delete.
type DeleteResult struct {
	Detail string `json:"detail"`
}

// Handler provides HTTP handlers for agent CRUD operations.
type Handler struct {
	sys    System
	logger *slog.Logger
	prefix string
}

// NewHandler creates an agents HTTP handler mounted under basePath.
func NewHandler(sys System, logger *slog.Logger, basePath string) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "agents"),
		prefix: basePath + "/agents",
	}
}

// Routes returns the route group configuration for agent endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      h.prefix,
		Tags:        []string{"Agents"},
		Description: "Agent registration and scaffold materialization",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Operations.List},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Operations.Create},
			{Method: "GET", Pattern: "/{id}", Handler: h.Get, OpenAPI: Operations.Get},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update, OpenAPI: Operations.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: Operations.Delete},
		},
	}
}

// Create handles POST /agents to register and materialize a new agent.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var spec Spec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	result, err := h.sys.Create(r.Context(), spec)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

// List handles GET /agents to return every registered agent.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get handles GET /agents/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Get(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update handles PUT /agents/{id}. The body fully replaces the stored record.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var spec Spec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	result, err := h.sys.Update(r.Context(), id, spec)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete handles DELETE /agents/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, DeleteResult{Detail: "Agent deleted"})
}
