package agents

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/JaimeStill/agent-scaffold/internal/scaffold"
	"github.com/google/uuid"
)

type registry struct {
	mu       sync.RWMutex
	agents   map[uuid.UUID]Agent
	locks    *keyedMutex
	scaffold scaffold.System
	logger   *slog.Logger
	observer Observer
}

// New creates an empty in-memory registry that materializes agents through sc.
// The registry lives for the lifetime of the process; nothing is persisted.
// A nil observer disables operation reporting.
func New(sc scaffold.System, logger *slog.Logger, observer Observer) System {
	if observer == nil {
		observer = nopObserver{}
	}

	return &registry{
		agents:   make(map[uuid.UUID]Agent),
		locks:    newKeyedMutex(),
		scaffold: sc,
		logger:   logger.With("system", "agents"),
		observer: observer,
	}
}

func (r *registry) Create(ctx context.Context, spec Spec) (*Agent, error) {
	id := uuid.New()

	unlock := r.locks.Lock(id)
	defer unlock()

	a := NewAgent(id, spec)
	r.store(a)

	if err := r.scaffold.Write(ctx, a.scaffold()); err != nil {
		r.observer.Operation("create", "error")
		return nil, fmt.Errorf("%w: %w", ErrMaterialize, err)
	}

	r.observer.Operation("create", "ok")
	r.logger.Info("agent created", "id", a.ID, "name", a.Name)

	out := a.clone()
	return &out, nil
}

func (r *registry) List(ctx context.Context) ([]Agent, error) {
	r.mu.RLock()
	out := make([]Agent, 0, len(r.agents))
	for _, a := range r.agents {
		out = append(out, a.clone())
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b Agent) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})

	r.observer.Operation("list", "ok")
	return out, nil
}

func (r *registry) Get(ctx context.Context, id uuid.UUID) (*Agent, error) {
	r.mu.RLock()
	a, ok := r.agents[id]
	r.mu.RUnlock()

	if !ok {
		r.observer.Operation("get", "not_found")
		return nil, ErrNotFound
	}

	r.observer.Operation("get", "ok")
	out := a.clone()
	return &out, nil
}

func (r *registry) Update(ctx context.Context, id uuid.UUID, spec Spec) (*Agent, error) {
	unlock := r.locks.Lock(id)
	defer unlock()

	a := NewAgent(id, spec)

	r.mu.Lock()
	if _, ok := r.agents[id]; !ok {
		r.mu.Unlock()
		r.observer.Operation("update", "not_found")
		return nil, ErrNotFound
	}
	r.agents[id] = a
	r.mu.Unlock()

	if err := r.scaffold.Write(ctx, a.scaffold()); err != nil {
		r.observer.Operation("update", "error")
		return nil, fmt.Errorf("%w: %w", ErrMaterialize, err)
	}

	r.observer.Operation("update", "ok")
	r.logger.Info("agent updated", "id", a.ID, "name", a.Name)

	out := a.clone()
	return &out, nil
}

func (r *registry) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := r.locks.Lock(id)
	defer unlock()

	r.mu.Lock()
	if _, ok := r.agents[id]; !ok {
		r.mu.Unlock()
		r.observer.Operation("delete", "not_found")
		return ErrNotFound
	}
	delete(r.agents, id)
	n := len(r.agents)
	r.mu.Unlock()

	r.observer.Agents(n)

	if err := r.scaffold.Purge(ctx, id); err != nil {
		r.observer.Operation("delete", "error")
		return fmt.Errorf("%w: %w", ErrMaterialize, err)
	}

	r.observer.Operation("delete", "ok")
	r.logger.Info("agent deleted", "id", id)
	return nil
}

func (r *registry) store(a Agent) {
	r.mu.Lock()
	r.agents[a.ID] = a
	n := len(r.agents)
	r.mu.Unlock()

	r.observer.Agents(n)
}

type nopObserver struct{}

func (nopObserver) Operation(string, string) {}
func (nopObserver) Agents(int)               {}
