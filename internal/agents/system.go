package agents

import (
	"context"

	"github.com/google/uuid"
)

// System defines the agent registry operations.
type System interface {
	Create(ctx context.Context, spec Spec) (*Agent, error)
	List(ctx context.Context) ([]Agent, error)
	Get(ctx context.Context, id uuid.UUID) (*Agent, error)
	Update(ctx context.Context, id uuid.UUID, spec Spec) (*Agent, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Observer receives registry operation outcomes and the current agent count.
type Observer interface {
	Operation(operation, result string)
	Agents(n int)
}
