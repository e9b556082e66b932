// Package agents provides the registry of agent configurations and the HTTP
// surface for managing them. Every registered agent is materialized on disk
// through the scaffold system.
package agents

import (
	"maps"
	"slices"

	"github.com/JaimeStill/agent-scaffold/internal/scaffold"
	"github.com/google/uuid"
)

// Spec is the client-supplied shape of an agent. Omitted collections default to empty.
type Spec struct {
	Name    string            `json:"name"`
	Imports []string          `json:"imports"`
	EnvVars map[string]string `json:"env_vars"`
}

// Agent is a registered Spec with its server-assigned id.
type Agent struct {
	ID      uuid.UUID         `json:"id"`
	Name    string            `json:"name"`
	Imports []string          `json:"imports"`
	EnvVars map[string]string `json:"env_vars"`
}

// NewAgent builds an Agent from spec under id. The collections are copied, and
// nil collections become empty so they render as [] and {}.
func NewAgent(id uuid.UUID, spec Spec) Agent {
	a := Agent{
		ID:      id,
		Name:    spec.Name,
		Imports: slices.Clone(spec.Imports),
		EnvVars: maps.Clone(spec.EnvVars),
	}
	if a.Imports == nil {
		a.Imports = []string{}
	}
	if a.EnvVars == nil {
		a.EnvVars = map[string]string{}
	}
	return a
}

func (a Agent) clone() Agent {
	return NewAgent(a.ID, Spec{Name: a.Name, Imports: a.Imports, EnvVars: a.EnvVars})
}

func (a Agent) scaffold() scaffold.Agent {
	return scaffold.Agent{
		ID:      a.ID,
		Name:    a.Name,
		Imports: a.Imports,
		EnvVars: a.EnvVars,
	}
}
