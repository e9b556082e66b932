package main

import (
	"fmt"

	"github.com/JaimeStill/agent-scaffold/internal/agents"
	"github.com/JaimeStill/agent-scaffold/internal/config"
	"github.com/JaimeStill/agent-scaffold/internal/scaffold"
	"github.com/spf13/afero"
)

type Domain struct {
	Scaffold scaffold.System
	Agents   agents.System
}

func NewDomain(runtime *Runtime, cfg *config.Config) (*Domain, error) {
	sc, err := scaffold.New(&cfg.Scaffold, afero.NewOsFs(), runtime.Logger, runtime.Metrics)
	if err != nil {
		return nil, fmt.Errorf("scaffold init failed: %w", err)
	}

	return &Domain{
		Scaffold: sc,
		Agents:   agents.New(sc, runtime.Logger, runtime.Metrics),
	}, nil
}

func (d *Domain) Start(runtime *Runtime) error {
	if err := d.Scaffold.Start(runtime.Lifecycle); err != nil {
		return fmt.Errorf("scaffold start failed: %w", err)
	}
	return nil
}
