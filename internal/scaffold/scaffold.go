// Package scaffold materializes agent records as on-disk directories holding a
// runnable script, an environment file and an optional dependency manifest.
//
// Writes are declarative: the desired artifact set is computed from the record,
// compared with what is on disk, and only the necessary creates and overwrites
// are applied. Each artifact carries a named Policy that decides its action.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/JaimeStill/agent-scaffold/internal/config"
	"github.com/JaimeStill/agent-scaffold/internal/lifecycle"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Recorder receives one event per reconciled artifact.
type Recorder interface {
	Artifact(name, action string)
}

// Step is one planned reconciliation action for an artifact.
type Step struct {
	Artifact Artifact
	Action   Action
	Reason   string
}

// System projects agent records onto the filesystem.
type System interface {
	// Write reconciles the agent directory with the record.
	// Filesystem errors are returned as-is and leave earlier steps applied.
	Write(ctx context.Context, agent Agent) error

	// Plan computes the steps Write would apply without touching the filesystem.
	Plan(ctx context.Context, agent Agent) ([]Step, error)

	// Purge removes the agent directory and everything in it.
	// A missing directory is not an error.
	Purge(ctx context.Context, id uuid.UUID) error

	// Dir returns the absolute directory path for an agent id.
	Dir(id uuid.UUID) string

	// Start registers base directory creation with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
}

type materializer struct {
	fs       afero.Fs
	basePath string
	python   string
	logger   *slog.Logger
	recorder Recorder
}

// New creates a materializer rooted at cfg.BasePath on fsys.
// The base path is resolved to an absolute path during construction.
// A nil recorder disables artifact events.
func New(cfg *config.ScaffoldConfig, fsys afero.Fs, logger *slog.Logger, recorder Recorder) (System, error) {
	if cfg.BasePath == "" {
		return nil, fmt.Errorf("base_path required")
	}

	absPath, err := filepath.Abs(cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("resolve base_path: %w", err)
	}

	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &materializer{
		fs:       fsys,
		basePath: absPath,
		python:   cfg.Python,
		logger:   logger.With("system", "scaffold"),
		recorder: recorder,
	}, nil
}

func (m *materializer) Start(lc *lifecycle.Coordinator) error {
	m.logger.Info("starting scaffold system", "base_path", m.basePath)

	lc.OnStartup(func() {
		if err := m.fs.MkdirAll(m.basePath, 0755); err != nil {
			m.logger.Error("scaffold initialization failed", "error", err)
			return
		}
		m.logger.Info("scaffold directory initialized")
	})

	return nil
}

func (m *materializer) Dir(id uuid.UUID) string {
	return filepath.Join(m.basePath, id.String())
}

func (m *materializer) Plan(ctx context.Context, agent Agent) ([]Step, error) {
	if agent.ID == uuid.Nil {
		return nil, ErrInvalidID
	}

	desired, err := Desired(agent, m.python)
	if err != nil {
		return nil, err
	}

	dir := m.Dir(agent.ID)
	steps := make([]Step, 0, len(desired))
	for _, artifact := range desired {
		obs, err := m.observe(filepath.Join(dir, artifact.Name), artifact)
		if err != nil {
			return nil, err
		}

		action, reason := Decide(artifact, obs)
		steps = append(steps, Step{Artifact: artifact, Action: action, Reason: reason})
	}

	return steps, nil
}

func (m *materializer) Write(ctx context.Context, agent Agent) error {
	steps, err := m.Plan(ctx, agent)
	if err != nil {
		return err
	}

	dir := m.Dir(agent.ID)
	if err := m.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create agent directory: %w", err)
	}

	for _, step := range steps {
		m.recorder.Artifact(step.Artifact.Name, step.Action.String())

		if step.Action == ActionSkip {
			m.logger.Debug("artifact skipped", "id", agent.ID, "artifact", step.Artifact.Name, "reason", step.Reason)
			continue
		}

		path := filepath.Join(dir, step.Artifact.Name)
		if err := m.store(path, step.Artifact); err != nil {
			return fmt.Errorf("%s %s: %w", step.Action, step.Artifact.Name, err)
		}

		m.logger.Info("artifact written", "id", agent.ID, "artifact", step.Artifact.Name, "action", step.Action.String())
	}

	return nil
}

func (m *materializer) Purge(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidID
	}

	dir := m.Dir(id)
	exists, err := afero.DirExists(m.fs, dir)
	if err != nil {
		return fmt.Errorf("stat agent directory: %w", err)
	}
	if !exists {
		m.logger.Debug("purge skipped, directory absent", "id", id)
		return nil
	}

	if err := m.fs.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove agent directory: %w", err)
	}

	m.logger.Info("agent directory purged", "id", id)
	return nil
}

// observe reads the current state of an artifact. Content is only loaded for
// policies that compare against it.
func (m *materializer) observe(path string, artifact Artifact) (Observed, error) {
	info, err := m.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Observed{}, nil
		}
		return Observed{}, fmt.Errorf("stat %s: %w", artifact.Name, err)
	}
	if info.IsDir() {
		return Observed{}, fmt.Errorf("stat %s: path is a directory", artifact.Name)
	}

	obs := Observed{Exists: true}
	if artifact.Policy == OverwriteUnlessEmpty && !artifact.Empty {
		content, err := afero.ReadFile(m.fs, path)
		if err != nil {
			return Observed{}, fmt.Errorf("read %s: %w", artifact.Name, err)
		}
		obs.Content = content
	}

	return obs, nil
}

// store writes through a temp file and rename so readers never see a partial file.
func (m *materializer) store(path string, artifact Artifact) error {
	tmpPath := path + ".tmp"
	if err := afero.WriteFile(m.fs, tmpPath, artifact.Content, artifact.Mode); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := m.fs.Rename(tmpPath, path); err != nil {
		m.fs.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

type nopRecorder struct{}

func (nopRecorder) Artifact(string, string) {}
