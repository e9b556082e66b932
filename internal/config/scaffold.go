package config

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
)

const (
	// EnvScaffoldBasePath overrides the directory agent scaffolds are written under.
	EnvScaffoldBasePath = "SCAFFOLD_BASE_PATH"

	// EnvScaffoldPython overrides the interpreter version pinned in generated manifests.
	EnvScaffoldPython = "SCAFFOLD_PYTHON"
)

// ScaffoldConfig contains agent scaffold materialization configuration.
type ScaffoldConfig struct {
	// BasePath is the root directory holding one subdirectory per agent.
	// Default: "agents"
	BasePath string `toml:"base_path"`

	// Python is the interpreter version pinned in environment.yml.
	// Default: "3.11"
	Python string `toml:"python"`
}

// Finalize applies defaults, loads environment overrides, and validates the scaffold configuration.
func (c *ScaffoldConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *ScaffoldConfig) Merge(overlay *ScaffoldConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.Python != "" {
		c.Python = overlay.Python
	}
}

func (c *ScaffoldConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "agents"
	}
	if c.Python == "" {
		c.Python = "3.11"
	}
}

func (c *ScaffoldConfig) loadEnv() {
	if v := os.Getenv(EnvScaffoldBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvScaffoldPython); v != "" {
		c.Python = v
	}
}

func (c *ScaffoldConfig) validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("base_path required")
	}
	if _, err := semver.NewVersion(c.Python); err != nil {
		return fmt.Errorf("invalid python version %q: %w", c.Python, err)
	}
	return nil
}
