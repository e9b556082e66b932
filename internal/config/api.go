package config

import (
	"fmt"
	"os"
	"strings"
)

// EnvAPIBasePath overrides the API route prefix.
const EnvAPIBasePath = "API_BASE_PATH"

// APIConfig contains settings for the JSON API surface.
type APIConfig struct {
	BasePath string `toml:"base_path"`
}

func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
}

func (c *APIConfig) validate() error {
	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base_path must start with /: %q", c.BasePath)
	}
	c.BasePath = strings.TrimSuffix(c.BasePath, "/")
	return nil
}
