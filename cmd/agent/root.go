package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	envAgentName     = "AGENT_NAME"
	defaultAgentName = "default_agent"
)

func newRootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:          "agent",
		Short:        "Run a scaffolded agent",
		Long:         "Loads the agent environment file and starts the agent named by AGENT_NAME.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnv(envFile); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Running agent: %s\n", agentName())
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Path to the agent environment file")
	return cmd
}

// loadEnv applies the file to the process environment. Variables already set
// take precedence, and a missing file is ignored.
func loadEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func agentName() string {
	if name := os.Getenv(envAgentName); name != "" {
		return name
	}
	return defaultAgentName
}
