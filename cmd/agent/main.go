// Command agent is the standalone entry point for a scaffolded agent. It loads
// the agent's environment file and reports which agent is running.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
