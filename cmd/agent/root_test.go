package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func run(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute(%v) failed: %v", args, err)
	}
	return out.String()
}

func TestRoot_DefaultName(t *testing.T) {
	t.Setenv(envAgentName, "")
	os.Unsetenv(envAgentName)

	got := run(t, "--env-file", filepath.Join(t.TempDir(), "missing.env"))
	if got != "Running agent: default_agent\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRoot_NameFromEnvFile(t *testing.T) {
	t.Setenv(envAgentName, "")
	os.Unsetenv(envAgentName)

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("AGENT_NAME=bot1\nA=1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got := run(t, "--env-file", path)
	if got != "Running agent: bot1\n" {
		t.Errorf("output = %q", got)
	}
	if os.Getenv("A") != "1" {
		t.Errorf("A = %q, want 1", os.Getenv("A"))
	}
	os.Unsetenv("A")
}

func TestRoot_ProcessEnvWins(t *testing.T) {
	t.Setenv(envAgentName, "from-process")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("AGENT_NAME=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got := run(t, "--env-file", path)
	if got != "Running agent: from-process\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRoot_RejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})

	if err := cmd.Execute(); err == nil {
		t.Error("Execute() with positional args succeeded, want error")
	}
}
