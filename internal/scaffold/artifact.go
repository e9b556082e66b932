package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Artifact file names inside an agent directory.
const (
	ScriptFile   = "agent.py"
	EnvFile      = ".env"
	ManifestFile = "environment.yml"
)

// manifestChannels is the fixed channel list written to every manifest.
var manifestChannels = []string{"defaults", "conda-forge"}

// Agent is the record shape the materializer projects onto disk.
type Agent struct {
	ID      uuid.UUID
	Name    string
	Imports []string
	EnvVars map[string]string
}

// Artifact is one desired file in an agent directory.
type Artifact struct {
	Name    string
	Content []byte
	Mode    fs.FileMode
	Policy  Policy

	// Empty reports that the source collection had no entries.
	// Content is nil in that case.
	Empty bool
}

var scriptTemplate = template.Must(template.New(ScriptFile).
	Funcs(template.FuncMap{"pyquote": strconv.Quote}).
	Parse(`from dotenv import load_dotenv
import os

load_dotenv()

AGENT_NAME = {{ pyquote .Name }}


def run():
    name = os.getenv("AGENT_NAME", AGENT_NAME)
    print(f"Hello from {name}!")
    # Customize agent logic here.


if __name__ == "__main__":
    run()
`))

// Desired computes the full artifact set for agent in a fixed order:
// script, environment file, manifest.
func Desired(agent Agent, python string) ([]Artifact, error) {
	script, err := renderScript(agent)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", ScriptFile, err)
	}

	manifest, err := renderManifest(agent, python)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", ManifestFile, err)
	}

	return []Artifact{
		{
			Name:    ScriptFile,
			Content: script,
			Mode:    0755,
			Policy:  CreateOnce,
		},
		{
			Name:    EnvFile,
			Content: renderEnv(agent.EnvVars),
			Mode:    0644,
			Policy:  OverwriteUnlessEmpty,
			Empty:   len(agent.EnvVars) == 0,
		},
		{
			Name:    ManifestFile,
			Content: manifest,
			Mode:    0644,
			Policy:  OverwriteUnlessEmpty,
			Empty:   len(agent.Imports) == 0,
		},
	}, nil
}

// renderScript embeds the agent name at the time of rendering.
// The script is written once, so later renames are not reflected in it.
func renderScript(agent Agent) ([]byte, error) {
	var buf bytes.Buffer
	if err := scriptTemplate.Execute(&buf, agent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderEnv writes one KEY=VALUE line per entry with keys in sorted order.
func renderEnv(vars map[string]string) []byte {
	if len(vars) == 0 {
		return nil
	}

	var sb strings.Builder
	for _, key := range slices.Sorted(maps.Keys(vars)) {
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(vars[key])
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

type manifest struct {
	Name         string   `yaml:"name"`
	Channels     []string `yaml:"channels"`
	Dependencies []any    `yaml:"dependencies"`
}

func renderManifest(agent Agent, python string) ([]byte, error) {
	if len(agent.Imports) == 0 {
		return nil, nil
	}

	doc := manifest{
		Name:     agent.Name + "_env",
		Channels: manifestChannels,
		Dependencies: []any{
			"python=" + python,
			"pip",
			map[string][]string{"pip": agent.Imports},
		},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
