package scaffold_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/JaimeStill/agent-scaffold/internal/config"
	"github.com/JaimeStill/agent-scaffold/internal/lifecycle"
	"github.com/JaimeStill/agent-scaffold/internal/scaffold"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) Artifact(name, action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, name+":"+action)
}

func newSystem(t *testing.T, fsys afero.Fs, rec scaffold.Recorder) scaffold.System {
	t.Helper()
	cfg := &config.ScaffoldConfig{BasePath: "/srv/agents", Python: "3.11"}
	sys, err := scaffold.New(cfg, fsys, testLogger(), rec)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return sys
}

func readFile(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func exists(t *testing.T, fsys afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(fsys, path)
	if err != nil {
		t.Fatalf("exists %s: %v", path, err)
	}
	return ok
}

func TestNew_EmptyBasePath(t *testing.T) {
	_, err := scaffold.New(&config.ScaffoldConfig{}, afero.NewMemMapFs(), testLogger(), nil)
	if err == nil {
		t.Fatal("New() succeeded with empty BasePath, want error")
	}
}

func TestStart_CreatesBaseDirectory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	sys := newSystem(t, fsys, nil)

	lc := lifecycle.New()
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	lc.WaitForStartup()

	if ok, _ := afero.DirExists(fsys, "/srv/agents"); !ok {
		t.Error("Start() did not create base directory")
	}
}

func TestWrite_InitialScaffold(t *testing.T) {
	fsys := afero.NewMemMapFs()
	sys := newSystem(t, fsys, nil)

	agent := scaffold.Agent{
		ID:      uuid.New(),
		Name:    "bot1",
		EnvVars: map[string]string{"A": "1", "B": "2"},
	}

	if err := sys.Write(context.Background(), agent); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	dir := sys.Dir(agent.ID)
	if dir != filepath.Join("/srv/agents", agent.ID.String()) {
		t.Errorf("Dir() = %q", dir)
	}

	if !exists(t, fsys, filepath.Join(dir, scaffold.ScriptFile)) {
		t.Error("script not written")
	}

	env := readFile(t, fsys, filepath.Join(dir, scaffold.EnvFile))
	if env != "A=1\nB=2\n" {
		t.Errorf("env = %q, want %q", env, "A=1\nB=2\n")
	}

	if exists(t, fsys, filepath.Join(dir, scaffold.ManifestFile)) {
		t.Error("manifest written for empty imports")
	}

	if exists(t, fsys, filepath.Join(dir, scaffold.ScriptFile+".tmp")) {
		t.Error("temp file left behind")
	}
}

func TestWrite_ScriptNeverOverwritten(t *testing.T) {
	fsys := afero.NewMemMapFs()
	sys := newSystem(t, fsys, nil)
	ctx := context.Background()

	agent := scaffold.Agent{ID: uuid.New(), Name: "original"}
	if err := sys.Write(ctx, agent); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	path := filepath.Join(sys.Dir(agent.ID), scaffold.ScriptFile)
	before := readFile(t, fsys, path)

	agent.Name = "renamed"
	if err := sys.Write(ctx, agent); err != nil {
		t.Fatalf("second Write() failed: %v", err)
	}

	after := readFile(t, fsys, path)
	if after != before {
		t.Errorf("script changed on second write:\nbefore:\n%s\nafter:\n%s", before, after)
	}
	if !strings.Contains(after, `"original"`) {
		t.Error("script does not keep the name from creation")
	}
}

func TestWrite_EmptyCollectionsLeaveFiles(t *testing.T) {
	fsys := afero.NewMemMapFs()
	sys := newSystem(t, fsys, nil)
	ctx := context.Background()

	agent := scaffold.Agent{
		ID:      uuid.New(),
		Name:    "bot1",
		Imports: []string{"numpy"},
		EnvVars: map[string]string{"TOKEN": "abc"},
	}
	if err := sys.Write(ctx, agent); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	dir := sys.Dir(agent.ID)
	envBefore := readFile(t, fsys, filepath.Join(dir, scaffold.EnvFile))
	manifestBefore := readFile(t, fsys, filepath.Join(dir, scaffold.ManifestFile))

	cleared := scaffold.Agent{ID: agent.ID, Name: "bot1"}
	if err := sys.Write(ctx, cleared); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	if got := readFile(t, fsys, filepath.Join(dir, scaffold.EnvFile)); got != envBefore {
		t.Errorf("env changed to %q, want %q", got, envBefore)
	}
	if got := readFile(t, fsys, filepath.Join(dir, scaffold.ManifestFile)); got != manifestBefore {
		t.Errorf("manifest changed to %q, want %q", got, manifestBefore)
	}
}

func TestWrite_ManifestAppearsOnUpdate(t *testing.T) {
	fsys := afero.NewMemMapFs()
	sys := newSystem(t, fsys, nil)
	ctx := context.Background()

	agent := scaffold.Agent{ID: uuid.New(), Name: "bot1"}
	if err := sys.Write(ctx, agent); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	path := filepath.Join(sys.Dir(agent.ID), scaffold.ManifestFile)
	if exists(t, fsys, path) {
		t.Fatal("manifest exists before imports were set")
	}

	agent.Imports = []string{"numpy"}
	if err := sys.Write(ctx, agent); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	content := readFile(t, fsys, path)
	found := false
	for _, line := range strings.Split(content, "\n") {
		if strings.HasSuffix(line, "- numpy") {
			found = true
		}
	}
	if !found {
		t.Errorf("manifest has no line ending in %q:\n%s", "- numpy", content)
	}
}

func TestWrite_EnvOverwritten(t *testing.T) {
	fsys := afero.NewMemMapFs()
	sys := newSystem(t, fsys, nil)
	ctx := context.Background()

	agent := scaffold.Agent{ID: uuid.New(), Name: "bot1", EnvVars: map[string]string{"A": "1"}}
	if err := sys.Write(ctx, agent); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	agent.EnvVars = map[string]string{"B": "2"}
	if err := sys.Write(ctx, agent); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	if got := readFile(t, fsys, filepath.Join(sys.Dir(agent.ID), scaffold.EnvFile)); got != "B=2\n" {
		t.Errorf("env = %q, want %q", got, "B=2\n")
	}
}

func TestPlan_ReflectsState(t *testing.T) {
	fsys := afero.NewMemMapFs()
	sys := newSystem(t, fsys, nil)
	ctx := context.Background()

	agent := scaffold.Agent{ID: uuid.New(), Name: "bot1", EnvVars: map[string]string{"A": "1"}}

	actions := func() []string {
		steps, err := sys.Plan(ctx, agent)
		if err != nil {
			t.Fatalf("Plan() failed: %v", err)
		}
		out := make([]string, len(steps))
		for i, s := range steps {
			out[i] = s.Artifact.Name + ":" + s.Action.String()
		}
		return out
	}

	first := strings.Join(actions(), ",")
	if first != "agent.py:create,.env:create,environment.yml:skip" {
		t.Errorf("initial plan = %s", first)
	}

	if exists(t, fsys, sys.Dir(agent.ID)) {
		t.Error("Plan() touched the filesystem")
	}

	if err := sys.Write(ctx, agent); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	second := strings.Join(actions(), ",")
	if second != "agent.py:skip,.env:skip,environment.yml:skip" {
		t.Errorf("plan after write = %s", second)
	}
}

func TestWrite_RecordsArtifacts(t *testing.T) {
	rec := &recorder{}
	sys := newSystem(t, afero.NewMemMapFs(), rec)

	agent := scaffold.Agent{ID: uuid.New(), Name: "bot1", Imports: []string{"numpy"}}
	if err := sys.Write(context.Background(), agent); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	got := strings.Join(rec.events, ",")
	want := "agent.py:create,.env:skip,environment.yml:create"
	if got != want {
		t.Errorf("events = %s, want %s", got, want)
	}
}

func TestWrite_NilID(t *testing.T) {
	sys := newSystem(t, afero.NewMemMapFs(), nil)

	err := sys.Write(context.Background(), scaffold.Agent{Name: "bot1"})
	if !errors.Is(err, scaffold.ErrInvalidID) {
		t.Errorf("Write() error = %v, want ErrInvalidID", err)
	}
}

func TestWrite_ReadOnlyFilesystem(t *testing.T) {
	sys := newSystem(t, afero.NewReadOnlyFs(afero.NewMemMapFs()), nil)

	err := sys.Write(context.Background(), scaffold.Agent{ID: uuid.New(), Name: "bot1"})
	if err == nil {
		t.Fatal("Write() on read-only filesystem succeeded, want error")
	}
}

func TestPurge(t *testing.T) {
	fsys := afero.NewMemMapFs()
	sys := newSystem(t, fsys, nil)
	ctx := context.Background()

	agent := scaffold.Agent{ID: uuid.New(), Name: "bot1", EnvVars: map[string]string{"A": "1"}}
	if err := sys.Write(ctx, agent); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	if err := sys.Purge(ctx, agent.ID); err != nil {
		t.Fatalf("Purge() failed: %v", err)
	}

	if exists(t, fsys, sys.Dir(agent.ID)) {
		t.Error("directory still exists after Purge()")
	}

	if err := sys.Purge(ctx, agent.ID); err != nil {
		t.Errorf("Purge() of missing directory error = %v, want nil", err)
	}
}

func TestPurge_NilID(t *testing.T) {
	sys := newSystem(t, afero.NewMemMapFs(), nil)

	if err := sys.Purge(context.Background(), uuid.Nil); !errors.Is(err, scaffold.ErrInvalidID) {
		t.Errorf("Purge() error = %v, want ErrInvalidID", err)
	}
}

func TestWrite_OsFilesystem(t *testing.T) {
	base := t.TempDir()
	cfg := &config.ScaffoldConfig{BasePath: base, Python: "3.11"}
	sys, err := scaffold.New(cfg, afero.NewOsFs(), testLogger(), nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	agent := scaffold.Agent{ID: uuid.New(), Name: "bot1", EnvVars: map[string]string{"A": "1", "B": "2"}}
	if err := sys.Write(context.Background(), agent); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(base, agent.ID.String(), scaffold.ScriptFile))
	if err != nil {
		t.Fatalf("stat script: %v", err)
	}
	if info.Mode().Perm()&0100 == 0 {
		t.Errorf("script mode = %v, want owner executable", info.Mode().Perm())
	}

	env, err := godotenv.Read(filepath.Join(base, agent.ID.String(), scaffold.EnvFile))
	if err != nil {
		t.Fatalf("godotenv.Read() failed: %v", err)
	}
	if len(env) != 2 || env["A"] != "1" || env["B"] != "2" {
		t.Errorf("env = %v, want map[A:1 B:2]", env)
	}
}
