package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/dietdesk/internal/store"
	"github.com/agentstation/dietdesk/pkg/constants"
)

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2026-01-01", "test")
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2026-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	require.NotNil(t, app.Config())
	assert.Equal(t, constants.DefaultPageSize, app.PageSize())
}

// TestApp_Store_Singleton verifies that Store() returns the same instance.
func TestApp_Store_Singleton(t *testing.T) {
	app, err := New("1.0.0", "test", "2026-01-01", "test")
	require.NoError(t, err)

	s1 := app.Store()
	s2 := app.Store()
	assert.Same(t, s1, s2)

	app.resetStore()
	assert.NotSame(t, s1, app.Store())
}

// TestApp_Store_ThreadSafe verifies concurrent Store() calls are safe.
func TestApp_Store_ThreadSafe(t *testing.T) {
	app, err := New("1.0.0", "test", "2026-01-01", "test")
	require.NoError(t, err)

	const goroutines = 50
	var wg sync.WaitGroup
	results := make([]*store.Store, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = app.Store()
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestApp_Workspace(t *testing.T) {
	app, err := New("1.0.0", "test", "2026-01-01", "test")
	require.NoError(t, err)

	ws, err := app.Workspace()
	require.NoError(t, err)
	require.NotNil(t, ws)
	assert.False(t, ws.Dirty())
}

func TestApp_WithOptions(t *testing.T) {
	logger := zerolog.Nop()
	cfg := &Config{DataDir: "in", OutputDir: "out", PageSize: 3, Format: "yaml"}
	st := store.New(store.WithDataDir(t.TempDir()))

	app, err := New("1.0.0", "test", "2026-01-01", "test",
		WithConfig(cfg),
		WithLogger(&logger),
		WithStore(st),
	)
	require.NoError(t, err)

	assert.Same(t, cfg, app.Config())
	assert.Same(t, &logger, app.Logger())
	assert.Same(t, st, app.Store())
	assert.Equal(t, 3, app.PageSize())
	assert.EqualValues(t, "yaml", app.OutputFormat())

	_, err = New("1.0.0", "test", "2026-01-01", "test", WithConfig(nil))
	assert.Error(t, err)
	_, err = New("1.0.0", "test", "2026-01-01", "test", WithLogger(nil))
	assert.Error(t, err)
}

func TestApp_Shutdown(t *testing.T) {
	app, err := New("1.0.0", "test", "2026-01-01", "test")
	require.NoError(t, err)
	assert.NoError(t, app.Shutdown(context.Background()))
}

func runRoot(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := app.createRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExecute_RowsThroughRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "algo.yaml"), []byte("kcal: 2000\nfat: 70\n"), 0o644))

	app, err := New("1.0.0", "test", "2026-01-01", "test")
	require.NoError(t, err)

	out, err := runRoot(t, app,
		"pyramid", "rows",
		"--algorithmic", "algo.yaml",
		"--data-dir", dir,
		"--format", "json",
		"--log-level", "error",
	)
	require.NoError(t, err)
	assert.Contains(t, out, `"kcal"`)
	assert.Contains(t, out, `"2000"`)
	assert.Equal(t, dir, app.Config().DataDir)
	assert.Equal(t, dir, app.Store().DataDir())
}

func TestExecute_MergeWritesToOutputDir(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "created")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "algo.yaml"), []byte("kcal: 2000\n"), 0o644))

	app, err := New("1.0.0", "test", "2026-01-01", "test")
	require.NoError(t, err)

	_, err = runRoot(t, app,
		"pyramid", "merge",
		"--algorithmic", "algo.yaml",
		"--name", "Winter",
		"--yes",
		"--data-dir", dir,
		"--output-dir", outDir,
		"-o", "table",
		"-q",
	)
	require.NoError(t, err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestExecute_InvalidFormat(t *testing.T) {
	app, err := New("1.0.0", "test", "2026-01-01", "test")
	require.NoError(t, err)

	_, err = runRoot(t, app, "version", "-o", "xml")
	assert.Error(t, err)
}

func TestExecute_Version(t *testing.T) {
	app, err := New("1.2.3", "deadbeef", "2026-01-01", "test")
	require.NoError(t, err)

	out, err := runRoot(t, app, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dietdesk version 1.2.3")
	assert.Contains(t, out, "commit: deadbeef")
}

func TestExecute_ConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dietdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page_size: 4\ndata_dir: from-file\n"), 0o644))

	app, err := New("1.0.0", "test", "2026-01-01", "test")
	require.NoError(t, err)

	_, err = runRoot(t, app, "version", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, 4, app.PageSize())
	assert.Equal(t, "from-file", app.Config().DataDir)
	assert.Equal(t, path, app.Config().ConfigFile)
}
