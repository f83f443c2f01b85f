package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, cfg *Config) *App {
	t.Helper()
	app, err := NewApp(cfg)
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return app
}

func TestBuildPlanLeavesRootUntouched(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "newproj")
	structure := filepath.Join(dir, "tree.txt")
	require.NoError(t, os.WriteFile(structure, []byte("proj/\n├── main.py\n├── src/\n"), 0644))

	app := newTestApp(t, &Config{
		Root:          root,
		StructurePath: structure,
		Tables:        DefaultTables(),
	})

	plan, err := app.BuildPlan()
	require.NoError(t, err)
	assert.Equal(t, []string{"main.py"}, plan.Tree.Files)
	assert.Equal(t, []string{"src"}, plan.Tree.Dirs)

	// Planning is read-only: the root (and its state dir) must not appear.
	_, err = os.Stat(root)
	assert.True(t, os.IsNotExist(err))
}

func TestScanLeavesTargetUntouched(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.py"), nil, 0644))

	app := newTestApp(t, &Config{Root: root, Tables: DefaultTables(), ScanDepth: 10})

	out, err := app.Scan()
	require.NoError(t, err)
	assert.Contains(t, out, "main.py")

	_, err = os.Stat(filepath.Join(root, stateDirName))
	assert.True(t, os.IsNotExist(err))
}

func TestApplyCreatesStateDirOnDemand(t *testing.T) {
	root := t.TempDir()
	app := newTestApp(t, &Config{Root: root, Tables: DefaultTables()})

	s, err := app.Apply(&Plan{Tree: ParsedTree{Files: []string{"main.py"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"main.py"}, s.Created)

	info, err := os.Stat(filepath.Join(root, stateDirName))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
