package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApplier(t *testing.T) (*Applier, *PathResolver, *StateManager) {
	t.Helper()
	root := t.TempDir()

	resolver, err := NewPathResolver(root)
	require.NoError(t, err)
	state, err := NewStateManager(root)
	require.NoError(t, err)

	return NewApplier(resolver, state, OSWriter{}), resolver, state
}

func testPlan() *Plan {
	return &Plan{
		Tree: ParsedTree{
			Files:    []string{"README.md", "src/app.py"},
			Dirs:     []string{"docs", "src"},
			Comments: map[string]string{"src/app.py": "entry"},
		},
		Decisions: []FillDecision{
			{
				Template: "src/app.py",
				Project:  "src/app.py",
				Body:     "print('hi')",
				Status:   StatusNewFile,
				Selected: true,
			},
		},
	}
}

func TestApplyCreatesStructureAndFills(t *testing.T) {
	applier, resolver, _ := newTestApplier(t)

	s := applier.Apply(testPlan())

	assert.ElementsMatch(t, []string{"docs", "src"}, s.Dirs)
	assert.ElementsMatch(t, []string{"README.md", "src/app.py"}, s.Created)
	assert.Equal(t, []string{"src/app.py"}, s.Filled)
	assert.Empty(t, s.Failed)

	content, err := os.ReadFile(resolver.Resolve("src/app.py"))
	require.NoError(t, err)
	assert.Equal(t, "print('hi')\n", string(content))

	readme, err := os.ReadFile(resolver.Resolve("README.md"))
	require.NoError(t, err)
	assert.Empty(t, readme)

	meta := LoadMetadata(resolver.Root())
	assert.Equal(t, "entry", meta["src/app.py"])
}

func TestApplySkipsExisting(t *testing.T) {
	applier, resolver, _ := newTestApplier(t)

	require.NoError(t, os.MkdirAll(resolver.Resolve("src"), 0755))
	require.NoError(t, os.WriteFile(resolver.Resolve("README.md"), []byte("keep"), 0644))

	plan := testPlan()
	plan.Decisions = nil
	s := applier.Apply(plan)

	assert.Contains(t, s.Skipped, "src")
	assert.Contains(t, s.Skipped, "README.md")

	content, _ := os.ReadFile(resolver.Resolve("README.md"))
	assert.Equal(t, "keep", string(content))
}

func TestApplyReportsKindCollisions(t *testing.T) {
	applier, resolver, _ := newTestApplier(t)

	// A file where a directory is declared, and a directory where a file is.
	require.NoError(t, os.WriteFile(resolver.Resolve("src"), []byte("in the way"), 0644))
	require.NoError(t, os.MkdirAll(resolver.Resolve("README.md"), 0755))

	plan := testPlan()
	plan.Decisions = nil
	s := applier.Apply(plan)

	assert.Contains(t, s.Failed, "src")
	assert.Contains(t, s.Failed, "README.md")
	assert.NotContains(t, s.Skipped, "src")
	assert.NotContains(t, s.Skipped, "README.md")

	content, err := os.ReadFile(resolver.Resolve("src"))
	require.NoError(t, err)
	assert.Equal(t, "in the way", string(content))
}

func TestApplyUnselectedDecisionLeavesFileEmpty(t *testing.T) {
	applier, resolver, _ := newTestApplier(t)

	plan := testPlan()
	plan.Decisions[0].Selected = false
	s := applier.Apply(plan)

	assert.Empty(t, s.Filled)
	content, err := os.ReadFile(resolver.Resolve("src/app.py"))
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	applier, resolver, state := newTestApplier(t)
	files := NewFileManager()

	applier.Apply(testPlan())

	undo := files.Undo(state.GetOperationsToUndo(), state.StateDir)
	assert.Empty(t, undo.Failed)

	_, err := os.Stat(resolver.Resolve("src/app.py"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(resolver.Resolve("README.md"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(resolver.Resolve("docs"))
	assert.True(t, os.IsNotExist(err))

	redo := files.Redo(state.GetOperationsToRedo(), state.StateDir)
	assert.Empty(t, redo.Failed)

	content, err := os.ReadFile(resolver.Resolve("src/app.py"))
	require.NoError(t, err)
	assert.Equal(t, "print('hi')\n", string(content))
}

func TestUndoRefusesModifiedFile(t *testing.T) {
	applier, resolver, state := newTestApplier(t)
	files := NewFileManager()

	applier.Apply(testPlan())

	// Simulate a user edit after the apply.
	target := resolver.Resolve("src/app.py")
	require.NoError(t, os.WriteFile(target, []byte("edited by hand"), 0644))

	undo := files.Undo(state.GetOperationsToUndo(), state.StateDir)
	assert.Contains(t, undo.Failed, target)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "edited by hand", string(content))
}

func TestUndoFillRestoresPreviousContent(t *testing.T) {
	applier, resolver, state := newTestApplier(t)
	files := NewFileManager()

	target := resolver.Resolve("notes.txt")
	require.NoError(t, os.WriteFile(target, []byte("original"), 0644))

	plan := &Plan{
		Tree: ParsedTree{Files: []string{"notes.txt"}},
		Decisions: []FillDecision{{
			Template: "notes.txt",
			Project:  "notes.txt",
			Body:     "replaced",
			Status:   StatusConflict,
			Selected: true,
		}},
	}
	s := applier.Apply(plan)
	assert.Equal(t, []string{"notes.txt"}, s.Filled)

	undo := files.Undo(state.GetOperationsToUndo(), state.StateDir)
	assert.Empty(t, undo.Failed)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "original", string(content))
}

func TestStateHistoryPersists(t *testing.T) {
	applier, resolver, _ := newTestApplier(t)

	applier.Apply(testPlan())

	_, err := os.Stat(filepath.Join(resolver.Root(), stateDirName, stateFileName))
	require.NoError(t, err)

	// A fresh manager over the same root sees the recorded entry.
	reloaded, err := NewStateManager(resolver.Root())
	require.NoError(t, err)
	assert.NotEmpty(t, reloaded.GetOperationsToUndo())
}
