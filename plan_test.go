package scaffold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeProbe(contents map[string]string) ReadProbe {
	return func(path string) (bool, string) {
		c, ok := contents[path]
		return ok, c
	}
}

func TestPlanFillClassification(t *testing.T) {
	matches := []Match{
		{Template: "new.py", Project: "new.py"},
		{Template: "empty.py", Project: "empty.py"},
		{Template: "same.py", Project: "same.py"},
		{Template: "diff.py", Project: "diff.py"},
	}
	blocks := map[string]string{
		"new.py":   "a = 1",
		"empty.py": "b = 2",
		"same.py":  "c = 3",
		"diff.py":  "d = 4",
	}
	probe := fakeProbe(map[string]string{
		"empty.py": "",
		"same.py":  "c = 3\n",
		"diff.py":  "something else",
	})

	plan := PlanFill(matches, blocks, probe)
	require.Len(t, plan, 4)

	byProject := map[string]FillDecision{}
	for _, d := range plan {
		byProject[d.Project] = d
	}

	assert.Equal(t, StatusNewFile, byProject["new.py"].Status)
	assert.True(t, byProject["new.py"].Selected)

	assert.Equal(t, StatusEmptyFile, byProject["empty.py"].Status)
	assert.True(t, byProject["empty.py"].Selected)

	// Identical after trimming: auto-deselected.
	assert.Equal(t, StatusIdenticalContent, byProject["same.py"].Status)
	assert.False(t, byProject["same.py"].Selected)

	// Conflicts stay selected but flagged.
	assert.Equal(t, StatusConflict, byProject["diff.py"].Status)
	assert.True(t, byProject["diff.py"].Selected)
}

func TestPlanFillWhitespaceOnlyFileIsEmpty(t *testing.T) {
	plan := PlanFill(
		[]Match{{Template: "a.py", Project: "a.py"}},
		map[string]string{"a.py": "x = 1"},
		fakeProbe(map[string]string{"a.py": "  \n\t\n"}),
	)

	require.Len(t, plan, 1)
	assert.Equal(t, StatusEmptyFile, plan[0].Status)
}

func TestPlanFillSkipsMatchesWithoutBlocks(t *testing.T) {
	plan := PlanFill(
		[]Match{{Template: "gone.py", Project: "gone.py"}},
		map[string]string{},
		fakeProbe(nil),
	)
	assert.Empty(t, plan)
}
