package scaffold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanRecognitionRules(t *testing.T) {
	scanner := NewHeaderScanner(DefaultTables())

	tests := []struct {
		name     string
		input    string
		wantPath string
		wantConf float64
	}{
		{
			"fenced marker",
			"# ==== src/app.py ====\nx = 1",
			"src/app.py", 0.95,
		},
		{
			"trailing dashes",
			"# config.py ----------\nDEBUG = True",
			"config.py", 0.90,
		},
		{
			"bare path",
			"# util.py\nimport os",
			"util.py", 0.80,
		},
		{
			"bare path before blank line",
			"# util.py\n\nimport os",
			"util.py", 0.85,
		},
		{
			"bare path before docstring",
			"# util.py\n\"\"\"helpers\"\"\"",
			"util.py", 0.85,
		},
		{
			"bare path after separator",
			"# ------------------\n# util.py\nimport os",
			"util.py", 0.90,
		},
		{
			"slash comment prefix",
			"// pkg/server.go\npackage server",
			"pkg/server.go", 0.80,
		},
		{
			"embedded path",
			"# see src/main.py here\nx = 1",
			"src/main.py", 0.60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := scanner.Scan(tt.input)
			require.Len(t, headers, 1)
			assert.Equal(t, tt.wantPath, headers[0].Path)
			assert.InDelta(t, tt.wantConf, headers[0].Confidence, 1e-9)
		})
	}
}

func TestScanRejectsProse(t *testing.T) {
	scanner := NewHeaderScanner(DefaultTables())

	inputs := []string{
		"# this is just an ordinary comment line",
		"# ------------------------------------",
		"# TODO fix the frobnicator",
		"plain code line without comment prefix",
		"x = 'src/app.py'",
	}
	for _, input := range inputs {
		assert.Empty(t, scanner.Scan(input), "input: %q", input)
	}
}

func TestScanConfidenceFloorAndOrdering(t *testing.T) {
	scanner := NewHeaderScanner(DefaultTables())

	input := "# ==== src/app.py ====\nx = 1\n\n# config.py\nDEBUG = True"
	headers := scanner.Scan(input)

	require.Len(t, headers, 2)
	assert.Equal(t, "src/app.py", headers[0].Path)
	assert.Equal(t, "config.py", headers[1].Path)
	for _, h := range headers {
		assert.GreaterOrEqual(t, h.Confidence, MinHeaderConfidence)
	}
	assert.Less(t, headers[0].Line, headers[1].Line)
}

func TestScanDuplicateResolution(t *testing.T) {
	scanner := NewHeaderScanner(DefaultTables())

	// Same file declared twice with different markers and case: only the
	// higher-confidence header survives.
	input := "# app.py\nx = 1\n# ==== APP.PY ====\ny = 2"
	headers := scanner.Scan(input)

	require.Len(t, headers, 1)
	assert.Equal(t, "APP.PY", headers[0].Path)
	assert.InDelta(t, 0.95, headers[0].Confidence, 1e-9)
}

func TestValidPath(t *testing.T) {
	scanner := NewHeaderScanner(DefaultTables())

	tests := []struct {
		path string
		want bool
	}{
		{"src/app.py", true},
		{"app.py", true},
		{"Makefile", true},
		{"pkg\\server.go", true},
		{"pkg/noext", true},
		{"noext", false},
		{"", false},
		{"has space.py", false},
		{"bad|pipe.py", false},
		{"q?.py", false},
		{"///", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, scanner.ValidPath(tt.path), "path: %q", tt.path)
	}
}
