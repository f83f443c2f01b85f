package scaffold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFencedTemplatesWithHint(t *testing.T) {
	input := "`src/app.py`\n\n```python\nprint('hi')\n```\n"

	blocks := FencedTemplates(input, DefaultTables())

	require.Len(t, blocks, 1)
	assert.Equal(t, "print('hi')", blocks["src/app.py"])
}

func TestFencedTemplatesHeaderInsideBlock(t *testing.T) {
	input := "```python\n# config.py\nDEBUG = True\n```\n"

	blocks := FencedTemplates(input, DefaultTables())

	require.Len(t, blocks, 1)
	assert.Equal(t, "DEBUG = True", blocks["config.py"])
}

func TestFencedTemplatesSkipsAnonymousBlocks(t *testing.T) {
	input := "Some prose.\n\n```python\nprint('no path anywhere')\n```\n"

	blocks := FencedTemplates(input, DefaultTables())
	assert.Empty(t, blocks)
}

func TestFencedTemplatesLastBlockWins(t *testing.T) {
	input := "`app.py`\n\n```python\nfirst = 1\n```\n\n`app.py`\n\n```python\nsecond = 2\n```\n"

	blocks := FencedTemplates(input, DefaultTables())

	require.Len(t, blocks, 1)
	assert.Equal(t, "second = 2", blocks["app.py"])
}

func TestParseTemplatePrefersFencedBlocks(t *testing.T) {
	input := "`src/app.py`\n\n```python\n# ==== other.py ====\nx = 1\n```\n"

	blocks := ParseTemplate(input, DefaultTables())

	require.Contains(t, blocks, "src/app.py")
	assert.NotContains(t, blocks, "other.py")
}
