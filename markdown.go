package scaffold

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var hintPathRe = regexp.MustCompile("`([^`\n]+)`")

// FencedTemplates extracts file templates from a markdown blob. The path for
// a fenced code block comes from the paragraph right before the fence
// (backtick-quoted or bare), or failing that from a comment header on the
// block's first line. Blocks with no resolvable path are skipped; a later
// block for the same path overwrites an earlier one.
func FencedTemplates(content string, tables Tables) map[string]string {
	source := []byte(content)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))
	scanner := NewHeaderScanner(tables)

	templates := make(map[string]string)
	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if path, body := fencedTemplate(fence, source, scanner); path != "" && body != "" {
			templates[path] = body
		}
		return ast.WalkSkipChildren, nil
	}
	if err := ast.Walk(root, walker); err != nil {
		return map[string]string{}
	}
	return templates
}

// fencedTemplate resolves one code block to a (path, body) pair. Blocks that
// yield no valid path, or whose body is blank, stay anonymous.
func fencedTemplate(fence *ast.FencedCodeBlock, source []byte, scanner *HeaderScanner) (string, string) {
	var buf bytes.Buffer
	lines := fence.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	body := buf.String()

	if p, ok := fence.PreviousSibling().(*ast.Paragraph); ok {
		hint := strings.TrimSpace(string(p.Text(source)))
		if m := hintPathRe.FindStringSubmatch(hint); m != nil {
			if c := strings.TrimSpace(m[1]); scanner.ValidPath(c) {
				return c, strings.Trim(body, "\n")
			}
		}
		// Renderers differ on whether the hint keeps its backticks.
		if scanner.ValidPath(hint) {
			return hint, strings.Trim(body, "\n")
		}
	}

	// No usable hint: accept a "# path" comment as the block's first line.
	first, rest, _ := strings.Cut(body, "\n")
	if m := bareHeaderRe.FindStringSubmatch(first); m != nil && scanner.ValidPath(m[1]) {
		return m[1], strings.Trim(rest, "\n")
	}
	return "", ""
}
