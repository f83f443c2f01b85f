package scaffold

import "strings"

// ExtractBlocks slices template text into per-file code bodies using the
// surviving headers. Each body runs from the line after its header to the
// line before the next one. Decorative separator comments are dropped (plus
// one blank line directly after each), with a best-effort docstring toggle so
// separator-shaped lines inside a docstring stay put. Headers whose body
// trims away to nothing are discarded: a header with no code is not a file.
func ExtractBlocks(text string, headers []TemplateHeader) map[string]string {
	if len(headers) == 0 {
		return map[string]string{}
	}
	lines := strings.Split(text, "\n")

	blocks := make(map[string]string, len(headers))
	for i, h := range headers {
		end := len(lines)
		if i+1 < len(headers) {
			end = headers[i+1].Line
		}
		if h.Line+1 > end {
			continue
		}

		body := extractBody(lines[h.Line+1 : end])
		if body == "" {
			continue
		}
		blocks[h.Path] = body
	}
	return blocks
}

func extractBody(lines []string) string {
	var kept []string
	inDocstring := false
	skipBlank := false

	for _, line := range lines {
		if !inDocstring && separatorRe.MatchString(line) {
			skipBlank = true
			continue
		}
		if skipBlank {
			skipBlank = false
			if strings.TrimSpace(line) == "" {
				continue
			}
		}

		if n := strings.Count(line, `"""`) + strings.Count(line, "'''"); n%2 == 1 {
			inDocstring = !inDocstring
		}
		kept = append(kept, line)
	}

	start := 0
	for start < len(kept) && strings.TrimSpace(kept[start]) == "" {
		start++
	}
	end := len(kept)
	for end > start && strings.TrimSpace(kept[end-1]) == "" {
		end--
	}
	return strings.Join(kept[start:end], "\n")
}

// ParseTemplate is the one-call entry point for template blobs. Markdown
// input with path-annotated fenced code blocks is handled structurally;
// anything else goes through the heuristic header scanner.
func ParseTemplate(text string, tables Tables) map[string]string {
	if blocks := FencedTemplates(text, tables); len(blocks) > 0 {
		return blocks
	}
	scanner := NewHeaderScanner(tables)
	return ExtractBlocks(text, scanner.Scan(text))
}
