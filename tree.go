package scaffold

import (
	"regexp"
	"sort"
	"strings"
)

// ParsedTree is the result of parsing a pasted tree description. Files and
// Dirs hold root-relative forward-slash paths, sorted and deduplicated.
// Comments maps a path to its trailing "#" annotation.
type ParsedTree struct {
	Files    []string
	Dirs     []string
	Comments map[string]string
}

func (p ParsedTree) Empty() bool {
	return len(p.Files) == 0 && len(p.Dirs) == 0
}

// Decoration glyphs are purely visual: box-drawing connectors and the emoji
// markers some generators prepend to entries.
var (
	decorationRe = regexp.MustCompile(`[│├└─┌┐┘┤┴┬┼╭╮╰╯]|📄|📂|📁|📋|🔧|🎨|⚙️`)
	emojiRe      = regexp.MustCompile(`📄|📂|📁|📋|🔧|🎨|⚙️`)
)

// IndentTier names the signal that produced an indentation level, so degraded
// guesses are distinguishable from confident ones.
type IndentTier int

const (
	IndentNone IndentTier = iota
	IndentPipes
	IndentBranch
	IndentSpaces
	IndentFallback
)

type TreeParser struct {
	tables Tables
}

func NewTreeParser(tables Tables) *TreeParser {
	return &TreeParser{tables: tables}
}

// Parse converts loosely formatted tree text into files, directories and
// comments. It has no failure mode: unparseable lines degrade per the
// documented heuristics and an empty input yields an empty tree.
func (p *TreeParser) Parse(text string) ParsedTree {
	lines := strings.Split(text, "\n")

	files := make(map[string]struct{})
	dirs := make(map[string]struct{})
	comments := make(map[string]string)

	// If the first non-trivial line names a directory, treat it as the root:
	// it is stripped from every derived path, and a repeat of the same line
	// starts a fresh tree (people paste several scans in sequence).
	root := ""
	for _, line := range lines {
		cleaned := cleanLine(stripComment(line))
		if cleaned == "" {
			continue
		}
		if strings.HasSuffix(cleaned, "/") {
			root = strings.TrimSuffix(cleaned, "/")
		}
		break
	}

	levels := make(map[int]string)

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		body, comment := line, ""
		if i := strings.Index(line, "#"); i >= 0 {
			body, comment = line[:i], strings.TrimSpace(line[i+1:])
		}

		cleaned := cleanLine(body)
		if cleaned == "" {
			continue
		}
		if root != "" && cleaned == root+"/" {
			levels = make(map[int]string)
			continue
		}

		level, _ := indentLevel(body)
		isDir := strings.HasSuffix(cleaned, "/")
		name := strings.TrimSuffix(cleaned, "/")

		parent := ""
		for check := level - 1; check >= 0; check-- {
			if path, ok := levels[check]; ok {
				parent = path
				break
			}
		}

		full := name
		if parent != "" {
			full = parent + "/" + name
		}

		if root != "" {
			if strings.HasPrefix(full, root+"/") {
				full = full[len(root)+1:]
			} else if full == root {
				continue
			}
		}
		if full == "" {
			continue
		}

		if comment != "" {
			comments[full] = comment
		}

		kind, _ := p.tables.Classify(name, isDir)
		if kind == KindDirectory {
			dirs[full] = struct{}{}
			levels[level] = full
			for k := range levels {
				if k > level {
					delete(levels, k)
				}
			}
			continue
		}

		files[full] = struct{}{}
		// A file implies every directory on its parent chain even when the
		// tree never listed them on their own lines.
		segs := strings.Split(full, "/")
		for i := 1; i < len(segs); i++ {
			dirs[strings.Join(segs[:i], "/")] = struct{}{}
		}
	}

	return ParsedTree{
		Files:    sortedKeys(files),
		Dirs:     sortedKeys(dirs),
		Comments: comments,
	}
}

func cleanLine(line string) string {
	return strings.TrimSpace(decorationRe.ReplaceAllString(line, ""))
}

// indentLevel derives a nesting level from a line's structural prefix. Three
// prefix styles are tried: vertical connectors, a branch glyph with leading
// spaces, and bare whitespace. Space runs are divided by the first candidate
// unit width that divides them evenly; when none does, the result degrades to
// an integer divide by the widest common unit.
func indentLevel(line string) (int, IndentTier) {
	stripped := emojiRe.ReplaceAllString(line, "")

	leading := 0
	for _, r := range stripped {
		if r == ' ' {
			leading++
		} else if r == '\t' {
			leading += 4
		} else {
			break
		}
	}

	pipes := strings.Count(stripped, "│")
	hasBranch := strings.ContainsAny(stripped, "├└")

	switch {
	case pipes > 0:
		if hasBranch {
			return pipes + 1, IndentPipes
		}
		return pipes, IndentPipes

	case hasBranch:
		if leading == 0 {
			return 1, IndentBranch
		}
		for _, unit := range []int{4, 2, 8, 3} {
			if leading%unit == 0 {
				return leading/unit + 1, IndentBranch
			}
		}
		return 1, IndentFallback

	default:
		if leading == 0 {
			return 0, IndentNone
		}
		for _, unit := range []int{4, 2, 8} {
			if leading%unit == 0 {
				return leading / unit, IndentSpaces
			}
		}
		return leading / 4, IndentFallback
	}
}

func stripComment(line string) string {
	if i := strings.Index(line, "#"); i >= 0 {
		return line[:i]
	}
	return line
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
