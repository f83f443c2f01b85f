package scaffold

import (
	"regexp"
	"sort"
	"strings"
)

// TemplateHeader is a candidate "the following code belongs to file X" line.
// Confidence is in [0,1]; headers under MinHeaderConfidence never survive
// filtering.
type TemplateHeader struct {
	Line       int
	Path       string
	Confidence float64
}

const (
	MinHeaderConfidence = 0.55
	maxHeaderPathLen    = 255
)

var (
	fencedHeaderRe = regexp.MustCompile(`^\s*(?:#|//)\s*={3,}\s*(.+?)\s*={3,}\s*$`)
	dashHeaderRe   = regexp.MustCompile(`^\s*(?:#|//)\s*(\S+?)\s*[-=]{3,}\s*$`)
	bareHeaderRe   = regexp.MustCompile(`^\s*(?:#|//)\s*(\S+)\s*$`)
	commentLineRe  = regexp.MustCompile(`^\s*(?:#|//)\s*(.*?)\s*$`)
	pathTokenRe    = regexp.MustCompile(`[A-Za-z0-9_./\\-]+`)
	separatorRe    = regexp.MustCompile(`^\s*(?:#|//)\s*[-=]{10,}\s*$`)
	docstringRe    = regexp.MustCompile(`^\s*(?:"""|''')`)
	illegalPathRe  = regexp.MustCompile(`[<>:"|?*\s]`)
)

type HeaderScanner struct {
	tables Tables
}

func NewHeaderScanner(tables Tables) *HeaderScanner {
	return &HeaderScanner{tables: tables}
}

// Scan scores every line of a pasted template blob as a candidate file
// header. Four recognition rules apply in decreasing order of strength; the
// first that yields a syntactically valid path wins the line. Survivors are
// filtered by the confidence floor and deduplicated case-insensitively,
// keeping the highest-confidence header per normalized path in original line
// order.
func (s *HeaderScanner) Scan(text string) []TemplateHeader {
	lines := strings.Split(text, "\n")
	var headers []TemplateHeader

	for i, line := range lines {
		path, conf, ok := s.scoreLine(lines, i, line)
		if !ok {
			continue
		}
		headers = append(headers, TemplateHeader{Line: i, Path: path, Confidence: conf})
	}

	return filterHeaders(headers)
}

func (s *HeaderScanner) scoreLine(lines []string, i int, line string) (string, float64, bool) {
	if m := fencedHeaderRe.FindStringSubmatch(line); m != nil {
		if s.ValidPath(m[1]) {
			return m[1], 0.95, true
		}
	}

	if m := dashHeaderRe.FindStringSubmatch(line); m != nil {
		if s.ValidPath(m[1]) {
			return m[1], 0.90, true
		}
	}

	if m := bareHeaderRe.FindStringSubmatch(line); m != nil {
		if s.ValidPath(m[1]) {
			conf := 0.80
			if i+1 < len(lines) {
				next := lines[i+1]
				if strings.TrimSpace(next) == "" || docstringRe.MatchString(next) {
					conf = 0.85
				}
			}
			if i > 0 && separatorRe.MatchString(lines[i-1]) {
				conf = 0.90
			}
			return m[1], conf, true
		}
	}

	// Weakest rule: a comment line that is mostly one path-like token.
	if m := commentLineRe.FindStringSubmatch(line); m != nil {
		content := m[1]
		if content == "" {
			return "", 0, false
		}
		for _, token := range pathTokenRe.FindAllString(content, -1) {
			if len(token)*2 > len(content) && s.ValidPath(token) {
				return token, 0.60, true
			}
		}
	}

	return "", 0, false
}

// ValidPath is the syntactic gate for header candidates. It accepts a string
// when it is non-empty, short enough, free of characters illegal in paths,
// and either names a known special file, carries a known extension, or splits
// on separators into at least two non-empty segments.
func (s *HeaderScanner) ValidPath(p string) bool {
	if p == "" || len(p) > maxHeaderPathLen {
		return false
	}
	if illegalPathRe.MatchString(p) {
		return false
	}

	norm := strings.ReplaceAll(p, "\\", "/")
	norm = strings.Trim(norm, "/")
	if norm == "" {
		return false
	}

	segs := strings.Split(norm, "/")
	base := segs[len(segs)-1]
	if base == "" {
		return false
	}

	if s.tables.specialFilename(base) || s.tables.knownExtension(base) {
		return true
	}

	if len(segs) >= 2 {
		for _, seg := range segs {
			if seg == "" {
				return false
			}
		}
		return true
	}
	return false
}

func filterHeaders(headers []TemplateHeader) []TemplateHeader {
	best := make(map[string]TemplateHeader)
	for _, h := range headers {
		if h.Confidence < MinHeaderConfidence {
			continue
		}
		key := NormalizePath(h.Path)
		if prev, ok := best[key]; ok && prev.Confidence >= h.Confidence {
			continue
		}
		best[key] = h
	}

	out := make([]TemplateHeader, 0, len(best))
	for _, h := range best {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}
