package scaffold

import (
	"sort"
	"strings"
)

// Match pairs a template-declared path with a parsed project file path.
type Match struct {
	Template string
	Project  string
}

// NormalizePath unifies separators, trims leading and trailing ones and
// folds case. Normalized paths are for matching and deduplication only,
// never for display. Normalization is idempotent.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.Trim(p, "/")
	return strings.ToLower(p)
}

type matchStrategy struct {
	name string
	fn   func(template, project string) bool
}

// Strategies run in fixed priority order over normalized paths. Each sees
// only paths no earlier strategy claimed, so an exact match can never be
// displaced by a looser one.
var matchStrategies = []matchStrategy{
	{"exact", func(t, p string) bool {
		return t == p
	}},
	{"root-stripped", func(t, p string) bool {
		// Templates are often authored with a project-root prefix the
		// structure text omits.
		i := strings.Index(t, "/")
		return i >= 0 && t[i+1:] == p
	}},
	{"filename", func(t, p string) bool {
		return lastSegments(t, 1) == lastSegments(p, 1)
	}},
	{"suffix", func(t, p string) bool {
		ts, ps := lastSegments(t, 2), lastSegments(p, 2)
		return strings.Contains(ts, "/") && ts == ps
	}},
	{"substring", func(t, p string) bool {
		return strings.Contains(p, t) || strings.HasSuffix(p, t)
	}},
}

func lastSegments(path string, n int) string {
	segs := strings.Split(path, "/")
	if len(segs) <= n {
		return path
	}
	return strings.Join(segs[len(segs)-n:], "/")
}

// MatchPaths produces a best-effort one-to-one pairing of template paths to
// project file paths. Matching is greedy and first-found-wins within each
// strategy, with no backtracking across strategies. Both sides are iterated
// in sorted order so the result is reproducible for identical inputs.
func MatchPaths(templatePaths, projectPaths []string) []Match {
	remainingT := normalizedSet(templatePaths)
	remainingP := normalizedSet(projectPaths)

	var matches []Match
	for _, strat := range matchStrategies {
		for _, tn := range sortedNormKeys(remainingT) {
			for _, pn := range sortedNormKeys(remainingP) {
				if !strat.fn(tn, pn) {
					continue
				}
				matches = append(matches, Match{
					Template: remainingT[tn],
					Project:  remainingP[pn],
				})
				delete(remainingT, tn)
				delete(remainingP, pn)
				break
			}
		}
	}
	return matches
}

// normalizedSet maps normalized form back to the original spelling. When two
// inputs normalize identically the later sorted one wins; they are
// indistinguishable to every strategy anyway.
func normalizedSet(paths []string) map[string]string {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	m := make(map[string]string, len(sorted))
	for _, p := range sorted {
		if NormalizePath(p) == "" {
			continue
		}
		m[NormalizePath(p)] = p
	}
	return m
}

func sortedNormKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
