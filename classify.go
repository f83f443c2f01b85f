package scaffold

import "strings"

type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

func (k Kind) String() string {
	if k == KindFile {
		return "file"
	}
	return "directory"
}

// ClassifyTier reports which rule decided a classification, so callers and
// tests can tell a confident answer apart from the default fallthrough.
type ClassifyTier int

const (
	TierTrailingSlash ClassifyTier = iota
	TierExtension
	TierSpecialName
	TierDotfile
	TierDefaultDirectory
)

// Tables holds the heuristic lookup tables used by the tree parser and the
// header scanner. Callers get them from DefaultTables (plus config overrides)
// and may inject custom tables in tests.
type Tables struct {
	KnownExtensions  map[string]struct{}
	SpecialFilenames map[string]struct{}
	IgnoredDirs      map[string]struct{}
}

func DefaultTables() Tables {
	return Tables{
		KnownExtensions: stringSet(
			"py", "go", "js", "jsx", "ts", "tsx", "rb", "rs", "java", "kt",
			"c", "h", "cc", "cpp", "hpp", "cs", "sh", "bash", "zsh",
			"json", "yaml", "yml", "toml", "ini", "cfg", "conf", "env",
			"md", "rst", "txt", "html", "htm", "css", "scss", "xml", "sql",
			"mod", "sum", "lock", "proto", "tmpl", "tpl",
		),
		SpecialFilenames: stringSet(
			"Makefile", "Dockerfile", "README", "LICENSE", "CHANGELOG",
			"Gemfile", "Rakefile", "Procfile", "Vagrantfile",
		),
		IgnoredDirs: stringSet(
			".git", "__pycache__", "node_modules", ".venv", "venv",
			"vendor", "dist", ".idea", ".vscode",
		),
	}
}

func stringSet(items ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Classify decides whether a bare name denotes a file or a directory.
// trailingSlash is the strong signal from the source line and overrides
// everything else. The function is total: any input yields an answer, and
// ambiguous extensionless names fall through to Directory. That default
// silently mis-types extensionless files not in the special table (a literal
// "data" file parses as a directory); downstream creation logic relies on it.
func (t Tables) Classify(name string, trailingSlash bool) (Kind, ClassifyTier) {
	if trailingSlash {
		return KindDirectory, TierTrailingSlash
	}
	if dot := strings.LastIndex(name, "."); dot > 0 && dot < len(name)-1 {
		return KindFile, TierExtension
	}
	if _, ok := t.SpecialFilenames[name]; ok {
		return KindFile, TierSpecialName
	}
	if strings.HasPrefix(name, ".") && name != "." {
		return KindFile, TierDotfile
	}
	return KindDirectory, TierDefaultDirectory
}

// knownExtension reports whether the lowercased extension of the final path
// segment is in the table. The leading dot is not part of table keys.
func (t Tables) knownExtension(base string) bool {
	dot := strings.LastIndex(base, ".")
	if dot < 0 || dot == len(base)-1 {
		return false
	}
	_, ok := t.KnownExtensions[strings.ToLower(base[dot+1:])]
	return ok
}

func (t Tables) specialFilename(base string) bool {
	_, ok := t.SpecialFilenames[base]
	return ok
}
