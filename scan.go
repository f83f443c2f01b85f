package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// keepHidden are the dotted names a scan still lists.
var keepHidden = map[string]struct{}{
	".gitignore": {},
	".env":       {},
}

// GenerateTree renders an existing directory as tree text the parser can
// round-trip, re-attaching comments from the sidecar. Ignored and hidden
// entries are filtered; recursion stops at maxDepth.
func GenerateTree(root string, tables Tables, maxDepth int) (string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("cannot scan %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("cannot scan %q: not a directory", root)
	}

	meta := LoadMetadata(root)

	var b strings.Builder
	b.WriteString(filepath.Base(root) + "/\n")
	if err := writeTreeLevel(&b, root, "", "", tables, meta, maxDepth, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeTreeLevel(b *strings.Builder, dir, prefix, parentRel string, tables Tables, meta map[string]string, maxDepth, depth int) error {
	if depth > maxDepth {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsPermission(err) {
			b.WriteString(prefix + "[permission denied]\n")
			return nil
		}
		return err
	}

	var kept []os.DirEntry
	for _, e := range entries {
		if skipEntry(e.Name(), tables) {
			continue
		}
		kept = append(kept, e)
	}

	// Directories first, then case-insensitive by name.
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].IsDir() != kept[j].IsDir() {
			return kept[i].IsDir()
		}
		return strings.ToLower(kept[i].Name()) < strings.ToLower(kept[j].Name())
	})

	for i, e := range kept {
		last := i == len(kept)-1
		connector, childPrefix := "├── ", prefix+"│   "
		if last {
			connector, childPrefix = "└── ", prefix+"    "
		}

		rel := e.Name()
		if parentRel != "" {
			rel = parentRel + "/" + e.Name()
		}

		comment := ""
		if c, ok := meta[rel]; ok {
			comment = "  # " + c
		}

		if e.IsDir() {
			fmt.Fprintf(b, "%s%s%s/%s\n", prefix, connector, e.Name(), comment)
			if err := writeTreeLevel(b, filepath.Join(dir, e.Name()), childPrefix, rel, tables, meta, maxDepth, depth+1); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintf(b, "%s%s%s%s\n", prefix, connector, e.Name(), comment)
	}
	return nil
}

func skipEntry(name string, tables Tables) bool {
	if name == MetaFileName || name == stateDirName {
		return true
	}
	if _, ok := tables.IgnoredDirs[name]; ok {
		return true
	}
	if strings.HasPrefix(name, ".") {
		_, keep := keepHidden[name]
		return !keep
	}
	return false
}
