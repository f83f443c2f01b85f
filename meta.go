package scaffold

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// MetaFileName is the sidecar written next to a generated project. It holds
// the comments map from the parsed tree, keyed by root-relative path.
const MetaFileName = ".scaffold_meta.json"

// LoadMetadata reads the sidecar under root. A missing or unreadable sidecar
// is an empty map, never an error.
func LoadMetadata(root string) map[string]string {
	data, err := os.ReadFile(filepath.Join(root, MetaFileName))
	if err != nil {
		return map[string]string{}
	}
	meta := map[string]string{}
	if err := json.Unmarshal(data, &meta); err != nil {
		return map[string]string{}
	}
	return meta
}

func SaveMetadata(root string, meta map[string]string) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(root, MetaFileName), data, 0644)
}

// MergeMetadata applies updates over existing: a new non-empty comment
// overwrites the old value for the same key, absent keys are left untouched.
func MergeMetadata(existing, updates map[string]string) map[string]string {
	merged := make(map[string]string, len(existing)+len(updates))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range updates {
		if v != "" {
			merged[k] = v
		}
	}
	return merged
}
