package scaffold

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the runtime configuration for one invocation. Flags fill most of
// it; environment variables (optionally from a .env next to the project)
// extend the heuristic tables and tune defaults.
type Config struct {
	Root          string
	StructurePath string
	TemplatePath  string
	Preview       bool
	Yes           bool
	Undo          bool
	Redo          bool
	UseNvim       bool
	ScanDepth     int

	Tables Tables
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	tables := DefaultTables()
	for _, ext := range envList("SCAFFOLD_EXTRA_EXTENSIONS") {
		tables.KnownExtensions[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	for _, name := range envList("SCAFFOLD_EXTRA_SPECIAL_FILES") {
		tables.SpecialFilenames[name] = struct{}{}
	}
	for _, dir := range envList("SCAFFOLD_IGNORE_DIRS") {
		tables.IgnoredDirs[dir] = struct{}{}
	}

	return &Config{
		Root:      envOr("SCAFFOLD_ROOT", ""),
		ScanDepth: envInt("SCAFFOLD_SCAN_DEPTH", 10),
		Tables:    tables,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
