package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	stateDirName   = ".scaffold"
	stateFileName  = "history.scaffold"
	BlobsDir       = "blobs"
	entrySeparator = "\n===\n"
	opSeparator    = "\n---\n"
	none           = "-"
)

// Operation actions.
const (
	ActionMkdir  = "mkdir"
	ActionCreate = "create"
	ActionFill   = "fill"
)

// Operation is one recorded filesystem effect of an apply run. Paths are
// absolute. For fills, OldContentHash names the blob holding the previous
// content and ContentHash the blob holding the written content.
type Operation struct {
	Timestamp      int64
	Action         string
	Path           string
	OldContentHash string
	ContentHash    string
}

type HistoryEntry struct {
	Operations []Operation
}

type State struct {
	History      []HistoryEntry
	CurrentIndex int
}

// StateManager persists apply history under <root>/.scaffold as a plain text
// log plus content blobs, and walks it for undo/redo.
type StateManager struct {
	statePath string
	state     *State
	StateDir  string
}

func NewStateManager(root string) (*StateManager, error) {
	dir := filepath.Join(root, stateDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	m := &StateManager{statePath: filepath.Join(dir, stateFileName), StateDir: dir}
	m.state = &State{CurrentIndex: -1, History: []HistoryEntry{}}
	_ = m.load()
	return m, nil
}

func (m *StateManager) load() error {
	data, err := os.ReadFile(m.statePath)
	if err != nil {
		return err
	}

	blocks := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), entrySeparator)
	if len(blocks) == 0 {
		return nil
	}

	idx, _ := strconv.Atoi(strings.TrimSpace(blocks[0]))
	m.state = &State{CurrentIndex: idx, History: []HistoryEntry{}}

	for _, b := range blocks[1:] {
		entry := HistoryEntry{}
		for _, opBlock := range strings.Split(strings.TrimSpace(b), opSeparator) {
			lines := strings.Split(strings.TrimSpace(opBlock), "\n")
			if len(lines) < 5 {
				continue
			}

			val := func(s string) string {
				s = strings.TrimSpace(s)
				if s == none {
					return ""
				}
				return s
			}

			ts, _ := strconv.ParseInt(strings.TrimSpace(lines[0]), 10, 64)
			entry.Operations = append(entry.Operations, Operation{
				Timestamp:      ts,
				Action:         val(lines[1]),
				Path:           val(lines[2]),
				OldContentHash: val(lines[3]),
				ContentHash:    val(lines[4]),
			})
		}
		m.state.History = append(m.state.History, entry)
	}
	return nil
}

func (m *StateManager) save() {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", m.state.CurrentIndex)

	placeholder := func(s string) string {
		if s == "" {
			return none
		}
		return s
	}

	for _, e := range m.state.History {
		b.WriteString(entrySeparator)
		for i, op := range e.Operations {
			fmt.Fprintf(&b, "%d\n%s\n%s\n%s\n%s",
				op.Timestamp, placeholder(op.Action), placeholder(op.Path),
				placeholder(op.OldContentHash), placeholder(op.ContentHash))
			if i < len(e.Operations)-1 {
				b.WriteString(opSeparator)
			}
		}
	}
	_ = os.WriteFile(m.statePath, []byte(b.String()), 0644)
}

// Sync drops history entries that no longer describe the filesystem. Edits
// made outside the tool since the last apply invalidate everything after the
// newest entry whose recorded hashes still hold.
func (m *StateManager) Sync() {
	if m.state.CurrentIndex < 0 {
		return
	}

	for i := m.state.CurrentIndex; i >= 0; i-- {
		if m.matchState(i) {
			if i < m.state.CurrentIndex {
				m.state.History = m.state.History[:i+1]
				m.state.CurrentIndex = i
				m.save()
			}
			return
		}
	}

	m.state.History = []HistoryEntry{}
	m.state.CurrentIndex = -1
	m.save()
}

func (m *StateManager) matchState(idx int) bool {
	if idx < 0 || idx >= len(m.state.History) {
		return false
	}

	for _, op := range m.state.History[idx].Operations {
		switch op.Action {
		case ActionMkdir:
			info, err := os.Stat(op.Path)
			if err != nil || !info.IsDir() {
				return false
			}
		default:
			currentHash, err := GetFileSHA256(op.Path)
			if err != nil || currentHash != op.ContentHash {
				return false
			}
		}
	}
	return true
}

func (m *StateManager) Write(ops []Operation) {
	if len(ops) == 0 {
		return
	}
	m.Sync()
	if m.state.CurrentIndex < len(m.state.History)-1 {
		m.state.History = m.state.History[:m.state.CurrentIndex+1]
	}
	m.state.History = append(m.state.History, HistoryEntry{Operations: ops})
	m.state.CurrentIndex++
	m.save()
}

func (m *StateManager) GetOperationsToUndo() []Operation {
	if m.state.CurrentIndex < 0 {
		return nil
	}
	ops := m.state.History[m.state.CurrentIndex].Operations
	m.state.CurrentIndex--
	m.save()
	return ops
}

func (m *StateManager) GetOperationsToRedo() []Operation {
	if m.state.CurrentIndex+1 >= len(m.state.History) {
		return nil
	}
	m.state.CurrentIndex++
	ops := m.state.History[m.state.CurrentIndex].Operations
	m.save()
	return ops
}

// NewOperation records an effect at the current time, hashing the path's
// resulting content for later verification. Mkdir operations carry no hash.
func (m *StateManager) NewOperation(action, path, oldHash string) Operation {
	op := Operation{
		Timestamp:      time.Now().UTC().Unix(),
		Action:         action,
		Path:           path,
		OldContentHash: oldHash,
	}
	if action != ActionMkdir {
		hash, _ := GetFileSHA256(path)
		op.ContentHash = hash
		if hash != "" {
			if content, err := os.ReadFile(path); err == nil {
				_ = WriteBlob(m.StateDir, hash, content)
			}
		}
	}
	return op
}

// SortOperations orders operations for stable history files: directories
// first so undo (which walks in reverse) removes them last.
func SortOperations(ops []Operation) {
	rank := func(op Operation) int {
		if op.Action == ActionMkdir {
			return 0
		}
		return 1
	}
	sort.SliceStable(ops, func(i, j int) bool {
		if rank(ops[i]) != rank(ops[j]) {
			return rank(ops[i]) < rank(ops[j])
		}
		return ops[i].Path < ops[j].Path
	})
}
