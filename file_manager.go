package scaffold

import (
	"os"
	"path/filepath"
)

// FileManager executes recorded operations in reverse (undo) or forward
// (redo). Every step verifies the on-disk content hash first; a file edited
// since the operation was recorded is left alone and reported as failed.
type FileManager struct{}

func NewFileManager() *FileManager {
	return &FileManager{}
}

func (m *FileManager) Undo(ops []Operation, stateDir string) Summary {
	var s Summary
	for i := len(ops) - 1; i >= 0; i-- {
		op := ops[i]
		switch op.Action {
		case ActionMkdir:
			// Only remove directories that are still empty.
			if empty, err := IsEmptyDir(op.Path); err != nil || !empty {
				s.Skipped = append(s.Skipped, op.Path)
				continue
			}
			if os.Remove(op.Path) == nil {
				s.Removed = append(s.Removed, op.Path)
			} else {
				s.Failed = append(s.Failed, op.Path)
			}

		case ActionCreate:
			if !m.hashMatches(op.Path, op.ContentHash) {
				s.Failed = append(s.Failed, op.Path)
				continue
			}
			if os.Remove(op.Path) == nil {
				s.Removed = append(s.Removed, op.Path)
			} else {
				s.Failed = append(s.Failed, op.Path)
			}

		case ActionFill:
			if !m.hashMatches(op.Path, op.ContentHash) {
				s.Failed = append(s.Failed, op.Path)
				continue
			}
			if op.OldContentHash == "" {
				if os.Remove(op.Path) == nil {
					s.Removed = append(s.Removed, op.Path)
				} else {
					s.Failed = append(s.Failed, op.Path)
				}
				continue
			}
			content, err := ReadBlob(stateDir, op.OldContentHash)
			if err != nil || os.WriteFile(op.Path, content, 0644) != nil {
				s.Failed = append(s.Failed, op.Path)
				continue
			}
			s.Restored = append(s.Restored, op.Path)
		}
	}
	return s
}

func (m *FileManager) Redo(ops []Operation, stateDir string) Summary {
	var s Summary
	for _, op := range ops {
		switch op.Action {
		case ActionMkdir:
			if os.MkdirAll(op.Path, 0755) == nil {
				s.Dirs = append(s.Dirs, op.Path)
			} else {
				s.Failed = append(s.Failed, op.Path)
			}

		case ActionCreate:
			if _, err := os.Stat(op.Path); err == nil {
				s.Skipped = append(s.Skipped, op.Path)
				continue
			}
			if os.MkdirAll(filepath.Dir(op.Path), 0755) != nil ||
				os.WriteFile(op.Path, nil, 0644) != nil {
				s.Failed = append(s.Failed, op.Path)
				continue
			}
			s.Created = append(s.Created, op.Path)

		case ActionFill:
			if !m.hashMatches(op.Path, op.OldContentHash) {
				s.Failed = append(s.Failed, op.Path)
				continue
			}
			content, err := ReadBlob(stateDir, op.ContentHash)
			if err != nil {
				s.Failed = append(s.Failed, op.Path)
				continue
			}
			if os.MkdirAll(filepath.Dir(op.Path), 0755) != nil ||
				os.WriteFile(op.Path, content, 0644) != nil {
				s.Failed = append(s.Failed, op.Path)
				continue
			}
			s.Filled = append(s.Filled, op.Path)
		}
	}
	return s
}

// hashMatches treats an empty expected hash as "the file must not exist".
func (m *FileManager) hashMatches(path, expected string) bool {
	actual, err := GetFileSHA256(path)
	if err != nil {
		return expected == "" && os.IsNotExist(err)
	}
	return actual == expected
}
