package scaffold

import (
	"os"
	"path/filepath"
	"sort"
)

// Summary reports an apply, undo or redo run. Failures are per path; one
// failed write never aborts the rest of the batch.
type Summary struct {
	Dirs     []string
	Created  []string
	Filled   []string
	Restored []string
	Removed  []string
	Skipped  []string
	Failed   []string
	Message  string
}

func (s Summary) Changed() int {
	return len(s.Dirs) + len(s.Created) + len(s.Filled) + len(s.Restored) + len(s.Removed)
}

// Plan is everything the review step needs and the apply step consumes:
// the parsed structure, the extracted template bodies, and the per-match
// fill decisions.
type Plan struct {
	Tree      ParsedTree
	Blocks    map[string]string
	Matches   []Match
	Decisions []FillDecision
}

// Applier materializes a plan: directories first, then empty declared files,
// then the selected fills, recording each effect for undo. It holds the
// collaborators the core deliberately does not own.
type Applier struct {
	resolver *PathResolver
	state    *StateManager
	writer   FileWriter
}

func NewApplier(resolver *PathResolver, state *StateManager, writer FileWriter) *Applier {
	return &Applier{resolver: resolver, state: state, writer: writer}
}

func (a *Applier) Apply(plan *Plan) Summary {
	var s Summary
	var ops []Operation

	for _, dir := range plan.Tree.Dirs {
		abs := a.resolver.Resolve(dir)
		if info, err := os.Stat(abs); err == nil {
			// A file squatting on a declared directory path cannot be
			// skipped over: everything beneath it would fail anyway.
			if info.IsDir() {
				s.Skipped = append(s.Skipped, dir)
			} else {
				s.Failed = append(s.Failed, dir)
			}
			continue
		}
		if err := os.MkdirAll(abs, 0755); err != nil {
			s.Failed = append(s.Failed, dir)
			continue
		}
		s.Dirs = append(s.Dirs, dir)
		ops = append(ops, a.state.NewOperation(ActionMkdir, abs, ""))
	}

	created := make(map[string]bool)
	for _, file := range plan.Tree.Files {
		abs := a.resolver.Resolve(file)
		if info, err := os.Stat(abs); err == nil {
			if info.IsDir() {
				s.Failed = append(s.Failed, file)
			} else {
				s.Skipped = append(s.Skipped, file)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
			s.Failed = append(s.Failed, file)
			continue
		}
		if err := os.WriteFile(abs, nil, 0644); err != nil {
			s.Failed = append(s.Failed, file)
			continue
		}
		s.Created = append(s.Created, file)
		created[abs] = true
	}

	filled := make(map[string]bool)
	for _, d := range plan.Decisions {
		if !d.Selected {
			s.Skipped = append(s.Skipped, d.Project)
			continue
		}
		abs := a.resolver.Resolve(d.Project)

		// A file touched and filled in the same run is one fill with no
		// prior content: undoing it removes the file instead of restoring
		// the empty placeholder.
		oldHash := ""
		if !created[abs] {
			oldHash, _ = GetFileSHA256(abs)
			if oldHash != "" {
				if content, err := os.ReadFile(abs); err == nil {
					_ = WriteBlob(a.state.StateDir, oldHash, content)
				}
			}
		}

		if err := a.writer.WriteFile(abs, d.Body+"\n"); err != nil {
			s.Failed = append(s.Failed, d.Project)
			continue
		}
		s.Filled = append(s.Filled, d.Project)
		filled[abs] = true
		ops = append(ops, a.state.NewOperation(ActionFill, abs, oldHash))
	}

	for abs := range created {
		if !filled[abs] {
			ops = append(ops, a.state.NewOperation(ActionCreate, abs, ""))
		}
	}

	if len(plan.Tree.Comments) > 0 {
		merged := MergeMetadata(LoadMetadata(a.resolver.Root()), plan.Tree.Comments)
		if err := SaveMetadata(a.resolver.Root(), merged); err != nil {
			s.Failed = append(s.Failed, MetaFileName)
		}
	}

	SortOperations(ops)
	a.state.Write(ops)

	sort.Strings(s.Skipped)
	return s
}
