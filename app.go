package scaffold

import (
	"fmt"
	"runtime/debug"
)

// App wires the pure parsing/matching core to its collaborators: input
// source, path resolver, state history and the file writer backend.
type App struct {
	cfg      *Config
	resolver *PathResolver
	state    *StateManager // created on first mutating operation
	source   *SourceProvider
	files    *FileManager
	writer   FileWriter
}

// DetailedError carries the stack of a recovered panic so the CLI can show
// something more useful than the bare message.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string { return e.Err.Error() }

func NewApp(cfg *Config) (*App, error) {
	resolver, err := NewPathResolver(cfg.Root)
	if err != nil {
		return nil, err
	}

	var writer FileWriter = OSWriter{}
	if cfg.UseNvim {
		nv, err := NewNvimWriter()
		if err != nil {
			return nil, fmt.Errorf("nvim backend unavailable: %w", err)
		}
		writer = nv
	}

	return &App{
		cfg:      cfg,
		resolver: resolver,
		source:   NewSourceProvider(),
		files:    NewFileManager(),
		writer:   writer,
	}, nil
}

// stateManager creates the .scaffold state dir on demand. Read-only paths
// (preview, scan, plan building) never call it, so they leave the target
// directory untouched.
func (a *App) stateManager() (*StateManager, error) {
	if a.state == nil {
		state, err := NewStateManager(a.resolver.Root())
		if err != nil {
			return nil, err
		}
		a.state = state
	}
	return a.state, nil
}

func (a *App) Close() {
	if c, ok := a.writer.(interface{ Close() }); ok {
		c.Close()
	}
}

// BuildPlan parses the structure text (and template text, when present) and
// produces the reviewable plan. It touches the filesystem only through the
// read probe.
func (a *App) BuildPlan() (*Plan, error) {
	structure, err := a.source.GetContent(a.cfg.StructurePath)
	if err != nil {
		return nil, fmt.Errorf("reading structure: %w", err)
	}

	tree := NewTreeParser(a.cfg.Tables).Parse(structure)
	plan := &Plan{Tree: tree, Blocks: map[string]string{}}

	if a.cfg.TemplatePath == "" {
		return plan, nil
	}

	template, err := a.source.GetContent(a.cfg.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}

	plan.Blocks = ParseTemplate(template, a.cfg.Tables)

	templatePaths := make([]string, 0, len(plan.Blocks))
	for p := range plan.Blocks {
		templatePaths = append(templatePaths, p)
	}
	plan.Matches = MatchPaths(templatePaths, tree.Files)
	plan.Decisions = PlanFill(plan.Matches, plan.Blocks, a.resolver.Probe())
	return plan, nil
}

// Apply materializes a reviewed plan and records history. Panics inside the
// apply loop surface as DetailedError instead of killing the process.
func (a *App) Apply(plan *Plan) (s Summary, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{Err: fmt.Errorf("panic: %v", r), Stack: debug.Stack()}
		}
	}()

	if plan.Tree.Empty() {
		return Summary{Message: "Nothing to do"}, nil
	}
	state, err := a.stateManager()
	if err != nil {
		return Summary{}, err
	}
	s = NewApplier(a.resolver, state, a.writer).Apply(plan)
	s.Message = fmt.Sprintf("Project ready at %s", a.resolver.Root())
	if s.Changed() == 0 && len(s.Failed) == 0 {
		s.Message = "Nothing to do"
	}
	return s, nil
}

func (a *App) Undo() (Summary, error) {
	state, err := a.stateManager()
	if err != nil {
		return Summary{}, err
	}
	ops := state.GetOperationsToUndo()
	if len(ops) == 0 {
		return Summary{Message: "Nothing to undo"}, nil
	}
	s := a.files.Undo(ops, state.StateDir)
	s.Message = "Undone"
	return s, nil
}

func (a *App) Redo() (Summary, error) {
	state, err := a.stateManager()
	if err != nil {
		return Summary{}, err
	}
	ops := state.GetOperationsToRedo()
	if len(ops) == 0 {
		return Summary{Message: "Nothing to redo"}, nil
	}
	s := a.files.Redo(ops, state.StateDir)
	s.Message = "Redone"
	return s, nil
}

func (a *App) Scan() (string, error) {
	return GenerateTree(a.resolver.Root(), a.cfg.Tables, a.cfg.ScanDepth)
}
