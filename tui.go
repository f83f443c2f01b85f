package scaffold

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	dirStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
)

func FormatSummary(s Summary) string {
	var b strings.Builder
	if s.Message != "" {
		b.WriteString(headerStyle.Render(s.Message) + "\n\n")
	}

	renderList := func(title string, style lipgloss.Style, list []string) {
		if len(list) == 0 {
			return
		}
		b.WriteString(style.Render(title) + "\n")
		for _, f := range list {
			b.WriteString(fmt.Sprintf("  %s\n", f))
		}
	}

	renderList("Directories:", dirStyle, s.Dirs)
	renderList("Created:", successStyle, s.Created)
	renderList("Filled:", successStyle, s.Filled)
	renderList("Restored:", successStyle, s.Restored)
	renderList("Removed:", warningStyle, s.Removed)
	renderList("Skipped:", dimStyle, s.Skipped)
	renderList("Failed:", errorStyle, s.Failed)

	return b.String()
}

// FormatPlan renders a preview of what an apply would do, without touching
// the filesystem.
func FormatPlan(plan *Plan) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Parsed structure") + "\n")
	b.WriteString(fmt.Sprintf("  %d directories, %d files, %d comments\n\n",
		len(plan.Tree.Dirs), len(plan.Tree.Files), len(plan.Tree.Comments)))

	for _, d := range plan.Tree.Dirs {
		b.WriteString(dirStyle.Render("  "+d+"/") + "\n")
	}
	for _, f := range plan.Tree.Files {
		line := "  " + f
		if c, ok := plan.Tree.Comments[f]; ok {
			line += dimStyle.Render("  # "+c)
		}
		b.WriteString(line + "\n")
	}

	if len(plan.Decisions) > 0 {
		b.WriteString("\n" + headerStyle.Render("Template fills") + "\n")
		for _, d := range plan.Decisions {
			b.WriteString(fmt.Sprintf("  %s  %s\n", d.Project, statusLabel(d.Status)))
		}
	} else if len(plan.Blocks) > 0 {
		b.WriteString("\n" + warningStyle.Render("No template blocks matched the structure") + "\n")
	}
	return b.String()
}

func statusLabel(s FillStatus) string {
	switch s {
	case StatusNewFile:
		return successStyle.Render("[" + s.String() + "]")
	case StatusEmptyFile:
		return dirStyle.Render("[" + s.String() + "]")
	case StatusIdenticalContent:
		return dimStyle.Render("[" + s.String() + "]")
	default:
		return warningStyle.Render("[" + s.String() + "]")
	}
}

// reviewModel is the interactive checklist for fill decisions: space
// toggles, a/n selects all or none, enter applies, q or esc cancels.
type reviewModel struct {
	decisions []FillDecision
	cursor    int
	accepted  bool
}

func (m reviewModel) Init() tea.Cmd { return nil }

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.decisions)-1 {
			m.cursor++
		}
	case " ":
		m.decisions[m.cursor].Selected = !m.decisions[m.cursor].Selected
	case "a":
		for i := range m.decisions {
			m.decisions[i].Selected = true
		}
	case "n":
		for i := range m.decisions {
			m.decisions[i].Selected = false
		}
	case "enter":
		m.accepted = true
		return m, tea.Quit
	}
	return m, nil
}

func (m reviewModel) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Select files to fill") + "\n")
	b.WriteString(dimStyle.Render("space toggle · a all · n none · enter apply · q cancel") + "\n\n")

	for i, d := range m.decisions {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		check := "[ ]"
		if d.Selected {
			check = selectedStyle.Render("[x]")
		}
		b.WriteString(fmt.Sprintf("%s%s %s  %s\n", cursor, check, d.Project, statusLabel(d.Status)))
	}

	conflicts := 0
	for _, d := range m.decisions {
		if d.Status == StatusConflict && d.Selected {
			conflicts++
		}
	}
	if conflicts > 0 {
		b.WriteString("\n" + warningStyle.Render(
			fmt.Sprintf("%d file(s) will be overwritten; undo is available", conflicts)) + "\n")
	}
	return b.String()
}

// ReviewPlan runs the interactive checklist and returns the edited decisions
// and whether the user confirmed. With no decisions to review it confirms
// immediately.
func ReviewPlan(decisions []FillDecision) ([]FillDecision, bool, error) {
	if len(decisions) == 0 {
		return decisions, true, nil
	}

	edited := append([]FillDecision(nil), decisions...)
	final, err := tea.NewProgram(reviewModel{decisions: edited}).Run()
	if err != nil {
		return decisions, false, err
	}

	m, ok := final.(reviewModel)
	if !ok {
		return decisions, false, fmt.Errorf("unexpected review model type")
	}
	return m.decisions, m.accepted, nil
}
