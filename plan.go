package scaffold

import "strings"

type FillStatus int

const (
	StatusNewFile FillStatus = iota
	StatusEmptyFile
	StatusIdenticalContent
	StatusConflict
)

func (s FillStatus) String() string {
	switch s {
	case StatusNewFile:
		return "new file"
	case StatusEmptyFile:
		return "empty file"
	case StatusIdenticalContent:
		return "same content"
	case StatusConflict:
		return "different content - will overwrite"
	}
	return "unknown"
}

// FillDecision is one reviewable row of the fill plan. Selected carries the
// default check state: identical content is deselected; everything else,
// conflicts included, starts selected, with the conflict flagged in review.
type FillDecision struct {
	Template string
	Project  string
	Body     string
	Status   FillStatus
	Selected bool
}

// ReadProbe answers whether a project-relative path currently exists and
// with what content. It is the planner's only window onto the filesystem;
// the planner itself does no I/O.
type ReadProbe func(path string) (exists bool, content string)

// PlanFill classifies each match against the current state of its project
// file. Matches whose template body is missing from blocks are skipped: they
// have nothing to write.
func PlanFill(matches []Match, blocks map[string]string, probe ReadProbe) []FillDecision {
	var plan []FillDecision
	for _, m := range matches {
		body, ok := blocks[m.Template]
		if !ok {
			continue
		}

		d := FillDecision{
			Template: m.Template,
			Project:  m.Project,
			Body:     body,
			Selected: true,
		}

		exists, content := probe(m.Project)
		switch {
		case !exists:
			d.Status = StatusNewFile
		case strings.TrimSpace(content) == "":
			d.Status = StatusEmptyFile
		case strings.TrimSpace(content) == strings.TrimSpace(body):
			d.Status = StatusIdenticalContent
			d.Selected = false
		default:
			d.Status = StatusConflict
		}

		plan = append(plan, d)
	}
	return plan
}
