package cli

import (
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/sarchlab/eelift/insts"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// badgeColors are the backgrounds of the flow-kind badges.
var badgeColors = map[insts.BranchKind]string{
	insts.FlowUnconditional:   "33",
	insts.FlowConditionalPair: "141",
	insts.FlowCall:            "42",
	insts.FlowIndirectCall:    "36",
	insts.FlowReturn:          "196",
	insts.FlowIndirectJump:    "208",
	insts.FlowSystemCall:      "220",
	insts.FlowExceptionReturn: "160",
}

func header(text string, color bool) string {
	if !color {
		return "# " + text
	}
	return headerStyle.Render(text)
}

func title(text string, color bool) string {
	if !color {
		return text
	}
	return titleStyle.Render(text)
}

func dim(text string, color bool) string {
	if !color {
		return text
	}
	return dimStyle.Render(text)
}

// badge annotates a listing line with its control-flow kind. Plain
// output uses an assembler comment.
func badge(kind insts.BranchKind, color bool) string {
	if kind == insts.FlowNone {
		return ""
	}
	if !color {
		return "; " + kind.String()
	}
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(badgeColors[kind])).
		Render(kind.String())
}
