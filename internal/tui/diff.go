package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

var (
	diffDelLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	diffAddLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
)

type diffLine struct {
	op   dmp.Operation
	text string
}

// diffLines compares before and after line by line.
func diffLines(before, after string) []diffLine {
	d := dmp.New()
	a, b, lines := d.DiffLinesToChars(before, after)
	diffs := d.DiffCharsToLines(d.DiffMain(a, b, false), lines)

	var out []diffLine
	for _, df := range diffs {
		for _, line := range strings.SplitAfter(df.Text, "\n") {
			if line == "" {
				continue
			}
			out = append(out, diffLine{op: df.Type, text: strings.TrimSuffix(line, "\n")})
		}
	}
	return out
}

// renderDiff renders a unified line diff of the generated code before and
// after the last change.
func renderDiff(before, after string) string {
	if before == after {
		return "No changes\n"
	}
	var sb strings.Builder
	for _, l := range diffLines(before, after) {
		switch l.op {
		case dmp.DiffDelete:
			sb.WriteString(diffDelLine.Render("- " + l.text))
		case dmp.DiffInsert:
			sb.WriteString(diffAddLine.Render("+ " + l.text))
		default:
			sb.WriteString(faintStyle.Render("  " + l.text))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
