// Package report renders a RunSummary as lipgloss-styled text for the CLI.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dotweave/dot/internal/domain"
)

var (
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	skippedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	conflictStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("179")).Bold(true)
	failureStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	summaryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Bold(true)
)

// Render writes one styled line per action report, followed by a summary
// line, to w. When quiet is true, the per-action lines are suppressed and
// only the summary is written.
func Render(w io.Writer, summary domain.RunSummary, quiet bool) {
	if !quiet {
		for _, r := range summary.Reports {
			fmt.Fprintln(w, renderLine(r))
		}
	}
	fmt.Fprintln(w, renderSummary(summary))
}

func renderLine(r domain.ActionReport) string {
	target := r.Action.Target.String()
	switch r.Status {
	case domain.StatusSuccess:
		return successStyle.Render(fmt.Sprintf("  %s  %s", r.Action.Kind, target))
	case domain.StatusSkipped:
		msg := target
		if r.Message != "" {
			msg = fmt.Sprintf("%s (%s)", target, r.Message)
		}
		return skippedStyle.Render(fmt.Sprintf("  skip  %s", msg))
	case domain.StatusConflictPrevented:
		msg := target
		if r.Message != "" {
			msg = fmt.Sprintf("%s: %s", target, r.Message)
		}
		return conflictStyle.Render(fmt.Sprintf("  conflict  %s", msg))
	case domain.StatusFailure:
		msg := target
		if r.Message != "" {
			msg = fmt.Sprintf("%s: %s", target, r.Message)
		}
		return failureStyle.Render(fmt.Sprintf("  failed  %s", msg))
	default:
		return fmt.Sprintf("  ?  %s", target)
	}
}

func renderSummary(s domain.RunSummary) string {
	parts := []string{
		fmt.Sprintf("%d successful", s.Successful),
		fmt.Sprintf("%d skipped", s.Skipped),
		fmt.Sprintf("%d conflicts", s.Conflicts),
		fmt.Sprintf("%d failures", s.Failures),
	}
	return summaryStyle.Render(strings.Join(parts, ", "))
}
