package tui

import (
	"fmt"
	"strings"

	"pmlens/internal/cli"
	"pmlens/internal/tui/components"
	"pmlens/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderActionsTab(cw, contentH int) string {
	t := theme.Active
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	greenStyle := lipgloss.NewStyle().Foreground(t.Green).Bold(true)
	var b strings.Builder

	recs := a.view.Actions
	if len(recs) == 0 {
		return dimStyle.Render("\n  No projects in the selected year.")
	}

	limit := contentH - 6
	if limit < 3 {
		limit = 3
	}
	if limit > len(recs) {
		limit = len(recs)
	}

	var body strings.Builder
	body.WriteString(mutedStyle.Render(fmt.Sprintf("%-22s %-24s %10s %8s %8s",
		"Project", "Action", "Savings", "Impact", "Effort")))
	var total float64
	for _, r := range recs[:limit] {
		total += r.Savings
		body.WriteString("\n")
		body.WriteString(fmt.Sprintf("%-22s %-24s %10s %8s %8s",
			truncStr(r.ProjectName, 22),
			truncStr(r.Action, 24),
			cli.FormatMoney(r.Savings),
			cli.FormatPercent(r.Impact),
			cli.FormatPercent(r.Effort)))
	}

	b.WriteString(components.ContentCard(
		fmt.Sprintf("Recommended Actions (top %d)", limit), body.String(), cw))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("  %s %s",
		mutedStyle.Render("Estimated savings shown:"),
		greenStyle.Render(cli.FormatMoney(total))))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Impact and effort shown at band midpoints (no sampling in the TUI)."))

	return b.String()
}
