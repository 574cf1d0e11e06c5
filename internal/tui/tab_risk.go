package tui

import (
	"fmt"
	"strings"

	"pmlens/internal/cli"
	"pmlens/internal/tui/components"
	"pmlens/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderRiskTab(cw, contentH int) string {
	t := theme.Active
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	var b strings.Builder

	scores := a.view.Risks
	if len(scores) == 0 {
		return dimStyle.Render("\n  No projects in the selected year.")
	}

	// Fit as many rows as the content area allows, capped at topN.
	limit := contentH - 8
	if limit < 3 {
		limit = 3
	}
	if a.topN > 0 && limit > a.topN {
		limit = a.topN
	}
	if limit > len(scores) {
		limit = len(scores)
	}

	innerW := components.CardInnerWidth(cw)
	labelW := 24
	barW := innerW - labelW - 20
	if barW < 10 {
		barW = 10
	}

	var body strings.Builder
	body.WriteString(mutedStyle.Render(fmt.Sprintf("%-*s %-*s %4s %7s",
		labelW, "Project", barW+5, "Rule score", "", "Spread")))
	for _, s := range scores[:limit] {
		body.WriteString("\n")
		body.WriteString(components.RiskBar(truncStr(s.ProjectName, labelW), float64(s.RuleScore), labelW, barW))
		body.WriteString(fmt.Sprintf(" %6.0f", s.SpreadScore))
	}

	b.WriteString(components.ContentCard(
		fmt.Sprintf("Risk Scores (%d of %d)", limit, len(scores)), body.String(), cw))
	b.WriteString("\n")

	// Footer: scoring legend + overrun probability context
	b.WriteString(dimStyle.Render("  Rule: budget scale + slip + change-order load, 0-100."))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Spread: cohort-normalized composite, shown without jitter."))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s %s",
		mutedStyle.Render("Portfolio overrun probability:"),
		cli.FormatPercent(a.view.Probability.Adjusted)))

	return b.String()
}
