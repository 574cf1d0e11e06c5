package components

import (
	"fmt"
	"strings"

	"pmlens/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a simple block progress bar with percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	filledStyle := lipgloss.NewStyle().Foreground(t.Accent)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	pctStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	return filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", width-filled)) +
		" " + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// ColorForRisk maps a 0-100 risk score to green/yellow/orange/red.
func ColorForRisk(score float64) string {
	t := theme.Active
	switch {
	case score >= 75:
		return string(t.Red)
	case score >= 50:
		return string(t.Orange)
	case score >= 25:
		return string(t.Yellow)
	default:
		return string(t.Green)
	}
}

// RiskBar renders a labeled risk gauge with the score shown alongside.
// score is on the 0-100 scale.
func RiskBar(label string, score float64, labelW, barW int) string {
	t := theme.Active

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	pct := score / 100

	bar := progress.New(
		progress.WithSolidFill(ColorForRisk(score)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	scoreStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForRisk(score))).Bold(true)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) + " " +
		bar.ViewAs(pct) + " " +
		scoreStyle.Render(fmt.Sprintf("%3.0f", score))
}

// ProbabilityBar renders a labeled 0-1 probability gauge.
func ProbabilityBar(label string, p float64, labelW, barW int) string {
	t := theme.Active

	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForRisk(p*100)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pctStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) + " " +
		bar.ViewAs(p) + " " +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", p*100))
}
