package tui

import (
	"fmt"
	"strings"

	"pmlens/internal/cli"
	"pmlens/internal/tui/components"
	"pmlens/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderTrendsTab(cw int) string {
	t := theme.Active
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	var b strings.Builder

	// Forecast chart: observed bars plus the dimmed projected tail.
	if spec := a.chartByTitle("Spend forecast"); spec != nil {
		fit := ""
		if a.view.Trend.Points < 2 {
			fit = "flat projection (fewer than two observed years)"
		} else {
			fit = fmt.Sprintf("slope %s/yr over %d years", cli.FormatMoney(a.view.Trend.Slope), a.view.Trend.Points)
		}
		body := components.RenderChart(*spec, components.CardInnerWidth(cw), 10) + "\n" +
			dimStyle.Render(fit)
		b.WriteString(components.ContentCard(
			fmt.Sprintf("%s (+%d years)", spec.Title, a.horizon), body, cw))
		b.WriteString("\n")
	}

	// Yearly rollup table
	if len(a.view.Years) > 0 {
		var body strings.Builder
		body.WriteString(headStyle.Render(fmt.Sprintf("%-6s %9s %9s %9s %6s %9s %8s",
			"Year", "Projects", "Budget", "Actual", "COs", "CO Cost", "Slip")))
		for _, ys := range a.view.Years {
			slip := "—"
			if ys.SlipSamples > 0 {
				slip = cli.FormatDays(ys.MeanSlipDays)
			}
			body.WriteString("\n")
			body.WriteString(fmt.Sprintf("%-6d %9s %9s %9s %6s %9s %8s",
				ys.Year,
				cli.FormatNumber(int64(ys.Projects)),
				cli.FormatMoney(ys.Budget),
				cli.FormatMoney(ys.Actual),
				cli.FormatNumber(int64(ys.ChangeOrders)),
				cli.FormatMoney(ys.COCost),
				slip))
		}
		b.WriteString(components.ContentCard("By Year", body.String(), cw))
		b.WriteString("\n")
	}

	// Monthly change-order chart when a year filter is active.
	if spec := a.chartByTitle("Change-order cost by month"); spec != nil {
		labels := make([]string, len(spec.Labels))
		for i, l := range spec.Labels {
			month := 0
			fmt.Sscanf(l, "%d", &month)
			labels[i] = cli.MonthName(month)
		}
		monthly := *spec
		monthly.Labels = labels
		b.WriteString(components.ContentCard(spec.Title,
			components.RenderChart(monthly, components.CardInnerWidth(cw), 7), cw))
		b.WriteString("\n")
	}

	// Spend sparkline footer
	if len(a.view.Years) > 1 {
		vals := make([]float64, len(a.view.Years))
		for i, ys := range a.view.Years {
			vals[i] = ys.Actual
		}
		b.WriteString("  ")
		b.WriteString(components.Sparkline(vals, t.Accent))
	}

	return b.String()
}
