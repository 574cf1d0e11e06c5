package tui

import (
	"fmt"
	"strings"

	"pmlens/internal/cli"
	"pmlens/internal/tui/components"
	"pmlens/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	p := a.view.Portfolio
	var b strings.Builder

	// Row 1: headline metrics
	overrunNote := ""
	if p.TotalBudget > 0 {
		overrunNote = cli.FormatPercent(p.TotalOverrun/p.TotalBudget) + " of budget"
	}
	slipNote := fmt.Sprintf("over %d projects", p.SlipSampleSize)

	cards := []components.Metric{
		{Label: "Projects", Value: cli.FormatNumber(int64(p.TotalProjects)), Note: fmt.Sprintf("%d in flight", p.InFlight)},
		{Label: "Budget", Value: cli.FormatMoney(p.TotalBudget), Note: "actual " + cli.FormatMoney(p.TotalActual)},
		{Label: "Overrun", Value: cli.FormatMoney(p.TotalOverrun), Note: overrunNote},
		{Label: "Mean Slip", Value: cli.FormatDays(p.MeanSlipDays), Note: slipNote},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: change orders + overrun probability
	halves := components.LayoutRow(cw, 2)

	coBody := fmt.Sprintf("%s orders · %s total",
		cli.FormatNumber(int64(p.ChangeOrders)), cli.FormatMoney(p.ChangeOrderCost))
	if p.VarianceSampleSize > 0 {
		coBody += fmt.Sprintf("\nCost variance ×%.2f over %d projects",
			p.MeanVarianceRatio, p.VarianceSampleSize)
	}
	coCard := components.ContentCard("Change Orders", coBody, halves[0])

	probW := components.CardInnerWidth(halves[1]) - 18
	if probW < 8 {
		probW = 8
	}
	probBody := components.ProbabilityBar("Baseline", a.view.Probability.Baseline, 8, probW) + "\n" +
		components.ProbabilityBar("Adjusted", a.view.Probability.Adjusted, 8, probW)
	probCard := components.ContentCard(
		fmt.Sprintf("Overrun Probability (%d eligible)", a.view.Probability.Eligible),
		probBody, halves[1])

	if a.isCompactLayout() {
		b.WriteString(coCard)
		b.WriteString("\n")
		b.WriteString(probCard)
	} else {
		b.WriteString(components.CardRow([]string{coCard, probCard}))
	}
	b.WriteString("\n")

	// Row 3: yearly charts from the declarative specs
	if spec := a.chartByTitle("Projects by year"); spec != nil {
		chartHalves := components.LayoutRow(cw, 2)
		left := components.ContentCard(spec.Title,
			components.RenderChart(*spec, components.CardInnerWidth(chartHalves[0]), 8),
			chartHalves[0])

		right := ""
		if spend := a.chartByTitle("Actual spend by year"); spend != nil {
			right = components.ContentCard(spend.Title,
				components.RenderChart(*spend, components.CardInnerWidth(chartHalves[1]), 8),
				chartHalves[1])
		}

		if a.isCompactLayout() {
			b.WriteString(left)
			b.WriteString("\n")
			if right != "" {
				b.WriteString(right)
				b.WriteString("\n")
			}
		} else {
			b.WriteString(components.CardRow([]string{left, right}))
			b.WriteString("\n")
		}
	}

	// Row 4: change-order reasons with share bars
	if len(a.view.Reasons) > 0 {
		innerW := components.CardInnerWidth(cw)
		barW := innerW - 24 - 10
		if barW < 10 {
			barW = 10
		}
		maxCost := a.view.Reasons[0].Cost
		var body strings.Builder
		limit := 5
		if len(a.view.Reasons) < limit {
			limit = len(a.view.Reasons)
		}
		for i, rs := range a.view.Reasons[:limit] {
			if i > 0 {
				body.WriteString("\n")
			}
			body.WriteString(components.ShareBar(truncStr(rs.Reason, 22), rs.Cost, maxCost, t.Accent, 22, barW))
			body.WriteString(fmt.Sprintf(" %5.1f%%", rs.SharePercent))
		}
		b.WriteString(components.ContentCard("Change-Order Reasons", body.String(), cw))
	}

	return b.String()
}
