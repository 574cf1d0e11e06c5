package components

import (
	"fmt"
	"math"
	"strings"

	"pmlens/internal/model"
	"pmlens/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Render(buf.String())
}

// RenderChart renders a declarative chart spec as terminal art. Line
// specs with a dashed dataset (the projected tail of a forecast) get the
// tail drawn in a dimmer color; everything else renders as bars.
func RenderChart(spec model.ChartSpec, width, height int) string {
	if len(spec.Datasets) == 0 {
		return ""
	}
	t := theme.Active

	values := make([]float64, 0, len(spec.Labels))
	dashedFrom := -1
	for _, ds := range spec.Datasets {
		if ds.Dashed && dashedFrom < 0 {
			dashedFrom = len(values)
		}
		values = append(values, ds.Data...)
	}

	money := spec.Options.YFormat == "money"
	return barChart(values, spec.Labels, dashedFrom, money, t.Blue, width, height)
}

// BarChart renders a single-series bar chart with a labeled Y axis.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	return barChart(values, labels, -1, false, color, width, height)
}

// barChart is the shared renderer. Bars at index >= dashedFrom (when
// set) draw in the dim text color to mark projected values.
func barChart(values []float64, labels []string, dashedFrom int, money bool, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}

	t := theme.Active

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	yLabelW := len(axisLabel(maxVal, money)) + 1
	if yLabelW < 4 {
		yLabelW = 4
	}

	chartW := width - yLabelW - 1
	if chartW < 5 {
		chartW = 5
	}

	n := len(values)
	gap := 1
	if n <= 1 {
		gap = 0
	}
	barW := chartW
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	}
	if barW < 1 {
		barW = 1
		gap = 0
	}
	if barW > 6 {
		barW = 6
	}
	axisLen := n*barW + (n-1)*gap
	if axisLen < 0 {
		axisLen = 0
	}

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder

	for row := height; row >= 1; row-- {
		rowTop := maxVal * float64(row) / float64(height)
		rowBottom := maxVal * float64(row-1) / float64(height)

		label := ""
		if row == height {
			label = axisLabel(maxVal, money)
		} else if row == height/2 {
			label = axisLabel(maxVal/2, money)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(" ")
			}
			barColor := color
			if dashedFrom >= 0 && i >= dashedFrom {
				barColor = t.TextDim
			}
			barStyle := lipgloss.NewStyle().Foreground(barColor)
			switch {
			case v >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				frac := (v - rowBottom) / (rowTop - rowBottom)
				idx := int(frac * 8)
				if idx > 8 {
					idx = 8
				}
				if idx < 1 {
					idx = 1
				}
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(strings.Repeat(" ", barW))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))

	if len(labels) == len(values) && n > 0 {
		buf := make([]byte, axisLen)
		for i := range buf {
			buf[i] = ' '
		}
		lastEnd := -1
		for i := 0; i < n; i++ {
			pos := i * (barW + gap)
			lbl := labels[i]
			end := pos + len(lbl)
			if pos <= lastEnd || end > axisLen {
				continue
			}
			copy(buf[pos:end], lbl)
			lastEnd = end
		}
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", yLabelW+1))
		b.WriteString(axisStyle.Render(strings.TrimRight(string(buf), " ")))
	}

	return b.String()
}

// ShareBar renders a labeled horizontal bar scaled to share of the max.
func ShareBar(label string, value, maxValue float64, color lipgloss.Color, labelW, barW int) string {
	t := theme.Active
	if maxValue <= 0 {
		maxValue = 1
	}

	filled := int(value / maxValue * float64(barW))
	if filled > barW {
		filled = barW
	}
	if filled < 0 {
		filled = 0
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	barStyle := lipgloss.NewStyle().Foreground(color)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) + " " +
		barStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", barW-filled))
}

// axisLabel formats a Y-axis tick value compactly.
func axisLabel(v float64, money bool) string {
	s := formatChartLabel(v)
	if money {
		return "$" + s
	}
	return s
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e9:
		if v == math.Trunc(v/1e9)*1e9 {
			return fmt.Sprintf("%.0fB", v/1e9)
		}
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
