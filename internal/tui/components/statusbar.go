package components

import (
	"fmt"

	"pmlens/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar with load info on the right.
func RenderStatusBar(width int, dataAge string, fromCache bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]help  [y]ear  [+/-]horizon  [q]uit"
	right := ""
	if dataAge != "" {
		src := "parsed"
		if fromCache {
			src = "cached"
		}
		right = fmt.Sprintf("Data: %s (%s) ", dataAge, src)
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
