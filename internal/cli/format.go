// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatMoney formats a dollar amount with magnitude suffixes.
// e.g., 1234 -> "$1.2K", 5600000 -> "$5.6M"
func FormatMoney(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "—"
	}
	neg := ""
	if v < 0 {
		neg = "-"
		v = -v
	}

	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("%s$%.1fB", neg, v/1_000_000_000)
	case v >= 1_000_000:
		return fmt.Sprintf("%s$%.1fM", neg, v/1_000_000)
	case v >= 10_000:
		return fmt.Sprintf("%s$%.0fK", neg, v/1_000)
	case v >= 1_000:
		return fmt.Sprintf("%s$%.1fK", neg, v/1_000)
	default:
		return fmt.Sprintf("%s$%.0f", neg, v)
	}
}

// FormatNumber adds comma separators to an integer.
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	if math.IsNaN(f) {
		return "—"
	}
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDays formats a day count, signed, one decimal when small.
// e.g., 45 -> "+45d", -3.5 -> "-3.5d"
func FormatDays(d float64) string {
	if math.IsNaN(d) {
		return "—"
	}
	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}
	if d >= 10 {
		return fmt.Sprintf("%s%.0fd", sign, d)
	}
	return fmt.Sprintf("%s%.1fd", sign, d)
}

// FormatDelta formats a money delta with an explicit sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatMoney(delta)
	}
	return "-" + FormatMoney(-delta)
}

// MonthName returns a 3-letter month abbreviation for 1-12.
func MonthName(month int) string {
	names := []string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	}
	if month >= 1 && month <= 12 {
		return names[month-1]
	}
	return "???"
}

// Truncate shortens a string to maxLen runes with an ellipsis.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
