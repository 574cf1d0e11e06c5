package cli

import (
	"math"
	"testing"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{999, "$999"},
		{1234, "$1.2K"},
		{45000, "$45K"},
		{5600000, "$5.6M"},
		{2100000000, "$2.1B"},
		{-1500, "-$1.5K"},
		{math.NaN(), "—"},
		{math.Inf(1), "—"},
	}
	for _, c := range cases {
		if got := FormatMoney(c.in); got != c.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-45000, "-45,000"},
	}
	for _, c := range cases {
		if got := FormatNumber(c.in); got != c.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.123); got != "12.3%" {
		t.Errorf("got %q", got)
	}
	if got := FormatPercent(math.NaN()); got != "—" {
		t.Errorf("NaN = %q, want —", got)
	}
}

func TestFormatDays(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{45, "+45d"},
		{-3.5, "-3.5d"},
		{9.26, "+9.3d"},
		{math.NaN(), "—"},
	}
	for _, c := range cases {
		if got := FormatDays(c.in); got != c.want {
			t.Errorf("FormatDays(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMonthName(t *testing.T) {
	if got := MonthName(1); got != "Jan" {
		t.Errorf("got %q", got)
	}
	if got := MonthName(12); got != "Dec" {
		t.Errorf("got %q", got)
	}
	if got := MonthName(13); got != "???" {
		t.Errorf("out of range = %q, want ???", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := Truncate("a very long project name", 10); got != "a very lo…" {
		t.Errorf("got %q", got)
	}
}
