// Package source discovers and parses the portfolio CSV exports.
package source

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"pmlens/internal/model"
)

// ParseResult holds the output of parsing a single CSV file.
// Exactly one of Projects/ChangeOrders is populated, per the file kind.
type ParseResult struct {
	Kind         FileKind
	Projects     []model.Project
	ChangeOrders []model.ChangeOrder
	RowErrors    int // rows with at least one unparsable field
	Err          error
}

// Date layouts accepted, most common first.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
}

// ParseFile reads one CSV file into typed rows.
//
// Field failures degrade rather than fail: an unparsable numeric becomes
// NaN (aggregators exclude non-finite values), an unparsable date becomes
// the zero time (date-keyed rollups skip it), and the row still counts
// toward totals. Only an unreadable file or header is a hard error.
func ParseFile(df DiscoveredFile) ParseResult {
	f, err := os.Open(df.Path)
	if err != nil {
		return ParseResult{Kind: df.Kind, Err: err}
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return ParseResult{Kind: df.Kind, Err: err}
	}
	cols := indexColumns(header)

	result := ParseResult{Kind: df.Kind}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed CSV line; skip it, keep the rest.
			result.RowErrors++
			continue
		}

		switch df.Kind {
		case KindProjects:
			p, bad := parseProject(record, cols)
			if bad {
				result.RowErrors++
			}
			result.Projects = append(result.Projects, p)
		case KindChangeOrders:
			co, bad := parseChangeOrder(record, cols)
			if bad {
				result.RowErrors++
			}
			result.ChangeOrders = append(result.ChangeOrders, co)
		}
	}

	return result
}

// indexColumns maps lowercased header names to their positions.
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

func field(record []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func parseProject(record []string, cols map[string]int) (model.Project, bool) {
	bad := false

	p := model.Project{
		ID:   field(record, cols, "project_id"),
		Name: field(record, cols, "project_name"),
	}

	p.StartDate, bad = parseDate(field(record, cols, "start_date"), bad)
	p.PlannedEnd, bad = parseDate(field(record, cols, "planned_end"), bad)

	// Empty actual_end signals an in-flight project, not an error.
	if raw := field(record, cols, "actual_end"); raw != "" {
		p.ActualEnd, bad = parseDate(raw, bad)
	}

	p.PlannedBudget, bad = parseFloat(field(record, cols, "planned_budget"), bad)
	p.ActualCost, bad = parseFloat(field(record, cols, "actual_cost"), bad)
	p.CompletionPct, bad = parseFloat(field(record, cols, "completion_pct"), bad)

	return p, bad
}

func parseChangeOrder(record []string, cols map[string]int) (model.ChangeOrder, bool) {
	bad := false

	co := model.ChangeOrder{
		ProjectID: field(record, cols, "project_id"),
		PhaseID:   field(record, cols, "phase_id"),
		OrderID:   field(record, cols, "co_id"),
		Reason:    MapReason(field(record, cols, "co_reason")),
	}

	co.Cost, bad = parseFloat(field(record, cols, "co_cost"), bad)
	co.Date, bad = parseDate(field(record, cols, "date"), bad)

	return co, bad
}

// parseFloat returns NaN for blank or unparsable values so that
// aggregators exclude them instead of counting zeros.
func parseFloat(raw string, wasBad bool) (float64, bool) {
	if raw == "" {
		return math.NaN(), true
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return math.NaN(), true
	}
	return v, wasBad
}

// parseDate returns the zero time for unparsable values; date-keyed
// aggregation skips zero dates but the row still counts in totals.
func parseDate(raw string, wasBad bool) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, wasBad
		}
	}
	return time.Time{}, true
}
