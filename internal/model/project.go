// Package model defines domain types for pmlens projects and change orders.
package model

import (
	"math"
	"time"
)

// UnassignedProject is the sentinel bucket for change orders whose
// project_id doesn't resolve to a loaded project.
const UnassignedProject = "(unassigned)"

// Project is one row of projects.csv.
type Project struct {
	ID            string
	Name          string
	StartDate     time.Time
	PlannedEnd    time.Time
	ActualEnd     time.Time // zero = in-flight
	PlannedBudget float64
	ActualCost    float64
	CompletionPct float64
}

// InFlight reports whether the project has no recorded actual end date.
func (p Project) InFlight() bool {
	return p.ActualEnd.IsZero()
}

// SlipDays returns the schedule slip in days (positive = late).
// ok is false when either end date is missing; callers must exclude
// the project from slip-based aggregates, not treat it as zero.
func (p Project) SlipDays() (float64, bool) {
	if p.PlannedEnd.IsZero() || p.ActualEnd.IsZero() {
		return 0, false
	}
	return p.ActualEnd.Sub(p.PlannedEnd).Hours() / 24, true
}

// Overrun returns actual cost minus planned budget, floored at zero.
func (p Project) Overrun() float64 {
	over := p.ActualCost - p.PlannedBudget
	if over < 0 || math.IsNaN(over) {
		return 0
	}
	return over
}

// CostVarianceRatio returns the signed (actual−budget)/budget ratio.
// ok is false when the budget is zero, negative, or non-finite.
func (p Project) CostVarianceRatio() (float64, bool) {
	if !(p.PlannedBudget > 0) || math.IsInf(p.PlannedBudget, 0) {
		return 0, false
	}
	r := (p.ActualCost - p.PlannedBudget) / p.PlannedBudget
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

// ChangeOrder is one row of change_orders.csv.
type ChangeOrder struct {
	ProjectID string // may not match any loaded project
	PhaseID   string
	OrderID   string
	Cost      float64
	Reason    string // mapped label, never the raw code
	Date      time.Time
}

// Snapshot is an immutable view of everything loaded for one run.
// The load step builds a fresh Snapshot; nothing mutates it afterward.
type Snapshot struct {
	Projects     []Project
	ChangeOrders []ChangeOrder
	LoadedAt     time.Time
}
