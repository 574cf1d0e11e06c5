package pipeline

import (
	"math/rand"
	"sort"

	"pmlens/internal/model"
)

// Action categories, in rule order.
const (
	ActionScopeAlignment = "Scope alignment"
	ActionDesignClarify  = "Design clarification"
	ActionSupplierReview = "Supplier/subcontractor review"
	ActionScheduleTuneUp = "Schedule tune-up"
)

// Rule thresholds for action selection.
const (
	coShareScopeMin    = 0.55
	overrunScopeMin    = 0.03
	slipScheduleMin    = 45.0
	overrunScheduleMax = 0.05
	supplierBudgetMin  = 5_000_000.0
	supplierOverrunMin = 0.02
	supplierCOShareMin = 0.35
)

// savingsCapShare caps estimated savings at 7% of budget. Another fixed
// heuristic preserved from the source dashboards.
const savingsCapShare = 0.07

// impact/effort sampling bands per category (low, high), clamped to [0,1].
var actionBands = map[string]struct{ impactLo, impactHi, effortLo, effortHi float64 }{
	ActionScopeAlignment: {0.55, 0.85, 0.45, 0.75},
	ActionDesignClarify:  {0.40, 0.70, 0.30, 0.60},
	ActionSupplierReview: {0.45, 0.75, 0.50, 0.80},
	ActionScheduleTuneUp: {0.30, 0.60, 0.20, 0.50},
}

// pick returns the action for one project following the ordered rules.
// Tie-breaks draw from rng; a nil rng takes the first-listed action so
// the choice stays deterministic.
func pick(r model.ProjectRollup, rng *rand.Rand) string {
	budget := r.Project.PlannedBudget

	switch {
	case r.COShare >= coShareScopeMin && r.OverrunPct >= overrunScopeMin:
		// 60% scope alignment, 40% design clarification
		if rng != nil && rng.Float64() >= 0.6 {
			return ActionDesignClarify
		}
		return ActionScopeAlignment

	case r.SlipKnown && r.SlipDays >= slipScheduleMin && r.OverrunPct < overrunScheduleMax:
		return ActionScheduleTuneUp

	case budget >= supplierBudgetMin && (r.OverrunPct >= supplierOverrunMin || r.COShare >= supplierCOShareMin):
		return ActionSupplierReview

	default:
		// 50/50 design clarification vs schedule tune-up
		if rng != nil && rng.Float64() >= 0.5 {
			return ActionScheduleTuneUp
		}
		return ActionDesignClarify
	}
}

// savingsRate returns the per-category recovery rate applied to the
// addressable amount (overrun + CO total).
func savingsRate(action string, r model.ProjectRollup) float64 {
	budget := r.Project.PlannedBudget
	switch action {
	case ActionScopeAlignment:
		extra := 0.0
		if budget > 0 {
			extra = r.COTotal / budget
			if extra > 0.06 {
				extra = 0.06
			}
		}
		return 0.10 + extra
	case ActionDesignClarify:
		return 0.07
	case ActionSupplierReview:
		return 0.05
	case ActionScheduleTuneUp:
		extra := 0.0
		if r.SlipKnown {
			extra = r.SlipDays / 180
			if extra > 0.02 {
				extra = 0.02
			}
			if extra < 0 {
				extra = 0
			}
		}
		return 0.03 + extra
	}
	return 0
}

// sample draws a value uniformly within [lo, hi] with a small jitter,
// clamped to [0,1]. A nil rng returns the band midpoint.
func sample(lo, hi float64, rng *rand.Rand) float64 {
	v := (lo + hi) / 2
	if rng != nil {
		v = lo + rng.Float64()*(hi-lo)
		v += (rng.Float64()*2 - 1) * 0.03
	}
	return clamp01(v)
}

// Recommend produces one prescriptive action per project, ranked by
// estimated savings descending, truncated to topN (0 = no limit).
func Recommend(rollups []model.ProjectRollup, topN int, rng *rand.Rand) []model.Recommendation {
	recs := make([]model.Recommendation, 0, len(rollups))

	for _, r := range rollups {
		action := pick(r, rng)
		band := actionBands[action]

		addressable := r.Overrun + r.COTotal
		savings := savingsRate(action, r) * addressable
		if limit := savingsCapShare * r.Project.PlannedBudget; finite(limit) && limit >= 0 && savings > limit {
			savings = limit
		}

		recs = append(recs, model.Recommendation{
			ProjectID:   r.Project.ID,
			ProjectName: r.Project.Name,
			Action:      action,
			Savings:     savings,
			Impact:      sample(band.impactLo, band.impactHi, rng),
			Effort:      sample(band.effortLo, band.effortHi, rng),
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Savings > recs[j].Savings
	})

	if topN > 0 && len(recs) > topN {
		recs = recs[:topN]
	}
	return recs
}
