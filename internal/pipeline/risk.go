package pipeline

import (
	"math"
	"math/rand"
	"sort"

	"pmlens/internal/model"
)

// Spread-score composite weights. The two scorers intentionally produce
// different distributions and must not be unified: the rule score is an
// absolute threshold-friendly number, the spread score ranks a cohort.
const (
	spreadBudgetWeight  = 18.0
	spreadBudgetCenter  = 4.5
	spreadSlipWeight    = 15.0
	spreadSlipScale     = 60.0
	spreadCOWeight      = 22.0
	spreadOverrunWeight = 18.0
	spreadJitterRange   = 2.0
)

// RuleScore computes the deterministic 0-100 risk score for one project.
// Budget and change-order totals are floored so log10 and the scale
// factors never see zero or negative input.
func RuleScore(r model.ProjectRollup) int {
	budget := r.Project.PlannedBudget
	if !finite(budget) || budget < 1 {
		budget = 1
	}
	coTotal := r.COTotal
	if coTotal < 0 {
		coTotal = 0
	}
	slip := 0.0
	if r.SlipKnown {
		slip = r.SlipDays
	}

	score := 20*math.Log10(budget) + 0.05*slip + 0.000005*coTotal
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}

// spreadRaw computes the unnormalized spread composite for one project.
func spreadRaw(r model.ProjectRollup) float64 {
	budget := r.Project.PlannedBudget
	if !finite(budget) || budget < 1 {
		budget = 1
	}
	coTotal := r.COTotal
	if coTotal < 0 {
		coTotal = 0
	}
	overrun := r.Overrun
	if overrun < 0 {
		overrun = 0
	}
	slip := 0.0
	if r.SlipKnown {
		slip = r.SlipDays
	}

	return spreadBudgetWeight*(math.Log10(budget)-spreadBudgetCenter) +
		spreadSlipWeight*(slip/spreadSlipScale) +
		spreadCOWeight*math.Log10(1+coTotal/budget) +
		spreadOverrunWeight*math.Log10(1+overrun/budget)
}

// ScoreCohort computes both risk variants for every project.
//
// Spread scores min-max normalize the cohort's raw composites to 0-100,
// then perturb by ±spreadJitterRange from rng. A nil rng disables the
// jitter entirely, which is the deterministic path tests rely on.
// Results sort by rule score descending.
func ScoreCohort(rollups []model.ProjectRollup, rng *rand.Rand) []model.RiskScore {
	if len(rollups) == 0 {
		return nil
	}

	scores := make([]model.RiskScore, len(rollups))
	minRaw, maxRaw := math.Inf(1), math.Inf(-1)

	for i, r := range rollups {
		raw := spreadRaw(r)
		scores[i] = model.RiskScore{
			ProjectID:   r.Project.ID,
			ProjectName: r.Project.Name,
			RuleScore:   RuleScore(r),
			Raw:         raw,
		}
		if raw < minRaw {
			minRaw = raw
		}
		if raw > maxRaw {
			maxRaw = raw
		}
	}

	span := maxRaw - minRaw
	for i := range scores {
		var normalized float64
		if span > 0 {
			normalized = (scores[i].Raw - minRaw) / span * 100
		}
		if rng != nil {
			normalized += (rng.Float64()*2 - 1) * spreadJitterRange
		}
		if normalized < 0 {
			normalized = 0
		}
		if normalized > 100 {
			normalized = 100
		}
		scores[i].SpreadScore = normalized
	}

	sort.Slice(scores, func(i, j int) bool {
		return scores[i].RuleScore > scores[j].RuleScore
	})

	return scores
}
