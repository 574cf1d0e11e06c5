package pipeline

import "pmlens/internal/model"

// Fixed heuristic bump applied to the observed overrun fraction when the
// portfolio is running late (positive mean slip) or not. These constants
// come straight from the dashboards they replace; they have no
// statistical basis and are kept verbatim on purpose.
const (
	probBumpLate  = 0.05
	probBumpEarly = -0.02
)

// EstimateOverrunProbability computes the portfolio overrun estimate.
// Baseline is the fraction of eligible projects (finite positive budget,
// finite actual cost) whose actual cost exceeds budget. Adjusted adds the
// heuristic bump and clamps to [0, 1].
func EstimateOverrunProbability(projects []model.Project) model.OverrunProbability {
	var eligible, over int
	var slipSum float64
	var slipN int

	for _, p := range projects {
		if p.PlannedBudget > 0 && finite(p.PlannedBudget) && finite(p.ActualCost) {
			eligible++
			if p.ActualCost > p.PlannedBudget {
				over++
			}
		}
		if slip, ok := p.SlipDays(); ok {
			slipSum += slip
			slipN++
		}
	}

	var baseline float64
	if eligible > 0 {
		baseline = float64(over) / float64(eligible)
	}

	meanSlip := 0.0
	if slipN > 0 {
		meanSlip = slipSum / float64(slipN)
	}

	bump := probBumpEarly
	if meanSlip > 0 {
		bump = probBumpLate
	}

	return model.OverrunProbability{
		Baseline: baseline,
		Adjusted: clamp01(baseline + bump),
		Eligible: eligible,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
