package pipeline

import (
	"math"
	"testing"

	"pmlens/internal/model"
)

func TestEstimateOverrunProbability_Empty(t *testing.T) {
	prob := EstimateOverrunProbability(nil)
	if prob.Baseline != 0 || prob.Adjusted != 0 || prob.Eligible != 0 {
		t.Errorf("empty input should be all zeros, got %+v", prob)
	}
}

func TestEstimateOverrunProbability_LatePortfolioBumpsUp(t *testing.T) {
	// Two of four eligible projects overrun; every project slips 15 days.
	projects := []model.Project{
		project("P1", 2022, 1000, 1200),
		project("P2", 2022, 1000, 1100),
		project("P3", 2022, 1000, 900),
		project("P4", 2022, 1000, 800),
	}

	prob := EstimateOverrunProbability(projects)

	if prob.Eligible != 4 {
		t.Errorf("Eligible = %d, want 4", prob.Eligible)
	}
	if prob.Baseline != 0.5 {
		t.Errorf("Baseline = %v, want 0.5", prob.Baseline)
	}
	if prob.Adjusted != 0.55 {
		t.Errorf("Adjusted = %v, want 0.55 (late bump)", prob.Adjusted)
	}
}

func TestEstimateOverrunProbability_EarlyPortfolioBumpsDown(t *testing.T) {
	early := project("P1", 2022, 1000, 1200)
	early.ActualEnd = date(2022, 11, 20) // 10 days ahead of plan

	prob := EstimateOverrunProbability([]model.Project{early})

	if prob.Baseline != 1 {
		t.Errorf("Baseline = %v, want 1", prob.Baseline)
	}
	if prob.Adjusted != 0.98 {
		t.Errorf("Adjusted = %v, want 0.98 (early bump)", prob.Adjusted)
	}
}

func TestEstimateOverrunProbability_IneligibleExcluded(t *testing.T) {
	nanBudget := project("P1", 2022, math.NaN(), 500)
	zeroBudget := project("P2", 2022, 0, 500)
	ok := project("P3", 2022, 1000, 900)

	prob := EstimateOverrunProbability([]model.Project{nanBudget, zeroBudget, ok})

	if prob.Eligible != 1 {
		t.Errorf("Eligible = %d, want 1", prob.Eligible)
	}
	if prob.Baseline != 0 {
		t.Errorf("Baseline = %v, want 0", prob.Baseline)
	}
}

func TestEstimateOverrunProbability_Clamped(t *testing.T) {
	// Baseline 1 with a late portfolio would exceed 1 without the clamp.
	p := project("P1", 2022, 1000, 2000)
	prob := EstimateOverrunProbability([]model.Project{p})

	if prob.Adjusted != 1 {
		t.Errorf("Adjusted = %v, want clamped to 1", prob.Adjusted)
	}
	if prob.Adjusted < 0 || prob.Adjusted > 1 || prob.Baseline < 0 || prob.Baseline > 1 {
		t.Error("probabilities must stay in [0, 1]")
	}
}
