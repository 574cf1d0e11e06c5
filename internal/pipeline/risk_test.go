package pipeline

import (
	"math"
	"math/rand"
	"testing"

	"pmlens/internal/model"
)

func rollup(budget, slip, coTotal, overrun float64) model.ProjectRollup {
	p := project("P1", 2022, budget, budget+overrun)
	r := model.ProjectRollup{
		Project: p,
		COTotal: coTotal,
		Overrun: overrun,
	}
	if slip != 0 {
		r.SlipDays = slip
		r.SlipKnown = true
	}
	return r
}

func TestRuleScore_WorkedExample(t *testing.T) {
	// 20*log10(1000) + 0.05*45 + 0.000005*100000 = 60 + 2.25 + 0.5 = 62.75
	r := rollup(1000, 45, 100000, 0)
	if got := RuleScore(r); got != 63 {
		t.Errorf("RuleScore = %d, want 63", got)
	}
}

func TestRuleScore_ClampsAt100(t *testing.T) {
	r := rollup(1e9, 500, 1e9, 0)
	if got := RuleScore(r); got != 100 {
		t.Errorf("RuleScore = %d, want 100", got)
	}
}

func TestRuleScore_FloorsDegenerateBudget(t *testing.T) {
	// Zero, negative, and NaN budgets all floor to 1, so log10 sees 1.
	for _, budget := range []float64{0, -50, math.NaN()} {
		r := rollup(budget, 0, 0, 0)
		if got := RuleScore(r); got != 0 {
			t.Errorf("RuleScore(budget=%v) = %d, want 0", budget, got)
		}
	}
}

func TestScoreCohort_Deterministic(t *testing.T) {
	rollups := []model.ProjectRollup{
		rollup(1000, 10, 0, 0),
		rollup(1e6, 60, 50000, 30000),
		rollup(1e7, 0, 0, 0),
	}

	a := ScoreCohort(rollups, nil)
	b := ScoreCohort(rollups, nil)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("nil-rng scoring must be reproducible: %+v vs %+v", a[i], b[i])
		}
	}
}

func TestScoreCohort_SpreadNormalization(t *testing.T) {
	rollups := []model.ProjectRollup{
		rollup(1000, 0, 0, 0),
		rollup(1e6, 30, 10000, 5000),
		rollup(1e8, 90, 500000, 2000000),
	}

	scores := ScoreCohort(rollups, nil)

	// Without jitter the cohort extremes pin to exactly 0 and 100.
	sawMin, sawMax := false, false
	for _, s := range scores {
		if s.SpreadScore < 0 || s.SpreadScore > 100 {
			t.Errorf("SpreadScore %v out of range", s.SpreadScore)
		}
		if s.SpreadScore == 0 {
			sawMin = true
		}
		if s.SpreadScore == 100 {
			sawMax = true
		}
	}
	if !sawMin || !sawMax {
		t.Error("min-max normalization should pin the extremes to 0 and 100")
	}
}

func TestScoreCohort_SortedByRuleScore(t *testing.T) {
	rollups := []model.ProjectRollup{
		rollup(1000, 0, 0, 0),
		rollup(1e7, 60, 0, 0),
		rollup(1e5, 10, 0, 0),
	}

	scores := ScoreCohort(rollups, nil)

	for i := 1; i < len(scores); i++ {
		if scores[i-1].RuleScore < scores[i].RuleScore {
			t.Fatal("scores must sort by rule score descending")
		}
	}
}

func TestScoreCohort_JitterStaysInRange(t *testing.T) {
	rollups := []model.ProjectRollup{
		rollup(1000, 0, 0, 0),
		rollup(1e6, 30, 10000, 5000),
	}

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		for _, s := range ScoreCohort(rollups, rng) {
			if s.SpreadScore < 0 || s.SpreadScore > 100 {
				t.Fatalf("jittered SpreadScore %v out of range", s.SpreadScore)
			}
		}
	}
}

func TestScoreCohort_Empty(t *testing.T) {
	if got := ScoreCohort(nil, nil); got != nil {
		t.Errorf("empty cohort = %v, want nil", got)
	}
}

func TestScoreCohort_SingleProjectSpansZero(t *testing.T) {
	// A one-project cohort has zero span; normalization yields 0, not NaN.
	scores := ScoreCohort([]model.ProjectRollup{rollup(1e6, 30, 0, 0)}, nil)
	if len(scores) != 1 {
		t.Fatal("expected one score")
	}
	if scores[0].SpreadScore != 0 {
		t.Errorf("SpreadScore = %v, want 0 for zero span", scores[0].SpreadScore)
	}
}
