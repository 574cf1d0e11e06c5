package model

// TrendLine is an ordinary least-squares fit over (period, value) pairs.
type TrendLine struct {
	Intercept float64
	Slope     float64
	Points    int
}

// ForecastPoint is one projected (period, value) pair.
type ForecastPoint struct {
	Period int
	Value  float64
}

// OverrunProbability holds the portfolio overrun estimate.
// Adjusted applies a fixed heuristic bump on top of the observed
// baseline; it is not a statistically derived figure.
type OverrunProbability struct {
	Baseline float64
	Adjusted float64
	Eligible int
}

// RiskScore holds both risk score variants for one project.
type RiskScore struct {
	ProjectID   string
	ProjectName string
	RuleScore   int     // deterministic log-budget formula
	SpreadScore float64 // cohort-normalized composite, jittered
	Raw         float64 // spread composite before normalization
}

// Recommendation is one prescriptive action for a project.
type Recommendation struct {
	ProjectID   string
	ProjectName string
	Action      string
	Savings     float64
	Impact      float64 // 0-1
	Effort      float64 // 0-1
}
