package model

// PortfolioStats holds the top-level aggregate across all projects.
type PortfolioStats struct {
	TotalProjects int
	InFlight      int
	Completed     int

	TotalBudget  float64
	TotalActual  float64
	TotalOverrun float64

	ChangeOrders    int
	ChangeOrderCost float64

	MeanSlipDays     float64 // over projects with both end dates
	SlipSampleSize   int
	MeanVarianceRatio float64 // over projects with a positive finite budget
	VarianceSampleSize int
}

// YearlyStats holds per-calendar-year rollups.
type YearlyStats struct {
	Year         int
	Projects     int
	Budget       float64
	Actual       float64
	Overrun      float64
	ChangeOrders int
	COCost       float64
	MeanSlipDays float64
	SlipSamples  int
}

// MonthlyStats holds rollups for one month of a selected year.
type MonthlyStats struct {
	Month        int // 1-12
	Projects     int
	Budget       float64
	Actual       float64
	ChangeOrders int
	COCost       float64
}

// ProjectRollup joins a project with its change-order totals and
// derived metrics, ready for ranking tables.
type ProjectRollup struct {
	Project     Project
	COCount     int
	COTotal     float64
	Overrun     float64
	SlipDays    float64
	SlipKnown   bool
	OverrunPct  float64 // overrun/budget, 0 when budget ineligible
	COShare     float64 // coTotal/(overrun+coTotal), 0 when both zero
}

// ReasonStats holds change-order counts and cost per mapped reason label.
type ReasonStats struct {
	Reason       string
	Orders       int
	Cost         float64
	SharePercent float64 // of total CO cost
}
