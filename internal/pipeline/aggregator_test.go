package pipeline

import (
	"math"
	"testing"
	"time"

	"pmlens/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// project builds a completed project with the given economics.
func project(id string, year int, budget, actual float64) model.Project {
	return model.Project{
		ID:            id,
		Name:          "Project " + id,
		StartDate:     date(year, 3, 1),
		PlannedEnd:    date(year, 11, 30),
		ActualEnd:     date(year, 12, 15),
		PlannedBudget: budget,
		ActualCost:    actual,
		CompletionPct: 100,
	}
}

func TestAggregatePortfolio_Basics(t *testing.T) {
	projects := []model.Project{
		project("P1", 2022, 1000, 1200),
		project("P2", 2022, 2000, 1800),
	}
	orders := []model.ChangeOrder{
		{ProjectID: "P1", Cost: 50, Reason: "Scope Change", Date: date(2022, 6, 1)},
		{ProjectID: "P2", Cost: 75, Reason: "Client Request", Date: date(2022, 7, 1)},
	}

	stats := AggregatePortfolio(projects, orders)

	if stats.TotalProjects != 2 || stats.Completed != 2 || stats.InFlight != 0 {
		t.Errorf("counts = %d/%d/%d", stats.TotalProjects, stats.Completed, stats.InFlight)
	}
	if stats.TotalBudget != 3000 {
		t.Errorf("TotalBudget = %v, want 3000", stats.TotalBudget)
	}
	if stats.TotalActual != 3000 {
		t.Errorf("TotalActual = %v, want 3000", stats.TotalActual)
	}
	// Overrun floors per project: P1 contributes 200, P2 contributes 0.
	if stats.TotalOverrun != 200 {
		t.Errorf("TotalOverrun = %v, want 200", stats.TotalOverrun)
	}
	if stats.ChangeOrders != 2 || stats.ChangeOrderCost != 125 {
		t.Errorf("CO = %d/%v", stats.ChangeOrders, stats.ChangeOrderCost)
	}
	// Both projects slip Nov 30 -> Dec 15 = 15 days.
	if stats.SlipSampleSize != 2 || stats.MeanSlipDays != 15 {
		t.Errorf("slip = %v over %d", stats.MeanSlipDays, stats.SlipSampleSize)
	}
}

func TestAggregatePortfolio_NaNExcludedFromSumsAndCounts(t *testing.T) {
	bad := project("P9", 2022, math.NaN(), 500)
	projects := []model.Project{
		project("P1", 2022, 1000, 1100),
		bad,
	}

	stats := AggregatePortfolio(projects, nil)

	// The NaN-budget project still counts as a project but contributes
	// nothing to budget, overrun, or the variance sample.
	if stats.TotalProjects != 2 {
		t.Errorf("TotalProjects = %d, want 2", stats.TotalProjects)
	}
	if stats.TotalBudget != 1000 {
		t.Errorf("TotalBudget = %v, want 1000", stats.TotalBudget)
	}
	if stats.TotalActual != 1600 {
		t.Errorf("TotalActual = %v, want 1600", stats.TotalActual)
	}
	if stats.TotalOverrun != 100 {
		t.Errorf("TotalOverrun = %v, want 100", stats.TotalOverrun)
	}
	if stats.VarianceSampleSize != 1 {
		t.Errorf("VarianceSampleSize = %d, want 1", stats.VarianceSampleSize)
	}
	if math.IsNaN(stats.MeanVarianceRatio) {
		t.Error("MeanVarianceRatio must not be NaN")
	}
}

func TestAggregatePortfolio_Empty(t *testing.T) {
	stats := AggregatePortfolio(nil, nil)
	if stats.TotalProjects != 0 || stats.TotalBudget != 0 || stats.MeanSlipDays != 0 {
		t.Errorf("empty portfolio should be all zeros, got %+v", stats)
	}
}

func TestAggregateYears_SkipsZeroDates(t *testing.T) {
	undated := project("P3", 2022, 300, 300)
	undated.StartDate = time.Time{}

	projects := []model.Project{
		project("P1", 2021, 100, 120),
		project("P2", 2022, 200, 180),
		undated,
	}
	orders := []model.ChangeOrder{
		{ProjectID: "P1", Cost: 10, Date: date(2021, 5, 1)},
		{ProjectID: "P2", Cost: 20, Date: time.Time{}}, // unparsable date
	}

	years := AggregateYears(projects, orders)

	if len(years) != 2 {
		t.Fatalf("years = %d, want 2 (undated rows excluded)", len(years))
	}
	if years[0].Year != 2021 || years[1].Year != 2022 {
		t.Errorf("order = %d, %d; want ascending", years[0].Year, years[1].Year)
	}
	if years[0].ChangeOrders != 1 || years[0].COCost != 10 {
		t.Errorf("2021 CO = %d/%v", years[0].ChangeOrders, years[0].COCost)
	}
	if years[1].ChangeOrders != 0 {
		t.Errorf("2022 CO = %d, want 0 (undated order skipped)", years[1].ChangeOrders)
	}
}

func TestAggregateMonths_AllTwelvePresent(t *testing.T) {
	projects := []model.Project{project("P1", 2022, 100, 90)}
	orders := []model.ChangeOrder{
		{ProjectID: "P1", Cost: 5, Date: date(2022, 8, 15)},
		{ProjectID: "P1", Cost: 7, Date: date(2023, 8, 15)}, // outside the selected year
	}

	months := AggregateMonths(projects, orders, 2022)

	if len(months) != 12 {
		t.Fatalf("months = %d, want 12", len(months))
	}
	if months[2].Projects != 1 { // March
		t.Errorf("March projects = %d, want 1", months[2].Projects)
	}
	if months[7].COCost != 5 { // August
		t.Errorf("August CO cost = %v, want 5", months[7].COCost)
	}
	if months[0].Projects != 0 || months[0].ChangeOrders != 0 {
		t.Error("January should be an explicit zero bucket")
	}
}

func TestChangeOrderTotals_UnassignedBucket(t *testing.T) {
	projects := []model.Project{project("P1", 2022, 100, 90)}
	orders := []model.ChangeOrder{
		{ProjectID: "P1", Cost: 10},
		{ProjectID: "GHOST", Cost: 99},
		{ProjectID: "", Cost: 1},
	}

	totals := ChangeOrderTotals(projects, orders)

	if totals["P1"].Orders != 1 || totals["P1"].Cost != 10 {
		t.Errorf("P1 = %+v", totals["P1"])
	}
	un := totals[model.UnassignedProject]
	if un.Orders != 2 || un.Cost != 100 {
		t.Errorf("unassigned = %+v, want 2 orders / 100", un)
	}
}

func TestBuildRollups_Ratios(t *testing.T) {
	p := project("P1", 2022, 1000, 1300)
	orders := []model.ChangeOrder{{ProjectID: "P1", Cost: 200}}

	rollups := BuildRollups([]model.Project{p}, orders)
	if len(rollups) != 1 {
		t.Fatal("expected one rollup")
	}
	r := rollups[0]

	if r.Overrun != 300 {
		t.Errorf("Overrun = %v, want 300", r.Overrun)
	}
	if r.OverrunPct != 0.3 {
		t.Errorf("OverrunPct = %v, want 0.3", r.OverrunPct)
	}
	// COShare = 200 / (300 + 200)
	if r.COShare != 0.4 {
		t.Errorf("COShare = %v, want 0.4", r.COShare)
	}
	if !r.SlipKnown || r.SlipDays != 15 {
		t.Errorf("slip = %v/%v", r.SlipDays, r.SlipKnown)
	}
}

func TestAggregateReasons_SortedByCost(t *testing.T) {
	orders := []model.ChangeOrder{
		{Reason: "Scope Change", Cost: 100},
		{Reason: "Client Request", Cost: 300},
		{Reason: "Scope Change", Cost: 50},
		{Reason: "Unspecified", Cost: math.NaN()},
	}

	reasons := AggregateReasons(orders)

	if len(reasons) != 3 {
		t.Fatalf("reasons = %d, want 3", len(reasons))
	}
	if reasons[0].Reason != "Client Request" || reasons[0].Cost != 300 {
		t.Errorf("top = %+v", reasons[0])
	}
	if reasons[1].Reason != "Scope Change" || reasons[1].Orders != 2 {
		t.Errorf("second = %+v", reasons[1])
	}
	// NaN cost excluded from sums; order still counted.
	for _, rs := range reasons {
		if rs.Reason == "Unspecified" {
			if rs.Orders != 1 || rs.Cost != 0 {
				t.Errorf("unspecified = %+v", rs)
			}
		}
	}
	// Shares computed over the finite total (450).
	if want := 300.0 / 450 * 100; reasons[0].SharePercent != want {
		t.Errorf("share = %v, want %v", reasons[0].SharePercent, want)
	}
}

func TestFilterByYear(t *testing.T) {
	projects := []model.Project{
		project("P1", 2021, 100, 90),
		project("P2", 2022, 200, 210),
	}
	orders := []model.ChangeOrder{
		{ProjectID: "P1", Date: date(2021, 4, 1)},
		{ProjectID: "P2", Date: date(2022, 4, 1)},
	}

	fp, fo := FilterByYear(projects, orders, 2022)
	if len(fp) != 1 || fp[0].ID != "P2" {
		t.Errorf("projects = %+v", fp)
	}
	if len(fo) != 1 || fo[0].ProjectID != "P2" {
		t.Errorf("orders = %+v", fo)
	}

	fp, fo = FilterByYear(projects, orders, 0)
	if len(fp) != 2 || len(fo) != 2 {
		t.Error("year 0 must not filter")
	}
}
