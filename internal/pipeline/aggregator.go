// Package pipeline orchestrates loading, caching, and metric aggregation.
package pipeline

import (
	"math"
	"sort"

	"pmlens/internal/model"
)

// finite reports whether v is a usable numeric value.
// NaN and infinities are excluded from both sums and counts.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// AggregatePortfolio computes the top-level summary across all projects
// and change orders.
func AggregatePortfolio(projects []model.Project, orders []model.ChangeOrder) model.PortfolioStats {
	var stats model.PortfolioStats

	for _, p := range projects {
		stats.TotalProjects++
		if p.InFlight() {
			stats.InFlight++
		} else {
			stats.Completed++
		}

		if finite(p.PlannedBudget) {
			stats.TotalBudget += p.PlannedBudget
		}
		if finite(p.ActualCost) {
			stats.TotalActual += p.ActualCost
		}
		if finite(p.ActualCost) && finite(p.PlannedBudget) {
			stats.TotalOverrun += p.Overrun()
		}

		if slip, ok := p.SlipDays(); ok {
			stats.MeanSlipDays += slip
			stats.SlipSampleSize++
		}
		if ratio, ok := p.CostVarianceRatio(); ok {
			stats.MeanVarianceRatio += ratio
			stats.VarianceSampleSize++
		}
	}

	if stats.SlipSampleSize > 0 {
		stats.MeanSlipDays /= float64(stats.SlipSampleSize)
	}
	if stats.VarianceSampleSize > 0 {
		stats.MeanVarianceRatio /= float64(stats.VarianceSampleSize)
	}

	for _, co := range orders {
		stats.ChangeOrders++
		if finite(co.Cost) {
			stats.ChangeOrderCost += co.Cost
		}
	}

	return stats
}

// AggregateYears computes per-start-year rollups. Projects without a
// parsable start date are excluded here but still appear in portfolio
// totals. Change orders bucket by their own date.
func AggregateYears(projects []model.Project, orders []model.ChangeOrder) []model.YearlyStats {
	yearMap := make(map[int]*model.YearlyStats)

	bucket := func(year int) *model.YearlyStats {
		ys, ok := yearMap[year]
		if !ok {
			ys = &model.YearlyStats{Year: year}
			yearMap[year] = ys
		}
		return ys
	}

	for _, p := range projects {
		if p.StartDate.IsZero() {
			continue
		}
		ys := bucket(p.StartDate.Year())
		ys.Projects++
		if finite(p.PlannedBudget) {
			ys.Budget += p.PlannedBudget
		}
		if finite(p.ActualCost) {
			ys.Actual += p.ActualCost
		}
		if finite(p.ActualCost) && finite(p.PlannedBudget) {
			ys.Overrun += p.Overrun()
		}
		if slip, ok := p.SlipDays(); ok {
			ys.MeanSlipDays += slip
			ys.SlipSamples++
		}
	}

	for _, co := range orders {
		if co.Date.IsZero() {
			continue
		}
		ys := bucket(co.Date.Year())
		ys.ChangeOrders++
		if finite(co.Cost) {
			ys.COCost += co.Cost
		}
	}

	years := make([]model.YearlyStats, 0, len(yearMap))
	for _, ys := range yearMap {
		if ys.SlipSamples > 0 {
			ys.MeanSlipDays /= float64(ys.SlipSamples)
		}
		years = append(years, *ys)
	}
	sort.Slice(years, func(i, j int) bool {
		return years[i].Year < years[j].Year
	})

	return years
}

// AggregateMonths computes per-month rollups for a single selected year.
// All 12 months are present so charts show gaps as zeros.
func AggregateMonths(projects []model.Project, orders []model.ChangeOrder, year int) []model.MonthlyStats {
	months := make([]model.MonthlyStats, 12)
	for i := range months {
		months[i].Month = i + 1
	}

	for _, p := range projects {
		if p.StartDate.IsZero() || p.StartDate.Year() != year {
			continue
		}
		m := &months[p.StartDate.Month()-1]
		m.Projects++
		if finite(p.PlannedBudget) {
			m.Budget += p.PlannedBudget
		}
		if finite(p.ActualCost) {
			m.Actual += p.ActualCost
		}
	}

	for _, co := range orders {
		if co.Date.IsZero() || co.Date.Year() != year {
			continue
		}
		m := &months[co.Date.Month()-1]
		m.ChangeOrders++
		if finite(co.Cost) {
			m.COCost += co.Cost
		}
	}

	return months
}

// COTotal is the change-order rollup for one project bucket.
type COTotal struct {
	Orders int
	Cost   float64
}

// ChangeOrderTotals sums change-order cost and count per project_id.
// Orders whose project_id doesn't match a loaded project land in the
// model.UnassignedProject bucket.
func ChangeOrderTotals(projects []model.Project, orders []model.ChangeOrder) map[string]COTotal {
	known := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		known[p.ID] = struct{}{}
	}

	totals := make(map[string]COTotal)
	for _, co := range orders {
		key := co.ProjectID
		if _, ok := known[key]; !ok {
			key = model.UnassignedProject
		}
		t := totals[key]
		t.Orders++
		if finite(co.Cost) {
			t.Cost += co.Cost
		}
		totals[key] = t
	}
	return totals
}

// BuildRollups joins every project with its change-order totals and
// derived ratios, ready for risk scoring and recommendations.
func BuildRollups(projects []model.Project, orders []model.ChangeOrder) []model.ProjectRollup {
	coTotals := ChangeOrderTotals(projects, orders)

	rollups := make([]model.ProjectRollup, 0, len(projects))
	for _, p := range projects {
		r := model.ProjectRollup{Project: p}

		if t, ok := coTotals[p.ID]; ok {
			r.COCount = t.Orders
			r.COTotal = t.Cost
		}
		if finite(p.ActualCost) && finite(p.PlannedBudget) {
			r.Overrun = p.Overrun()
		}
		r.SlipDays, r.SlipKnown = p.SlipDays()

		if p.PlannedBudget > 0 && finite(p.PlannedBudget) {
			r.OverrunPct = r.Overrun / p.PlannedBudget
		}
		if denom := r.Overrun + r.COTotal; denom > 0 {
			r.COShare = r.COTotal / denom
		}

		rollups = append(rollups, r)
	}
	return rollups
}

// AggregateReasons computes the change-order breakdown by reason label,
// sorted by cost descending.
func AggregateReasons(orders []model.ChangeOrder) []model.ReasonStats {
	reasonMap := make(map[string]*model.ReasonStats)
	var totalCost float64

	for _, co := range orders {
		rs, ok := reasonMap[co.Reason]
		if !ok {
			rs = &model.ReasonStats{Reason: co.Reason}
			reasonMap[co.Reason] = rs
		}
		rs.Orders++
		if finite(co.Cost) {
			rs.Cost += co.Cost
			totalCost += co.Cost
		}
	}

	reasons := make([]model.ReasonStats, 0, len(reasonMap))
	for _, rs := range reasonMap {
		if totalCost > 0 {
			rs.SharePercent = rs.Cost / totalCost * 100
		}
		reasons = append(reasons, *rs)
	}
	sort.Slice(reasons, func(i, j int) bool {
		return reasons[i].Cost > reasons[j].Cost
	})

	return reasons
}

// FilterByYear returns the projects starting in the given year and the
// change orders dated in it. Year 0 means no filter.
func FilterByYear(projects []model.Project, orders []model.ChangeOrder, year int) ([]model.Project, []model.ChangeOrder) {
	if year == 0 {
		return projects, orders
	}

	var fp []model.Project
	for _, p := range projects {
		if !p.StartDate.IsZero() && p.StartDate.Year() == year {
			fp = append(fp, p)
		}
	}
	var fo []model.ChangeOrder
	for _, co := range orders {
		if !co.Date.IsZero() && co.Date.Year() == year {
			fo = append(fo, co)
		}
	}
	return fp, fo
}
