package pipeline

import (
	"fmt"
	"math/rand"

	"pmlens/internal/model"
)

// Filter holds the UI-driven inputs to a recompute pass.
type Filter struct {
	Year    int // 0 = all years
	Horizon int // forecast periods, default 3
	TopN    int // recommendation table size, 0 = unlimited
}

// DashboardView is everything one render pass needs, precomputed.
// Recompute is a pure function of the snapshot and filter (plus the
// injected random source for the jittered components); the UI layer
// calls it on every filter change and redraws from the result.
type DashboardView struct {
	Filter    Filter
	Portfolio model.PortfolioStats
	Years     []model.YearlyStats
	Months    []model.MonthlyStats // only when Filter.Year is set
	Rollups   []model.ProjectRollup
	Reasons   []model.ReasonStats

	Trend       model.TrendLine
	Forecast    []model.ForecastPoint
	Probability model.OverrunProbability

	Risks   []model.RiskScore
	Actions []model.Recommendation

	Charts []model.ChartSpec
}

// Recompute runs the full aggregation pass for the given filter.
func Recompute(snap model.Snapshot, filter Filter, rng *rand.Rand) DashboardView {
	if filter.Horizon <= 0 {
		filter.Horizon = 3
	}

	projects, orders := FilterByYear(snap.Projects, snap.ChangeOrders, filter.Year)

	view := DashboardView{
		Filter:    filter,
		Portfolio: AggregatePortfolio(projects, orders),
		Years:     AggregateYears(snap.Projects, snap.ChangeOrders),
		Rollups:   BuildRollups(projects, orders),
		Reasons:   AggregateReasons(orders),
	}

	if filter.Year != 0 {
		view.Months = AggregateMonths(snap.Projects, snap.ChangeOrders, filter.Year)
	}

	// Forecast always fits the unfiltered yearly series; a single-year
	// filter would leave nothing to extrapolate.
	series := YearlySpendSeries(snap.Projects)
	view.Trend = FitTrend(series)
	view.Forecast = ProjectTrend(view.Trend, LastPeriod(series), filter.Horizon)
	view.Probability = EstimateOverrunProbability(projects)

	view.Risks = ScoreCohort(view.Rollups, rng)
	view.Actions = Recommend(view.Rollups, filter.TopN, rng)

	view.Charts = buildCharts(view, series)
	return view
}

// buildCharts packages the aggregates into declarative chart specs.
func buildCharts(view DashboardView, series map[int]float64) []model.ChartSpec {
	var charts []model.ChartSpec

	// Projects started per year.
	if len(view.Years) > 0 {
		labels := make([]string, len(view.Years))
		counts := make([]float64, len(view.Years))
		spend := make([]float64, len(view.Years))
		for i, ys := range view.Years {
			labels[i] = fmt.Sprintf("%d", ys.Year)
			counts[i] = float64(ys.Projects)
			spend[i] = ys.Actual
		}
		charts = append(charts,
			model.ChartSpec{
				Type:   model.ChartBar,
				Title:  "Projects by year",
				Labels: labels,
				Datasets: []model.Dataset{
					{Label: "Projects", Data: counts},
				},
				Options: model.ChartOptions{YFormat: "count", YLabel: "projects"},
			},
			model.ChartSpec{
				Type:   model.ChartLine,
				Title:  "Actual spend by year",
				Labels: labels,
				Datasets: []model.Dataset{
					{Label: "Actual", Data: spend},
				},
				Options: model.ChartOptions{YFormat: "money", YLabel: "spend"},
			},
		)
	}

	// Observed + projected spend.
	if len(view.Forecast) > 0 && len(series) > 0 {
		periods := SortedPeriods(series)
		labels := make([]string, 0, len(periods)+len(view.Forecast))
		observed := make([]float64, 0, len(periods))
		for _, y := range periods {
			labels = append(labels, fmt.Sprintf("%d", y))
			observed = append(observed, series[y])
		}
		projected := make([]float64, 0, len(view.Forecast))
		for _, fp := range view.Forecast {
			labels = append(labels, fmt.Sprintf("%d", fp.Period))
			projected = append(projected, fp.Value)
		}
		charts = append(charts, model.ChartSpec{
			Type:   model.ChartLine,
			Title:  "Spend forecast",
			Labels: labels,
			Datasets: []model.Dataset{
				{Label: "Observed", Data: observed},
				{Label: "Projected", Data: projected, Dashed: true},
			},
			Options: model.ChartOptions{YFormat: "money", YLabel: "spend"},
		})
	}

	// Monthly view when a year is selected.
	if len(view.Months) > 0 {
		labels := make([]string, len(view.Months))
		coCost := make([]float64, len(view.Months))
		for i, ms := range view.Months {
			labels[i] = fmt.Sprintf("%02d", ms.Month)
			coCost[i] = ms.COCost
		}
		charts = append(charts, model.ChartSpec{
			Type:   model.ChartBar,
			Title:  fmt.Sprintf("Change-order cost by month, %d", view.Filter.Year),
			Labels: labels,
			Datasets: []model.Dataset{
				{Label: "CO cost", Data: coCost},
			},
			Options: model.ChartOptions{YFormat: "money", YLabel: "cost"},
		})
	}

	return charts
}
