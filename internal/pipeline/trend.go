package pipeline

import (
	"sort"

	"pmlens/internal/model"
)

// FitTrend fits an ordinary least-squares line over (period, value)
// pairs, treating the period as the raw independent variable.
//
// Degenerate inputs never fail: fewer than two points yields a flat line
// through the single value (or zero), and the max(1, ...) denominator
// guard turns an all-identical-x cohort into a near-zero slope instead
// of a division by zero. Both are deliberate approximations.
func FitTrend(series map[int]float64) model.TrendLine {
	n := float64(len(series))
	if len(series) == 0 {
		return model.TrendLine{}
	}
	if len(series) == 1 {
		for _, v := range series {
			return model.TrendLine{Intercept: v, Points: 1}
		}
	}

	var sumX, sumY, sumXY, sumXX float64
	for x, y := range series {
		fx := float64(x)
		sumX += fx
		sumY += y
		sumXY += fx * y
		sumXX += fx * fx
	}

	denom := n*sumXX - sumX*sumX
	if denom < 1 {
		denom = 1
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	return model.TrendLine{
		Intercept: intercept,
		Slope:     slope,
		Points:    len(series),
	}
}

// ProjectTrend extrapolates the fitted line horizon periods past the
// last observed one. A deterministic point forecast only; no intervals.
func ProjectTrend(line model.TrendLine, lastPeriod, horizon int) []model.ForecastPoint {
	if horizon <= 0 {
		return nil
	}
	points := make([]model.ForecastPoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		period := lastPeriod + i
		points = append(points, model.ForecastPoint{
			Period: period,
			Value:  line.Intercept + line.Slope*float64(period),
		})
	}
	return points
}

// YearlySpendSeries builds the year → actual-cost series the forecast
// commands fit against. Non-finite costs and undated projects are skipped.
func YearlySpendSeries(projects []model.Project) map[int]float64 {
	series := make(map[int]float64)
	for _, p := range projects {
		if p.StartDate.IsZero() || !finite(p.ActualCost) {
			continue
		}
		series[p.StartDate.Year()] += p.ActualCost
	}
	return series
}

// LastPeriod returns the largest key in a series, or 0 for an empty one.
func LastPeriod(series map[int]float64) int {
	last := 0
	for k := range series {
		if k > last {
			last = k
		}
	}
	return last
}

// SortedPeriods returns the series keys ascending.
func SortedPeriods(series map[int]float64) []int {
	keys := make([]int, 0, len(series))
	for k := range series {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
