package pipeline

import (
	"math"
	"testing"
	"time"

	"pmlens/internal/model"
)

func TestFitTrend_Empty(t *testing.T) {
	line := FitTrend(map[int]float64{})
	if line.Slope != 0 || line.Intercept != 0 || line.Points != 0 {
		t.Errorf("empty series should fit to zero line, got %+v", line)
	}
}

func TestFitTrend_SinglePointIsFlat(t *testing.T) {
	line := FitTrend(map[int]float64{2022: 500})

	if line.Slope != 0 {
		t.Errorf("Slope = %v, want 0", line.Slope)
	}
	if line.Intercept != 500 {
		t.Errorf("Intercept = %v, want 500", line.Intercept)
	}
	if line.Points != 1 {
		t.Errorf("Points = %d, want 1", line.Points)
	}

	// Projection carries the flat value forward.
	points := ProjectTrend(line, 2022, 3)
	want := []model.ForecastPoint{
		{Period: 2023, Value: 500},
		{Period: 2024, Value: 500},
		{Period: 2025, Value: 500},
	}
	if len(points) != len(want) {
		t.Fatalf("points = %d, want %d", len(points), len(want))
	}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("points[%d] = %+v, want %+v", i, points[i], want[i])
		}
	}
}

func TestFitTrend_KnownLine(t *testing.T) {
	// y = 100x - 198000 exactly: (2021, 4100), (2022, 4200), (2023, 4300)
	series := map[int]float64{2021: 4100, 2022: 4200, 2023: 4300}
	line := FitTrend(series)

	if math.Abs(line.Slope-100) > 1e-6 {
		t.Errorf("Slope = %v, want 100", line.Slope)
	}
	got := line.Intercept + line.Slope*2024
	if math.Abs(got-4400) > 1e-6 {
		t.Errorf("extrapolated 2024 = %v, want 4400", got)
	}
	if line.Points != 3 {
		t.Errorf("Points = %d, want 3", line.Points)
	}
}

func TestProjectTrend_ZeroHorizon(t *testing.T) {
	line := model.TrendLine{Intercept: 1, Slope: 2, Points: 5}
	if pts := ProjectTrend(line, 2022, 0); pts != nil {
		t.Errorf("horizon 0 should produce nil, got %v", pts)
	}
}

func TestYearlySpendSeries(t *testing.T) {
	undated := project("P3", 2022, 100, 100)
	undated.StartDate = time.Time{}
	nanCost := project("P4", 2022, 100, math.NaN())

	projects := []model.Project{
		project("P1", 2021, 100, 150),
		project("P2", 2021, 100, 50),
		undated,
		nanCost,
	}

	series := YearlySpendSeries(projects)

	if len(series) != 1 {
		t.Fatalf("series = %v, want one year", series)
	}
	if series[2021] != 200 {
		t.Errorf("2021 = %v, want 200", series[2021])
	}
	if LastPeriod(series) != 2021 {
		t.Errorf("LastPeriod = %d, want 2021", LastPeriod(series))
	}
}

func TestSortedPeriods(t *testing.T) {
	series := map[int]float64{2023: 1, 2020: 2, 2022: 3}
	got := SortedPeriods(series)
	want := []int{2020, 2022, 2023}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SortedPeriods = %v, want %v", got, want)
		}
	}
}
