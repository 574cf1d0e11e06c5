package pipeline

import (
	"testing"

	"pmlens/internal/model"
)

func snapshot() model.Snapshot {
	return model.Snapshot{
		Projects: []model.Project{
			project("P1", 2021, 1000, 1200),
			project("P2", 2022, 2000, 1900),
			project("P3", 2022, 3000, 3300),
		},
		ChangeOrders: []model.ChangeOrder{
			{ProjectID: "P1", Cost: 50, Reason: "Scope Change", Date: date(2021, 6, 1)},
			{ProjectID: "P3", Cost: 120, Reason: "Design Revision", Date: date(2022, 9, 1)},
		},
	}
}

func TestRecompute_AllYears(t *testing.T) {
	view := Recompute(snapshot(), Filter{}, nil)

	if view.Filter.Horizon != 3 {
		t.Errorf("default horizon = %d, want 3", view.Filter.Horizon)
	}
	if view.Portfolio.TotalProjects != 3 {
		t.Errorf("TotalProjects = %d, want 3", view.Portfolio.TotalProjects)
	}
	if len(view.Years) != 2 {
		t.Errorf("Years = %d, want 2", len(view.Years))
	}
	if view.Months != nil {
		t.Error("Months should be nil without a year filter")
	}
	if len(view.Forecast) != 3 {
		t.Errorf("Forecast = %d points, want 3", len(view.Forecast))
	}
	if len(view.Risks) != 3 || len(view.Rollups) != 3 {
		t.Errorf("Risks/Rollups = %d/%d, want 3/3", len(view.Risks), len(view.Rollups))
	}
}

func TestRecompute_YearFilter(t *testing.T) {
	view := Recompute(snapshot(), Filter{Year: 2022, Horizon: 2}, nil)

	if view.Portfolio.TotalProjects != 2 {
		t.Errorf("filtered TotalProjects = %d, want 2", view.Portfolio.TotalProjects)
	}
	if len(view.Months) != 12 {
		t.Errorf("Months = %d, want 12", len(view.Months))
	}
	// Yearly rollups stay unfiltered so the year-over-year view survives.
	if len(view.Years) != 2 {
		t.Errorf("Years = %d, want 2 (unfiltered)", len(view.Years))
	}
	// Forecast fits the unfiltered series even under a year filter.
	if len(view.Forecast) != 2 {
		t.Errorf("Forecast = %d, want 2", len(view.Forecast))
	}
	if view.Forecast[0].Period != 2023 {
		t.Errorf("first forecast period = %d, want 2023", view.Forecast[0].Period)
	}
}

func TestRecompute_ChartSpecs(t *testing.T) {
	view := Recompute(snapshot(), Filter{Year: 2022}, nil)

	byTitle := make(map[string]model.ChartSpec, len(view.Charts))
	for _, c := range view.Charts {
		byTitle[c.Title] = c
	}

	bar, ok := byTitle["Projects by year"]
	if !ok {
		t.Fatal("missing projects-by-year chart")
	}
	if bar.Type != model.ChartBar {
		t.Errorf("type = %v, want bar", bar.Type)
	}
	if len(bar.Labels) != len(bar.Datasets[0].Data) {
		t.Error("labels and data must align")
	}

	forecast, ok := byTitle["Spend forecast"]
	if !ok {
		t.Fatal("missing forecast chart")
	}
	if len(forecast.Datasets) != 2 {
		t.Fatalf("forecast datasets = %d, want observed + projected", len(forecast.Datasets))
	}
	if !forecast.Datasets[1].Dashed {
		t.Error("projected dataset must be dashed")
	}
	if got := len(forecast.Datasets[0].Data) + len(forecast.Datasets[1].Data); got != len(forecast.Labels) {
		t.Errorf("combined data length %d != labels %d", got, len(forecast.Labels))
	}
	if forecast.Options.YFormat != "money" {
		t.Errorf("YFormat = %q, want money", forecast.Options.YFormat)
	}

	monthly, ok := byTitle["Change-order cost by month, 2022"]
	if !ok {
		t.Fatal("missing monthly chart under a year filter")
	}
	if len(monthly.Labels) != 12 {
		t.Errorf("monthly labels = %d, want 12", len(monthly.Labels))
	}
}

func TestRecompute_EmptySnapshot(t *testing.T) {
	view := Recompute(model.Snapshot{}, Filter{}, nil)

	if view.Portfolio.TotalProjects != 0 {
		t.Error("empty snapshot should aggregate to zeros")
	}
	if view.Risks != nil {
		t.Errorf("Risks = %v, want nil", view.Risks)
	}
	if len(view.Charts) != 0 {
		t.Errorf("Charts = %d, want none", len(view.Charts))
	}
}
