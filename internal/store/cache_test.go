package store

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"pmlens/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := Open(filepath.Join(t.TempDir(), "rows.db"))
	if err != nil {
		t.Fatalf("opening cache: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestCache_SnapshotRoundTrip(t *testing.T) {
	cache := openTestCache(t)

	start := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	snap := model.Snapshot{
		Projects: []model.Project{
			{
				ID:            "P1",
				Name:          "Bridge Retrofit",
				StartDate:     start,
				PlannedEnd:    start.AddDate(0, 9, 0),
				ActualEnd:     time.Time{}, // in-flight
				PlannedBudget: 1000000,
				ActualCost:    math.NaN(), // degraded field
				CompletionPct: 60,
			},
		},
		ChangeOrders: []model.ChangeOrder{
			{ProjectID: "P1", PhaseID: "PH1", OrderID: "CO-1", Cost: 25000,
				Reason: "Scope Change", Date: start.AddDate(0, 3, 10)},
		},
	}
	tracked := map[string]FileInfo{
		"/data/projects.csv":      {MtimeNs: 111, SizeBytes: 2048, RowErrors: 1},
		"/data/change_orders.csv": {MtimeNs: 222, SizeBytes: 512},
	}

	if err := cache.ReplaceSnapshot(snap, tracked); err != nil {
		t.Fatalf("ReplaceSnapshot: %v", err)
	}

	got, err := cache.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	if len(got.Projects) != 1 || len(got.ChangeOrders) != 1 {
		t.Fatalf("rows = %d/%d, want 1/1", len(got.Projects), len(got.ChangeOrders))
	}

	p := got.Projects[0]
	if p.ID != "P1" || p.Name != "Bridge Retrofit" {
		t.Errorf("identity = %q/%q", p.ID, p.Name)
	}
	if !p.StartDate.Equal(start) {
		t.Errorf("StartDate = %v, want %v", p.StartDate, start)
	}
	// Zero dates and NaN floats must survive the NULL round-trip.
	if !p.ActualEnd.IsZero() {
		t.Errorf("ActualEnd = %v, want zero", p.ActualEnd)
	}
	if !math.IsNaN(p.ActualCost) {
		t.Errorf("ActualCost = %v, want NaN", p.ActualCost)
	}
	if p.PlannedBudget != 1000000 {
		t.Errorf("PlannedBudget = %v", p.PlannedBudget)
	}

	co := got.ChangeOrders[0]
	if co.Reason != "Scope Change" || co.Cost != 25000 {
		t.Errorf("change order = %+v", co)
	}
}

func TestCache_TrackedFiles(t *testing.T) {
	cache := openTestCache(t)

	tracked := map[string]FileInfo{
		"/data/projects.csv": {MtimeNs: 42, SizeBytes: 100, RowErrors: 3},
	}
	if err := cache.ReplaceSnapshot(model.Snapshot{}, tracked); err != nil {
		t.Fatalf("ReplaceSnapshot: %v", err)
	}

	got, err := cache.GetTrackedFiles()
	if err != nil {
		t.Fatalf("GetTrackedFiles: %v", err)
	}
	fi, ok := got["/data/projects.csv"]
	if !ok {
		t.Fatal("tracked file missing")
	}
	if fi.MtimeNs != 42 || fi.SizeBytes != 100 || fi.RowErrors != 3 {
		t.Errorf("FileInfo = %+v", fi)
	}
}

func TestCache_ReplaceIsWholesale(t *testing.T) {
	cache := openTestCache(t)

	first := model.Snapshot{Projects: []model.Project{{ID: "OLD"}, {ID: "OLD2"}}}
	if err := cache.ReplaceSnapshot(first, nil); err != nil {
		t.Fatal(err)
	}

	second := model.Snapshot{Projects: []model.Project{{ID: "NEW"}}}
	if err := cache.ReplaceSnapshot(second, nil); err != nil {
		t.Fatal(err)
	}

	count, err := cache.ProjectCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("ProjectCount = %d, want 1 (old rows dropped)", count)
	}

	snap, err := cache.LoadSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	if snap.Projects[0].ID != "NEW" {
		t.Errorf("ID = %q, want NEW", snap.Projects[0].ID)
	}
}
