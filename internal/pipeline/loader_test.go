package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"pmlens/internal/store"
)

// writeDataDir creates a data directory with both CSV files.
func writeDataDir(t *testing.T, projectRows, orderRows string) string {
	t.Helper()
	dir := t.TempDir()

	projects := "project_id,project_name,start_date,planned_end,actual_end,planned_budget,actual_cost,completion_pct\n" + projectRows
	orders := "project_id,phase_id,co_id,co_cost,co_reason,date\n" + orderRows

	if err := os.WriteFile(filepath.Join(dir, "projects.csv"), []byte(projects), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "change_orders.csv"), []byte(orders), 0o600); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoad_JoinsBothFiles(t *testing.T) {
	dir := writeDataDir(t,
		"P1,Bridge,2022-03-01,2022-11-30,2022-12-15,1000,1200,100\n"+
			"P2,Depot,2022-05-01,2023-01-31,,2000,800,40\n",
		"P1,PH1,CO-1,50,2,2022-06-10\n",
	)

	result, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(result.Snapshot.Projects) != 2 {
		t.Errorf("Projects = %d, want 2", len(result.Snapshot.Projects))
	}
	if len(result.Snapshot.ChangeOrders) != 1 {
		t.Errorf("ChangeOrders = %d, want 1", len(result.Snapshot.ChangeOrders))
	}
	if result.RowErrors != 0 {
		t.Errorf("RowErrors = %d, want 0", result.RowErrors)
	}
	if result.Snapshot.LoadedAt.IsZero() {
		t.Error("LoadedAt must be set")
	}
	if result.Snapshot.ChangeOrders[0].Reason != "Unforeseen Conditions" {
		t.Errorf("Reason = %q", result.Snapshot.ChangeOrders[0].Reason)
	}
}

func TestLoad_MissingFileIsTerminal(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "projects.csv"), []byte("project_id\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error without change_orders.csv")
	}
}

func TestLoadWithCache_ServesFreshCache(t *testing.T) {
	dir := writeDataDir(t,
		"P1,Bridge,2022-03-01,2022-11-30,2022-12-15,1000,1200,100\n",
		"P1,PH1,CO-1,50,0,2022-06-10\n",
	)

	cache, err := store.Open(filepath.Join(t.TempDir(), "rows.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	first, err := LoadWithCache(dir, cache)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if first.FromCache {
		t.Error("first load must parse, not hit the cache")
	}

	second, err := LoadWithCache(dir, cache)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if !second.FromCache {
		t.Error("unchanged files must serve from cache")
	}
	if len(second.Snapshot.Projects) != 1 || len(second.Snapshot.ChangeOrders) != 1 {
		t.Errorf("cached snapshot = %d/%d rows",
			len(second.Snapshot.Projects), len(second.Snapshot.ChangeOrders))
	}
}

func TestLoadWithCache_ReparsesOnChange(t *testing.T) {
	dir := writeDataDir(t,
		"P1,Bridge,2022-03-01,2022-11-30,2022-12-15,1000,1200,100\n",
		"P1,PH1,CO-1,50,0,2022-06-10\n",
	)

	cache, err := store.Open(filepath.Join(t.TempDir(), "rows.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	if _, err := LoadWithCache(dir, cache); err != nil {
		t.Fatal(err)
	}

	// Grow the projects file; size change alone must invalidate.
	path := filepath.Join(dir, "projects.csv")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("P2,Depot,2023-05-01,2024-01-31,,2000,800,40\n"); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	// Nudge mtime forward for filesystems with coarse timestamps.
	later := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}

	result, err := LoadWithCache(dir, cache)
	if err != nil {
		t.Fatal(err)
	}
	if result.FromCache {
		t.Error("changed file must force a re-parse")
	}
	if len(result.Snapshot.Projects) != 2 {
		t.Errorf("Projects = %d, want 2 after append", len(result.Snapshot.Projects))
	}
}
