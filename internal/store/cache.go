// Package store provides a SQLite-backed cache for parsed CSV rows.
package store

import (
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"pmlens/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache caches parsed input rows so unchanged files skip re-parsing.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime, size, and row error count for a file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
	RowErrors int
}

// GetTrackedFiles returns file_path -> FileInfo for all tracked files.
func (c *Cache) GetTrackedFiles() (map[string]FileInfo, error) {
	rows, err := c.db.Query("SELECT file_path, mtime_ns, size_bytes, row_errors FROM file_tracker")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes, &fi.RowErrors); err != nil {
			return nil, err
		}
		result[path] = fi
	}
	return result, rows.Err()
}

// ReplaceSnapshot stores a freshly parsed snapshot wholesale. Rows are
// never patched in place; both tables are cleared and refilled, matching
// the replace-on-reload lifecycle of the loaded data.
func (c *Cache) ReplaceSnapshot(snap model.Snapshot, tracked map[string]FileInfo) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM projects"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM change_orders"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM file_tracker"); err != nil {
		return err
	}

	for _, p := range snap.Projects {
		_, err := tx.Exec(`INSERT OR REPLACE INTO projects
			(project_id, project_name, start_date, planned_end, actual_end,
			 planned_budget, actual_cost, completion_pct)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, encodeDate(p.StartDate), encodeDate(p.PlannedEnd),
			encodeDate(p.ActualEnd), encodeFloat(p.PlannedBudget),
			encodeFloat(p.ActualCost), encodeFloat(p.CompletionPct),
		)
		if err != nil {
			return err
		}
	}

	for _, co := range snap.ChangeOrders {
		_, err := tx.Exec(`INSERT INTO change_orders
			(project_id, phase_id, co_id, co_cost, co_reason, co_date)
			VALUES (?, ?, ?, ?, ?, ?)`,
			co.ProjectID, co.PhaseID, co.OrderID,
			encodeFloat(co.Cost), co.Reason, encodeDate(co.Date),
		)
		if err != nil {
			return err
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for path, fi := range tracked {
		_, err := tx.Exec(`INSERT OR REPLACE INTO file_tracker
			(file_path, mtime_ns, size_bytes, row_errors, parsed_at)
			VALUES (?, ?, ?, ?, ?)`,
			path, fi.MtimeNs, fi.SizeBytes, fi.RowErrors, now,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadSnapshot reads all cached rows back into a snapshot.
func (c *Cache) LoadSnapshot() (model.Snapshot, error) {
	snap := model.Snapshot{LoadedAt: time.Now()}

	rows, err := c.db.Query(`SELECT project_id, project_name, start_date,
		planned_end, actual_end, planned_budget, actual_cost, completion_pct
		FROM projects`)
	if err != nil {
		return snap, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var p model.Project
		var start, planned, actual sql.NullString
		var budget, cost, pct sql.NullFloat64

		if err := rows.Scan(&p.ID, &p.Name, &start, &planned, &actual, &budget, &cost, &pct); err != nil {
			return snap, err
		}
		p.StartDate = decodeDate(start)
		p.PlannedEnd = decodeDate(planned)
		p.ActualEnd = decodeDate(actual)
		p.PlannedBudget = decodeFloat(budget)
		p.ActualCost = decodeFloat(cost)
		p.CompletionPct = decodeFloat(pct)
		snap.Projects = append(snap.Projects, p)
	}
	if err := rows.Err(); err != nil {
		return snap, err
	}

	coRows, err := c.db.Query(`SELECT project_id, phase_id, co_id, co_cost,
		co_reason, co_date FROM change_orders`)
	if err != nil {
		return snap, err
	}
	defer func() { _ = coRows.Close() }()

	for coRows.Next() {
		var co model.ChangeOrder
		var date sql.NullString
		var cost sql.NullFloat64

		if err := coRows.Scan(&co.ProjectID, &co.PhaseID, &co.OrderID, &cost, &co.Reason, &date); err != nil {
			return snap, err
		}
		co.Cost = decodeFloat(cost)
		co.Date = decodeDate(date)
		snap.ChangeOrders = append(snap.ChangeOrders, co)
	}

	return snap, coRows.Err()
}

// ProjectCount returns the number of cached projects.
func (c *Cache) ProjectCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM projects").Scan(&count)
	return count, err
}

// NaN round-trips as NULL; SQLite has no NaN literal.
func encodeFloat(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

func decodeFloat(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

func encodeDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func decodeDate(v sql.NullString) time.Time {
	if !v.Valid || v.String == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339, v.String)
	return t
}
