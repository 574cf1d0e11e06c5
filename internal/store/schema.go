package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS projects (
    project_id       TEXT PRIMARY KEY,
    project_name     TEXT NOT NULL,
    start_date       TEXT,
    planned_end      TEXT,
    actual_end       TEXT,
    planned_budget   REAL,
    actual_cost      REAL,
    completion_pct   REAL
);

CREATE TABLE IF NOT EXISTS change_orders (
    rowid_key        INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id       TEXT,
    phase_id         TEXT,
    co_id            TEXT,
    co_cost          REAL,
    co_reason        TEXT,
    co_date          TEXT
);

CREATE TABLE IF NOT EXISTS file_tracker (
    file_path        TEXT PRIMARY KEY,
    mtime_ns         INTEGER NOT NULL,
    size_bytes       INTEGER NOT NULL,
    row_errors       INTEGER NOT NULL DEFAULT 0,
    parsed_at        TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_projects_start ON projects(start_date);
CREATE INDEX IF NOT EXISTS idx_co_project ON change_orders(project_id);
`
