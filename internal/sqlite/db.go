package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema. Safe to run on an existing database.
func (db *DB) RunMigrations() error {
	migration := `
-- Per-(tenant, year) project number counters. next_sequence is mutated only
-- through the single atomic upsert in CounterRepository.AllocateNext.
CREATE TABLE IF NOT EXISTS project_counters (
    tenant_id TEXT NOT NULL,
    year INTEGER NOT NULL,
    next_sequence INTEGER NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (tenant_id, year)
);

-- Per-tenant storage configuration
CREATE TABLE IF NOT EXISTS tenant_settings (
    tenant_id TEXT PRIMARY KEY,
    storage_path TEXT,
    number_prefix TEXT,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Instance-wide key/value settings (legacy shared path)
CREATE TABLE IF NOT EXISTS instance_settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Save audit trail, append-only
CREATE TABLE IF NOT EXISTS save_log (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    project_number TEXT NOT NULL,
    category TEXT NOT NULL,
    sequence INTEGER NOT NULL,
    revision INTEGER NOT NULL DEFAULT 0,
    file_name TEXT NOT NULL,
    path TEXT NOT NULL,
    persisted INTEGER NOT NULL,
    persist_error TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_tenant_saves ON save_log(tenant_id);
CREATE INDEX IF NOT EXISTS idx_project_saves ON save_log(tenant_id, project_number);
CREATE INDEX IF NOT EXISTS idx_save_created_at ON save_log(created_at);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
