package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for fresh hrdesk installs.
// It reflects the state after all migrations have run.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Repository
// tests load it through GetSchemaSQL() instead of declaring their own
// tables, so a repository referencing a missing column fails immediately
// with "no such column".
//
// Keep this in sync with migrations.go.
//
// Salaries are stored as decimal text, dates as YYYY-MM-DD text.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS positions (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	base_salary TEXT NOT NULL DEFAULT '0',
	active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS employees (
	id TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	position_id TEXT,
	active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (position_id) REFERENCES positions(id)
);

CREATE INDEX IF NOT EXISTS idx_employees_position ON employees(position_id);

CREATE TABLE IF NOT EXISTS salary_history (
	id TEXT PRIMARY KEY,
	employee_id TEXT NOT NULL,
	position_id TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date TEXT,
	salary TEXT NOT NULL,
	note TEXT,
	active INTEGER NOT NULL DEFAULT 1,
	user_id TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (employee_id) REFERENCES employees(id),
	FOREIGN KEY (position_id) REFERENCES positions(id)
);

CREATE INDEX IF NOT EXISTS idx_salary_history_pair ON salary_history(employee_id, position_id);
CREATE INDEX IF NOT EXISTS idx_salary_history_open ON salary_history(position_id, end_date);

CREATE TABLE IF NOT EXISTS audit_logs (
	id TEXT PRIMARY KEY,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	actor_id TEXT,
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
	field_name TEXT,
	old_value TEXT,
	new_value TEXT,
	run_id TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_audit_logs_entity ON audit_logs(entity_type, entity_id);
CREATE INDEX IF NOT EXISTS idx_audit_logs_timestamp ON audit_logs(timestamp);
CREATE INDEX IF NOT EXISTS idx_audit_logs_run ON audit_logs(run_id);
`

// InitSchema creates the schema on a fresh database or runs pending
// migrations on an existing one.
func InitSchema(conn *sql.DB) error {
	var tableCount int
	err := conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		return RunMigrations(conn)
	}

	var existing int
	err = conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('positions', 'employees', 'salary_history')").Scan(&existing)
	if err != nil {
		return err
	}
	if existing > 0 {
		// Pre-versioning database - let the migrations bring it forward
		return RunMigrations(conn)
	}

	// Completely fresh install - create modern schema directly and mark
	// every migration as applied
	if _, err := conn.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := ensureVersionTable(conn); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := conn.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
