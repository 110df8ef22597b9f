package db

import (
	"database/sql"
	"fmt"

	"github.com/example/hrdesk/internal/logging"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_positions_employees_salary_history",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_audit_logs_table",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_note_and_user_to_salary_history",
		Up:      migrationV3,
	},
	{
		Version: 4,
		Name:    "add_salary_history_open_index",
		Up:      migrationV4,
	},
	{
		Version: 5,
		Name:    "add_run_id_to_audit_logs",
		Up:      migrationV5,
	},
}

// RunMigrations executes all pending migrations
func RunMigrations(conn *sql.DB) error {
	if err := ensureVersionTable(conn); err != nil {
		return err
	}

	var currentVersion int
	err := conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	log := logging.Default()
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		log.Info().Int("version", migration.Version).Str("name", migration.Name).Msg("running migration")

		tx, err := conn.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

func ensureVersionTable(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// migrationV1 creates the original three tables
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
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
			active INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (employee_id) REFERENCES employees(id),
			FOREIGN KEY (position_id) REFERENCES positions(id)
		);

		CREATE INDEX IF NOT EXISTS idx_salary_history_pair ON salary_history(employee_id, position_id);
	`)
	return err
}

// migrationV2 adds the audit trail
func migrationV2(tx *sql.Tx) error {
	_, err := tx.Exec(`
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
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_audit_logs_entity ON audit_logs(entity_type, entity_id);
		CREATE INDEX IF NOT EXISTS idx_audit_logs_timestamp ON audit_logs(timestamp);
	`)
	return err
}

// migrationV3 records who touched a history row and why
func migrationV3(tx *sql.Tx) error {
	for _, col := range []string{"note", "user_id"} {
		exists, err := columnExists(tx, "salary_history", col)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := tx.Exec(fmt.Sprintf("ALTER TABLE salary_history ADD COLUMN %s TEXT", col)); err != nil {
			return fmt.Errorf("failed to add salary_history.%s: %w", col, err)
		}
	}
	return nil
}

// migrationV4 speeds up the open-record lookup done on every salary change
func migrationV4(tx *sql.Tx) error {
	_, err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_salary_history_open ON salary_history(position_id, end_date)")
	return err
}

// migrationV5 ties audit entries to the reconciliation run that wrote them
func migrationV5(tx *sql.Tx) error {
	exists, err := columnExists(tx, "audit_logs", "run_id")
	if err != nil {
		return err
	}
	if !exists {
		if _, err := tx.Exec("ALTER TABLE audit_logs ADD COLUMN run_id TEXT"); err != nil {
			return fmt.Errorf("failed to add audit_logs.run_id: %w", err)
		}
	}
	_, err = tx.Exec("CREATE INDEX IF NOT EXISTS idx_audit_logs_run ON audit_logs(run_id)")
	return err
}

func columnExists(tx *sql.Tx, table, column string) (bool, error) {
	var count int
	err := tx.QueryRow(
		"SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?", table, column,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	return count > 0, nil
}
