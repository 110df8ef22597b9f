// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not declare tables in test files; use
// setupTestDB() and the seed* helpers.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/hrdesk/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// The pool is pinned to one connection: every new connection to ":memory:"
// would otherwise see its own empty database.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedPosition inserts a test position and returns its ID.
func seedPosition(t *testing.T, db *sql.DB, id, name, salary string) string {
	t.Helper()
	if id == "" {
		id = "POS-001"
	}
	if name == "" {
		name = "Test Position"
	}
	if salary == "" {
		salary = "1000"
	}
	_, err := db.Exec("INSERT INTO positions (id, name, base_salary, active) VALUES (?, ?, ?, 1)", id, name, salary)
	if err != nil {
		t.Fatalf("failed to seed position: %v", err)
	}
	return id
}

// seedEmployee inserts a test employee on positionID and returns its ID.
func seedEmployee(t *testing.T, db *sql.DB, id, positionID string, active bool) string {
	t.Helper()
	if id == "" {
		id = "EMP-001"
	}
	var pos sql.NullString
	if positionID != "" {
		pos = sql.NullString{String: positionID, Valid: true}
	}
	_, err := db.Exec("INSERT INTO employees (id, first_name, last_name, position_id, active) VALUES (?, 'Test', 'Employee', ?, ?)", id, pos, active)
	if err != nil {
		t.Fatalf("failed to seed employee: %v", err)
	}
	return id
}

// seedHistory inserts a salary history record. An empty endDate leaves it open.
func seedHistory(t *testing.T, db *sql.DB, id, employeeID, positionID, startDate, endDate, salary string) string {
	t.Helper()
	var end sql.NullString
	if endDate != "" {
		end = sql.NullString{String: endDate, Valid: true}
	}
	_, err := db.Exec(
		"INSERT INTO salary_history (id, employee_id, position_id, start_date, end_date, salary, note, active, user_id) VALUES (?, ?, ?, ?, ?, ?, 'seed', 1, 'USR-001')",
		id, employeeID, positionID, startDate, end, salary,
	)
	if err != nil {
		t.Fatalf("failed to seed salary history: %v", err)
	}
	return id
}
