package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with development fixtures: a handful
// of positions, employees assigned to them and one open history record per
// assignment, plus a closed record to show a past raise.
func SeedFixtures(database *sql.DB) error {
	now := time.Now()
	started := now.AddDate(-1, 0, 0).Format("2006-01-02")
	raised := now.AddDate(0, -3, 0).Format("2006-01-02")

	positions := []struct{ id, name, desc, salary string }{
		{"POS-001", "Software Engineer", "Builds and maintains internal systems", "5200.00"},
		{"POS-002", "HR Analyst", "Payroll and benefits administration", "3900.00"},
		{"POS-003", "Recruiter", "Sourcing and interviewing candidates", "3400.00"},
		{"POS-004", "Office Manager", "Facilities and vendor management", "3100.00"},
	}
	for _, p := range positions {
		if _, err := database.Exec(
			"INSERT INTO positions (id, name, description, base_salary, active) VALUES (?, ?, ?, ?, 1)",
			p.id, p.name, p.desc, p.salary,
		); err != nil {
			return fmt.Errorf("seed positions: %w", err)
		}
	}

	employees := []struct {
		id, first, last, positionID string
		active                      bool
	}{
		{"EMP-001", "Ana", "Morales", "POS-001", true},
		{"EMP-002", "Bruno", "Díaz", "POS-001", true},
		{"EMP-003", "Carla", "Núñez", "POS-002", true},
		{"EMP-004", "Diego", "Ramos", "POS-003", true},
		{"EMP-005", "Elena", "Vega", "POS-001", false},
	}
	for _, e := range employees {
		if _, err := database.Exec(
			"INSERT INTO employees (id, first_name, last_name, position_id, active) VALUES (?, ?, ?, ?, ?)",
			e.id, e.first, e.last, e.positionID, e.active,
		); err != nil {
			return fmt.Errorf("seed employees: %w", err)
		}
	}

	history := []struct {
		id, employeeID, positionID, start, end, salary, note string
	}{
		{"SALH-001", "EMP-001", "POS-001", started, raised, "4800.00", "Assigned to position"},
		{"SALH-002", "EMP-001", "POS-001", raised, "", "5200.00", "Annual review"},
		{"SALH-003", "EMP-002", "POS-001", raised, "", "5200.00", "Assigned to position"},
		{"SALH-004", "EMP-003", "POS-002", started, "", "3900.00", "Assigned to position"},
		{"SALH-005", "EMP-004", "POS-003", started, "", "3400.00", "Assigned to position"},
		{"SALH-006", "EMP-005", "POS-001", started, "", "4800.00", "Assigned to position"},
	}
	for _, h := range history {
		var end sql.NullString
		if h.end != "" {
			end = sql.NullString{String: h.end, Valid: true}
		}
		if _, err := database.Exec(
			"INSERT INTO salary_history (id, employee_id, position_id, start_date, end_date, salary, note, active, user_id) VALUES (?, ?, ?, ?, ?, ?, ?, 1, 'USR-001')",
			h.id, h.employeeID, h.positionID, h.start, end, h.salary, h.note,
		); err != nil {
			return fmt.Errorf("seed salary history: %w", err)
		}
	}

	return nil
}
