// +build ignore

package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Employee is an active employee on a position with no open salary record for it
type Employee struct {
	ID         string
	PositionID string
	BaseSalary string
}

const backfillNote = "Backfilled opening record"

func main() {
	dryRun := flag.Bool("dry-run", false, "Preview backfill without executing")
	dbFlag := flag.String("db", "", "Database path (default: ~/.hrdesk/hrdesk.db)")
	date := flag.String("date", time.Now().Format("2006-01-02"), "Start date for the opened records")
	user := flag.String("user", "USR-001", "Acting user recorded on the opened records")
	flag.Parse()

	if _, err := time.Parse("2006-01-02", *date); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid --date %q: expected YYYY-MM-DD\n", *date)
		os.Exit(1)
	}

	dbPath := *dbFlag
	if dbPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home dir: %v\n", err)
			os.Exit(1)
		}
		dbPath = filepath.Join(homeDir, ".hrdesk", "hrdesk.db")
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	employees, err := findEmployeesWithoutOpenRecord(db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error finding employees: %v\n", err)
		os.Exit(1)
	}

	if len(employees) == 0 {
		fmt.Println("Every active employee has an open salary record")
		return
	}

	fmt.Printf("Found %d employee(s) without an open salary record:\n\n", len(employees))
	for _, e := range employees {
		fmt.Printf("  %s on %s -> open at %s from %s\n", e.ID, e.PositionID, e.BaseSalary, *date)
	}
	fmt.Println()

	if *dryRun {
		fmt.Println("=== DRY RUN - No changes made ===")
		return
	}

	fmt.Println("=== Executing backfill ===")
	fmt.Println()

	opened := 0
	for _, e := range employees {
		id, err := openRecord(db, e, *date, *user)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error backfilling %s: %v\n", e.ID, err)
			continue
		}

		fmt.Printf("✓ Opened %s for %s\n", id, e.ID)
		opened++
	}

	fmt.Printf("\n=== Backfill complete: %d/%d records opened ===\n", opened, len(employees))
}

// Positions without a positive base salary are skipped; there is nothing to open at.
func findEmployeesWithoutOpenRecord(db *sql.DB) ([]Employee, error) {
	query := `
		SELECT e.id, e.position_id, p.base_salary
		FROM employees e
		JOIN positions p ON p.id = e.position_id
		WHERE e.active = 1
		  AND CAST(p.base_salary AS REAL) > 0
		  AND NOT EXISTS (
			SELECT 1 FROM salary_history h
			WHERE h.employee_id = e.id
			  AND h.position_id = e.position_id
			  AND h.active = 1
			  AND (h.end_date IS NULL OR TRIM(h.end_date) = '')
		  )
		ORDER BY LENGTH(e.id), e.id
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.PositionID, &e.BaseSalary); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

func openRecord(db *sql.DB, e Employee, date, user string) (string, error) {
	tx, err := db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var maxID int
	err = tx.QueryRow("SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM salary_history").Scan(&maxID)
	if err != nil {
		return "", err
	}
	recordID := fmt.Sprintf("SALH-%03d", maxID+1)

	_, err = tx.Exec(`
		INSERT INTO salary_history (id, employee_id, position_id, start_date, salary, note, active, user_id)
		VALUES (?, ?, ?, ?, ?, ?, 1, ?)
	`, recordID, e.ID, e.PositionID, date, e.BaseSalary, backfillNote, user)
	if err != nil {
		return "", fmt.Errorf("failed to create salary record: %w", err)
	}

	return recordID, tx.Commit()
}
