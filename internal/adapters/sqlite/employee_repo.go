package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	hrerrors "github.com/example/hrdesk/internal/errors"
	"github.com/example/hrdesk/internal/ports/secondary"
)

// EmployeeRepository implements secondary.EmployeeRepository with SQLite.
type EmployeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository creates a new SQLite employee repository.
func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeColumns = "id, first_name, last_name, position_id, active, created_at, updated_at"

// Create persists a new employee.
func (r *EmployeeRepository) Create(ctx context.Context, employee *secondary.EmployeeRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO employees (id, first_name, last_name, position_id, active) VALUES (?, ?, ?, ?, ?)",
		employee.ID, employee.FirstName, employee.LastName, nullString(employee.PositionID), employee.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}

	return nil
}

// GetByID retrieves an employee by its ID.
func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*secondary.EmployeeRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE id = ?",
		id,
	)

	record, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, hrerrors.NewNotFoundError("employee", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return record, nil
}

// List retrieves employees matching the given filters.
func (r *EmployeeRepository) List(ctx context.Context, filters secondary.EmployeeFilters) ([]*secondary.EmployeeRecord, error) {
	query := "SELECT " + employeeColumns + " FROM employees WHERE 1=1"
	args := []any{}

	if filters.PositionID != "" {
		query += " AND position_id = ?"
		args = append(args, filters.PositionID)
	}

	if filters.Active != nil {
		query += " AND active = ?"
		args = append(args, *filters.Active)
	}

	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []*secondary.EmployeeRecord
	for rows.Next() {
		record, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return employees, nil
}

// Update persists names, current position and active flag.
func (r *EmployeeRepository) Update(ctx context.Context, employee *secondary.EmployeeRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE employees SET first_name = ?, last_name = ?, position_id = ?, active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		employee.FirstName, employee.LastName, nullString(employee.PositionID), employee.Active, employee.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return hrerrors.NewNotFoundError("employee", employee.ID)
	}

	return nil
}

// GetNextID returns the next available employee ID.
func (r *EmployeeRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM employees",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next employee ID: %w", err)
	}

	return fmt.Sprintf("EMP-%03d", maxID+1), nil
}

func scanEmployee(s scanner) (*secondary.EmployeeRecord, error) {
	var (
		positionID sql.NullString
		createdAt  time.Time
		updatedAt  time.Time
	)

	record := &secondary.EmployeeRecord{}
	if err := s.Scan(&record.ID, &record.FirstName, &record.LastName, &positionID, &record.Active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	record.PositionID = positionID.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// Ensure EmployeeRepository implements the interface
var _ secondary.EmployeeRepository = (*EmployeeRepository)(nil)
