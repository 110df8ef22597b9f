package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	hrerrors "github.com/example/hrdesk/internal/errors"
	"github.com/example/hrdesk/internal/ports/secondary"
)

// SalaryHistoryRepository implements secondary.SalaryHistoryRepository with SQLite.
type SalaryHistoryRepository struct {
	db *sql.DB
}

// NewSalaryHistoryRepository creates a new SQLite salary history repository.
func NewSalaryHistoryRepository(db *sql.DB) *SalaryHistoryRepository {
	return &SalaryHistoryRepository{db: db}
}

const salaryHistoryColumns = "id, employee_id, position_id, start_date, end_date, salary, note, active, user_id, created_at, updated_at"

const nextSalaryHistoryIDQuery = "SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM salary_history"

// Create persists a new record. When the record has no ID, the next one is
// allocated in the same transaction as the insert so concurrent creates
// cannot collide.
func (r *SalaryHistoryRepository) Create(ctx context.Context, record *secondary.SalaryHistoryRecord) (*secondary.SalaryHistoryRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin salary history insert: %w", err)
	}
	defer tx.Rollback()

	created := *record
	if created.ID == "" {
		var maxID int
		if err := tx.QueryRowContext(ctx, nextSalaryHistoryIDQuery).Scan(&maxID); err != nil {
			return nil, fmt.Errorf("failed to get next salary history ID: %w", err)
		}
		created.ID = fmt.Sprintf("SALH-%03d", maxID+1)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO salary_history (id, employee_id, position_id, start_date, end_date, salary, note, active, user_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		created.ID,
		created.EmployeeID,
		created.PositionID,
		created.StartDate,
		nullString(created.EndDate),
		created.Salary.String(),
		nullString(created.Note),
		created.Active,
		nullString(created.UserID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create salary history record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit salary history record: %w", err)
	}

	return &created, nil
}

// GetByID retrieves a record by its ID.
func (r *SalaryHistoryRepository) GetByID(ctx context.Context, id string) (*secondary.SalaryHistoryRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+salaryHistoryColumns+" FROM salary_history WHERE id = ?",
		id,
	)

	record, err := scanSalaryHistory(row)
	if err == sql.ErrNoRows {
		return nil, hrerrors.NewNotFoundError("salary history record", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get salary history record: %w", err)
	}

	return record, nil
}

// List retrieves records matching the given filters, newest first.
func (r *SalaryHistoryRepository) List(ctx context.Context, filters secondary.SalaryHistoryFilters) ([]*secondary.SalaryHistoryRecord, error) {
	query := "SELECT " + salaryHistoryColumns + " FROM salary_history WHERE 1=1"
	args := []any{}

	if filters.EmployeeID != "" {
		query += " AND employee_id = ?"
		args = append(args, filters.EmployeeID)
	}

	if filters.PositionID != "" {
		query += " AND position_id = ?"
		args = append(args, filters.PositionID)
	}

	if filters.OpenOnly {
		query += " AND active = 1 AND (end_date IS NULL OR TRIM(end_date) = '')"
	}

	query += " ORDER BY start_date DESC, LENGTH(id) DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary history: %w", err)
	}
	defer rows.Close()

	var records []*secondary.SalaryHistoryRecord
	for rows.Next() {
		record, err := scanSalaryHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary history record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list salary history: %w", err)
	}

	return records, nil
}

// Update replaces every mutable field of the record.
func (r *SalaryHistoryRepository) Update(ctx context.Context, record *secondary.SalaryHistoryRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE salary_history SET
			employee_id = ?, position_id = ?, start_date = ?, end_date = ?, salary = ?,
			note = ?, active = ?, user_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		record.EmployeeID,
		record.PositionID,
		record.StartDate,
		nullString(record.EndDate),
		record.Salary.String(),
		nullString(record.Note),
		record.Active,
		nullString(record.UserID),
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update salary history record: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return hrerrors.NewNotFoundError("salary history record", record.ID)
	}

	return nil
}

// GetNextID returns the next available record ID.
func (r *SalaryHistoryRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	if err := r.db.QueryRowContext(ctx, nextSalaryHistoryIDQuery).Scan(&maxID); err != nil {
		return "", fmt.Errorf("failed to get next salary history ID: %w", err)
	}

	return fmt.Sprintf("SALH-%03d", maxID+1), nil
}

func scanSalaryHistory(s scanner) (*secondary.SalaryHistoryRecord, error) {
	var (
		endDate   sql.NullString
		salary    decimal.Decimal
		note      sql.NullString
		userID    sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.SalaryHistoryRecord{}
	err := s.Scan(&record.ID,
		&record.EmployeeID,
		&record.PositionID,
		&record.StartDate,
		&endDate,
		&salary,
		&note,
		&record.Active,
		&userID,
		&createdAt,
		&updatedAt)
	if err != nil {
		return nil, err
	}

	record.EndDate = endDate.String
	record.Salary = salary
	record.Note = note.String
	record.UserID = userID.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// Ensure SalaryHistoryRepository implements the interface
var _ secondary.SalaryHistoryRepository = (*SalaryHistoryRepository)(nil)
