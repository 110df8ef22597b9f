// Package sqlite contains SQLite implementations of repository interfaces.
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

// PositionRepository implements secondary.PositionRepository with SQLite.
type PositionRepository struct {
	db *sql.DB
}

// NewPositionRepository creates a new SQLite position repository.
func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

const positionColumns = "id, name, description, base_salary, active, created_at, updated_at"

// Create persists a new position.
func (r *PositionRepository) Create(ctx context.Context, position *secondary.PositionRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO positions (id, name, description, base_salary, active) VALUES (?, ?, ?, ?, ?)",
		position.ID, position.Name, nullString(position.Description), position.BaseSalary.String(), position.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to create position: %w", err)
	}

	return nil
}

// GetByID retrieves a position by its ID.
func (r *PositionRepository) GetByID(ctx context.Context, id string) (*secondary.PositionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+positionColumns+" FROM positions WHERE id = ?",
		id,
	)

	record, err := scanPosition(row)
	if err == sql.ErrNoRows {
		return nil, hrerrors.NewNotFoundError("position", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get position: %w", err)
	}

	return record, nil
}

// List retrieves positions matching the given filters.
func (r *PositionRepository) List(ctx context.Context, filters secondary.PositionFilters) ([]*secondary.PositionRecord, error) {
	query := "SELECT " + positionColumns + " FROM positions WHERE 1=1"
	args := []any{}

	if filters.Active != nil {
		query += " AND active = ?"
		args = append(args, *filters.Active)
	}

	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var positions []*secondary.PositionRecord
	for rows.Next() {
		record, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	return positions, nil
}

// Update persists name, description, base salary and active flag.
func (r *PositionRepository) Update(ctx context.Context, position *secondary.PositionRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE positions SET name = ?, description = ?, base_salary = ?, active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		position.Name, nullString(position.Description), position.BaseSalary.String(), position.Active, position.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return hrerrors.NewNotFoundError("position", position.ID)
	}

	return nil
}

// GetNextID returns the next available position ID.
func (r *PositionRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM positions",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next position ID: %w", err)
	}

	return fmt.Sprintf("POS-%03d", maxID+1), nil
}

func scanPosition(s scanner) (*secondary.PositionRecord, error) {
	var (
		desc      sql.NullString
		salary    decimal.Decimal
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.PositionRecord{}
	if err := s.Scan(&record.ID, &record.Name, &desc, &salary, &record.Active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	record.Description = desc.String
	record.BaseSalary = salary
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// Ensure PositionRepository implements the interface
var _ secondary.PositionRepository = (*PositionRepository)(nil)
