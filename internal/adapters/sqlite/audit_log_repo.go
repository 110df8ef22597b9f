package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	hrerrors "github.com/example/hrdesk/internal/errors"
	"github.com/example/hrdesk/internal/ports/secondary"
)

// AuditLogRepository implements secondary.AuditLogRepository with SQLite.
type AuditLogRepository struct {
	db *sql.DB
}

// NewAuditLogRepository creates a new SQLite audit log repository.
func NewAuditLogRepository(db *sql.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Create persists a new audit log entry.
func (r *AuditLogRepository) Create(ctx context.Context, log *secondary.AuditLogRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_logs (id, actor_id, entity_type, entity_id, action, field_name, old_value, new_value, run_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		log.ID,
		nullString(log.ActorID),
		log.EntityType,
		log.EntityID,
		log.Action,
		nullString(log.FieldName),
		nullString(log.OldValue),
		nullString(log.NewValue),
		nullString(log.RunID),
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	return nil
}

// GetByID retrieves a log entry by its ID.
func (r *AuditLogRepository) GetByID(ctx context.Context, id string) (*secondary.AuditLogRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, timestamp, actor_id, entity_type, entity_id, action, field_name, old_value, new_value, run_id, created_at FROM audit_logs WHERE id = ?`,
		id,
	)

	record, err := scanAuditLog(row)
	if err == sql.ErrNoRows {
		return nil, hrerrors.NewNotFoundError("audit log", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log: %w", err)
	}

	return record, nil
}

// List retrieves log entries matching the given filters.
func (r *AuditLogRepository) List(ctx context.Context, filters secondary.AuditLogFilters) ([]*secondary.AuditLogRecord, error) {
	query := `SELECT id, timestamp, actor_id, entity_type, entity_id, action, field_name, old_value, new_value, run_id, created_at FROM audit_logs WHERE 1=1`
	args := []any{}

	if filters.EntityType != "" {
		query += " AND entity_type = ?"
		args = append(args, filters.EntityType)
	}

	if filters.EntityID != "" {
		query += " AND entity_id = ?"
		args = append(args, filters.EntityID)
	}

	if filters.ActorID != "" {
		query += " AND actor_id = ?"
		args = append(args, filters.ActorID)
	}

	if filters.Action != "" {
		query += " AND action = ?"
		args = append(args, filters.Action)
	}

	if filters.RunID != "" {
		query += " AND run_id = ?"
		args = append(args, filters.RunID)
	}

	query += " ORDER BY timestamp DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	var logs []*secondary.AuditLogRecord
	for rows.Next() {
		record, err := scanAuditLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		logs = append(logs, record)
	}

	return logs, rows.Err()
}

// GetNextID returns the next available log ID.
func (r *AuditLogRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	prefixLen := len("LOG-") + 1
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM audit_logs", prefixLen),
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next audit log ID: %w", err)
	}

	return fmt.Sprintf("LOG-%04d", maxID+1), nil
}

// PruneOlderThan deletes log entries older than the given number of days.
func (r *AuditLogRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM audit_logs WHERE timestamp < datetime('now', ?)",
		fmt.Sprintf("-%d days", days),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune audit logs: %w", err)
	}

	count, _ := result.RowsAffected()
	return int(count), nil
}

func scanAuditLog(s scanner) (*secondary.AuditLogRecord, error) {
	var (
		actorID   sql.NullString
		fieldName sql.NullString
		oldValue  sql.NullString
		newValue  sql.NullString
		runID     sql.NullString
		timestamp time.Time
		createdAt time.Time
	)

	record := &secondary.AuditLogRecord{}
	err := s.Scan(&record.ID,
		&timestamp,
		&actorID,
		&record.EntityType,
		&record.EntityID,
		&record.Action,
		&fieldName,
		&oldValue,
		&newValue,
		&runID,
		&createdAt)
	if err != nil {
		return nil, err
	}

	record.Timestamp = timestamp.Format(time.RFC3339)
	record.ActorID = actorID.String
	record.FieldName = fieldName.String
	record.OldValue = oldValue.String
	record.NewValue = newValue.String
	record.RunID = runID.String
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

// Ensure AuditLogRepository implements the interface
var _ secondary.AuditLogRepository = (*AuditLogRepository)(nil)
