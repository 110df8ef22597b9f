package app

import (
	"context"
	"fmt"

	hrerrors "github.com/example/hrdesk/internal/errors"
	"github.com/example/hrdesk/internal/ports/primary"
	"github.com/example/hrdesk/internal/ports/secondary"
)

// AuditLogServiceImpl implements the AuditLogService interface.
type AuditLogServiceImpl struct {
	logRepo secondary.AuditLogRepository
}

// NewAuditLogService creates a new AuditLogService with injected dependencies.
func NewAuditLogService(logRepo secondary.AuditLogRepository) *AuditLogServiceImpl {
	return &AuditLogServiceImpl{
		logRepo: logRepo,
	}
}

// ListLogs retrieves log entries matching the given filters.
func (s *AuditLogServiceImpl) ListLogs(ctx context.Context, filters primary.LogFilters) ([]*primary.LogEntry, error) {
	records, err := s.logRepo.List(ctx, secondary.AuditLogFilters{
		EntityType: filters.EntityType,
		EntityID:   filters.EntityID,
		ActorID:    filters.ActorID,
		Action:     filters.Action,
		RunID:      filters.RunID,
		Limit:      filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}

	entries := make([]*primary.LogEntry, len(records))
	for i, r := range records {
		entries[i] = recordToLogEntry(r)
	}
	return entries, nil
}

// GetLog retrieves a single log entry by ID.
func (s *AuditLogServiceImpl) GetLog(ctx context.Context, id string) (*primary.LogEntry, error) {
	record, err := s.logRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return recordToLogEntry(record), nil
}

// PruneLogs deletes log entries older than the specified number of days.
func (s *AuditLogServiceImpl) PruneLogs(ctx context.Context, olderThanDays int) (int, error) {
	if olderThanDays < 1 {
		return 0, hrerrors.NewValidationError("olderThanDays", olderThanDays, "must be at least 1")
	}
	return s.logRepo.PruneOlderThan(ctx, olderThanDays)
}

func recordToLogEntry(r *secondary.AuditLogRecord) *primary.LogEntry {
	return &primary.LogEntry{
		ID:         r.ID,
		Timestamp:  r.Timestamp,
		ActorID:    r.ActorID,
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		Action:     r.Action,
		FieldName:  r.FieldName,
		OldValue:   r.OldValue,
		NewValue:   r.NewValue,
		RunID:      r.RunID,
	}
}

// Ensure AuditLogServiceImpl implements the interface
var _ primary.AuditLogService = (*AuditLogServiceImpl)(nil)
