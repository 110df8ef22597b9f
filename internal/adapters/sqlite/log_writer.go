package sqlite

import (
	"context"
	"fmt"

	"github.com/example/hrdesk/internal/ctxutil"
	"github.com/example/hrdesk/internal/ports/secondary"
)

const (
	actionCreate = "create"
	actionUpdate = "update"
	actionDelete = "delete"

	// reconcileField names the pseudo-field a run summary is written under.
	reconcileField = "salary_history"
)

// LogWriterAdapter implements secondary.LogWriter on the audit log table.
// Every entry carries the acting user and, inside a salary change, the run ID.
type LogWriterAdapter struct {
	logRepo secondary.AuditLogRepository
}

// NewLogWriterAdapter creates a new LogWriterAdapter.
func NewLogWriterAdapter(logRepo secondary.AuditLogRepository) *LogWriterAdapter {
	return &LogWriterAdapter{logRepo: logRepo}
}

func (w *LogWriterAdapter) LogCreate(ctx context.Context, entityType, entityID string) error {
	return w.write(ctx, &secondary.AuditLogRecord{EntityType: entityType, EntityID: entityID, Action: actionCreate})
}

func (w *LogWriterAdapter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	return w.write(ctx, &secondary.AuditLogRecord{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     actionUpdate,
		FieldName:  fieldName,
		OldValue:   oldValue,
		NewValue:   newValue,
	})
}

// LogDelete records a soft delete; hrdesk never removes rows.
func (w *LogWriterAdapter) LogDelete(ctx context.Context, entityType, entityID string) error {
	return w.write(ctx, &secondary.AuditLogRecord{EntityType: entityType, EntityID: entityID, Action: actionDelete})
}

// LogReconcile stores a run summary as an update of the position's salary history.
func (w *LogWriterAdapter) LogReconcile(ctx context.Context, positionID string, updated, skipped, failed int) error {
	return w.write(ctx, &secondary.AuditLogRecord{
		EntityType: "position",
		EntityID:   positionID,
		Action:     actionUpdate,
		FieldName:  reconcileField,
		NewValue:   fmt.Sprintf("updated=%d skipped=%d failed=%d", updated, skipped, failed),
	})
}

func (w *LogWriterAdapter) write(ctx context.Context, record *secondary.AuditLogRecord) error {
	id, err := w.logRepo.GetNextID(ctx)
	if err != nil {
		return err
	}

	record.ID = id
	record.ActorID = ctxutil.ActorFromContext(ctx)
	record.RunID = ctxutil.RunIDFromContext(ctx)
	return w.logRepo.Create(ctx, record)
}

var _ secondary.LogWriter = (*LogWriterAdapter)(nil)
