package primary

import "context"

// AuditLogService defines the primary port for the audit trail.
type AuditLogService interface {
	// ListLogs retrieves log entries matching the given filters.
	ListLogs(ctx context.Context, filters LogFilters) ([]*LogEntry, error)

	// GetLog retrieves a single log entry by ID.
	GetLog(ctx context.Context, id string) (*LogEntry, error)

	// PruneLogs deletes log entries older than the specified number of days.
	PruneLogs(ctx context.Context, olderThanDays int) (int, error)
}

// LogEntry represents an audit log entry at the port boundary.
type LogEntry struct {
	ID         string
	Timestamp  string
	ActorID    string
	EntityType string
	EntityID   string
	Action     string // 'create', 'update', 'delete'
	FieldName  string // For updates only
	OldValue   string
	NewValue   string
	RunID      string // set on entries written by a salary change and its reconciliation
}

// LogFilters contains filter options for querying logs.
type LogFilters struct {
	EntityType string
	EntityID   string
	ActorID    string
	Action     string
	RunID      string
	Limit      int
}
