// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
// Implementations are assumed remote and fallible, with no transaction spanning calls.
package secondary

import (
	"context"

	"github.com/shopspring/decimal"
)

// PositionRepository defines the secondary port for position persistence.
type PositionRepository interface {
	// Create persists a new position.
	Create(ctx context.Context, position *PositionRecord) error

	// GetByID retrieves a position by its ID.
	GetByID(ctx context.Context, id string) (*PositionRecord, error)

	// List retrieves positions matching the given filters.
	List(ctx context.Context, filters PositionFilters) ([]*PositionRecord, error)

	// Update persists name, description, base salary and active flag.
	Update(ctx context.Context, position *PositionRecord) error

	// GetNextID returns the next available position ID.
	GetNextID(ctx context.Context) (string, error)
}

// PositionRecord represents a position as stored in persistence.
type PositionRecord struct {
	ID          string
	Name        string
	Description string // Empty string means null
	BaseSalary  decimal.Decimal
	Active      bool
	CreatedAt   string
	UpdatedAt   string
}

// PositionFilters contains filter options for querying positions.
type PositionFilters struct {
	Active *bool
}

// EmployeeRepository defines the secondary port for employee persistence.
type EmployeeRepository interface {
	// Create persists a new employee.
	Create(ctx context.Context, employee *EmployeeRecord) error

	// GetByID retrieves an employee by its ID.
	GetByID(ctx context.Context, id string) (*EmployeeRecord, error)

	// List retrieves employees matching the given filters.
	// With zero-value filters it returns the full roster.
	List(ctx context.Context, filters EmployeeFilters) ([]*EmployeeRecord, error)

	// Update persists names, current position and active flag.
	Update(ctx context.Context, employee *EmployeeRecord) error

	// GetNextID returns the next available employee ID.
	GetNextID(ctx context.Context) (string, error)
}

// EmployeeRecord represents an employee as stored in persistence.
type EmployeeRecord struct {
	ID         string
	FirstName  string
	LastName   string
	PositionID string // Empty string means null
	Active     bool
	CreatedAt  string
	UpdatedAt  string
}

// EmployeeFilters contains filter options for querying employees.
type EmployeeFilters struct {
	PositionID string
	Active     *bool
}

// SalaryHistoryRepository defines the secondary port for salary history persistence.
// Records are never deleted; closing a record is an Update that sets EndDate.
type SalaryHistoryRepository interface {
	// Create persists a new record, assigning its ID when empty, and returns
	// the stored record.
	Create(ctx context.Context, record *SalaryHistoryRecord) (*SalaryHistoryRecord, error)

	// GetByID retrieves a record by its ID.
	GetByID(ctx context.Context, id string) (*SalaryHistoryRecord, error)

	// List retrieves records matching the given filters, newest start date first.
	// With zero-value filters it returns the full roster.
	List(ctx context.Context, filters SalaryHistoryFilters) ([]*SalaryHistoryRecord, error)

	// Update replaces every mutable field of the record.
	Update(ctx context.Context, record *SalaryHistoryRecord) error

	// GetNextID returns the next available record ID.
	GetNextID(ctx context.Context) (string, error)
}

// SalaryHistoryRecord represents a salary history entry as stored in persistence.
type SalaryHistoryRecord struct {
	ID         string
	EmployeeID string
	PositionID string
	StartDate  string // YYYY-MM-DD
	EndDate    string // Empty string means null, i.e. still in effect
	Salary     decimal.Decimal
	Note       string
	Active     bool
	UserID     string
	CreatedAt  string
	UpdatedAt  string
}

// SalaryHistoryFilters contains filter options for querying salary history.
type SalaryHistoryFilters struct {
	EmployeeID string
	PositionID string
	OpenOnly   bool
}

// AuditLogRepository defines the secondary port for audit log persistence.
// Logs are immutable - no Update operations, but old entries can be pruned.
type AuditLogRepository interface {
	// Create persists a new audit log entry.
	Create(ctx context.Context, log *AuditLogRecord) error

	// GetByID retrieves a log entry by its ID.
	GetByID(ctx context.Context, id string) (*AuditLogRecord, error)

	// List retrieves log entries matching the given filters.
	List(ctx context.Context, filters AuditLogFilters) ([]*AuditLogRecord, error)

	// GetNextID returns the next available log ID.
	GetNextID(ctx context.Context) (string, error)

	// PruneOlderThan deletes log entries older than the given number of days.
	// Returns the number of deleted entries.
	PruneOlderThan(ctx context.Context, days int) (int, error)
}

// AuditLogRecord represents an audit log entry as stored in persistence.
type AuditLogRecord struct {
	ID         string
	Timestamp  string
	ActorID    string // Empty string means null
	EntityType string
	EntityID   string
	Action     string // 'create', 'update', 'delete'
	FieldName  string // Empty string means null - for updates only
	OldValue   string // Empty string means null
	NewValue   string // Empty string means null
	RunID      string // reconciliation run the change belongs to, empty if none
	CreatedAt  string
}

// AuditLogFilters contains filter options for querying logs.
type AuditLogFilters struct {
	EntityType string
	EntityID   string
	ActorID    string
	Action     string
	RunID      string
	Limit      int
}
