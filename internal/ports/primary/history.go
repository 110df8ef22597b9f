package primary

import (
	"context"

	"github.com/shopspring/decimal"
)

// SalaryHistoryService defines the primary port for salary history queries.
type SalaryHistoryService interface {
	// ListHistory lists records newest first (start date, then ID).
	ListHistory(ctx context.Context, filters HistoryFilters) ([]*SalaryHistoryEntry, error)

	// OpenRecords returns the employee's records that are still in effect.
	OpenRecords(ctx context.Context, employeeID string) ([]*SalaryHistoryEntry, error)
}

// SalaryHistoryEntry represents a salary history record at the port boundary.
type SalaryHistoryEntry struct {
	ID         string
	EmployeeID string
	PositionID string
	StartDate  string
	EndDate    string // empty while in effect
	Salary     decimal.Decimal
	Note       string
	Active     bool
	UserID     string
}

// IsOpen reports whether the record is still in effect.
func (e *SalaryHistoryEntry) IsOpen() bool {
	return e.Active && e.EndDate == ""
}

// HistoryFilters contains filter options for querying salary history.
type HistoryFilters struct {
	EmployeeID string
	PositionID string
	OpenOnly   bool
}
