package primary

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PositionService defines the primary port for position administration.
type PositionService interface {
	// CreatePosition creates a new active position.
	CreatePosition(ctx context.Context, req CreatePositionRequest) (*CreatePositionResponse, error)

	// GetPosition retrieves a position by ID.
	GetPosition(ctx context.Context, positionID string) (*Position, error)

	// ListPositions returns one page of positions sorted by name.
	ListPositions(ctx context.Context, filters PositionFilters) (*PositionPage, error)

	// UpdatePositionSalary commits a new base salary and, when it changed,
	// propagates it to employee salary histories. The committed salary is
	// never rolled back; propagation problems are reported in the response.
	UpdatePositionSalary(ctx context.Context, req UpdatePositionSalaryRequest) (*UpdatePositionSalaryResponse, error)

	// ReconcilePosition re-runs propagation for an existing position under
	// the same per-position lock as salary changes.
	ReconcilePosition(ctx context.Context, req ReconcileRequest) (*ReconcileOutcome, error)

	// SetPositionActive deactivates (soft delete) or reactivates a position.
	SetPositionActive(ctx context.Context, positionID string, active bool) error
}

// CreatePositionRequest contains parameters for creating a position.
type CreatePositionRequest struct {
	Name        string `validate:"required,max=100"`
	Description string `validate:"max=500"`
	BaseSalary  decimal.Decimal
}

// CreatePositionResponse contains the result of creating a position.
type CreatePositionResponse struct {
	PositionID string
	Position   *Position
}

// UpdatePositionSalaryRequest contains parameters for a salary change.
type UpdatePositionSalaryRequest struct {
	PositionID   string `validate:"required"`
	NewSalary    decimal.Decimal
	ActingUserID string `validate:"required"`
	Today        time.Time
}

// UpdatePositionSalaryResponse contains the committed position and what
// happened to the employee histories.
type UpdatePositionSalaryResponse struct {
	Position       *Position
	PreviousSalary decimal.Decimal

	// Reconciliation is nil when the salary did not change or is not positive.
	Reconciliation *ReconcileOutcome

	// ReconcileError is set when propagation aborted (read failure, timeout).
	ReconcileError error
}

// Position represents a position entity at the port boundary.
type Position struct {
	ID          string
	Name        string
	Description string
	BaseSalary  decimal.Decimal
	Active      bool
	CreatedAt   string
	UpdatedAt   string
}

// PositionFilters contains filter, search and paging options for listing.
type PositionFilters struct {
	Search          string // case-insensitive match on name, description or salary
	IncludeInactive bool
	Page            int // 1-based; clamped to the available pages
	PageSize        int // values below 1 are treated as 1
}

// PositionPage is one page of a position listing.
type PositionPage struct {
	Positions  []*Position
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}
