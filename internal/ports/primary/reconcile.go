package primary

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalaryReconciler defines the primary port for propagating a position
// salary change into employee salary histories.
type SalaryReconciler interface {
	// Reconcile closes each affected employee's open history record and opens
	// a new one at the new salary. Per-employee write failures are reported
	// in the outcome; a returned error means nothing was written.
	Reconcile(ctx context.Context, req ReconcileRequest) (*ReconcileOutcome, error)
}

// ReconcileRequest contains parameters for a reconciliation run.
type ReconcileRequest struct {
	PositionID   string
	NewSalary    decimal.Decimal
	ActingUserID string
	Today        time.Time
	RunID        string // generated when empty
}

// NoOpReason explains why a run wrote nothing.
type NoOpReason string

const (
	NoOpNone            NoOpReason = ""
	NoOpMissingPosition NoOpReason = "missing_position"
	NoOpInvalidSalary   NoOpReason = "invalid_salary"
	NoOpNoEmployees     NoOpReason = "no_employees"
)

// ReconcileOutcome summarizes a reconciliation run.
type ReconcileOutcome struct {
	RunID      string
	PositionID string
	Today      string
	NoOpReason NoOpReason

	Considered int
	Updated    int
	Skipped    int

	UpdatedEmployees []string
	SkippedEmployees []string
	Failures         []EmployeeFailure // ordered by employee ID
}

// IsNoOp reports whether the run ended before touching any employee.
func (o *ReconcileOutcome) IsNoOp() bool {
	return o.NoOpReason != NoOpNone
}

// HasFailures reports whether any employee could not be updated.
func (o *ReconcileOutcome) HasFailures() bool {
	return len(o.Failures) > 0
}

// EmployeeFailure records why one employee's history could not be updated.
type EmployeeFailure struct {
	EmployeeID string
	Operation  string // "close" or "create"
	RecordID   string // record being closed, empty for create
	Err        error
}
