// Package employee contains the pure business logic for the employee directory.
package employee

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// AssignContext provides context for position assignment guards.
type AssignContext struct {
	EmployeeID     string
	EmployeeActive bool
	PositionID     string
	PositionActive bool
	BaseSalary     decimal.Decimal
}

// CanAssignPosition evaluates whether an employee can be moved onto a position.
// Rules:
// - Employee must be active
// - Position must be active
// - Position must have a positive base salary to open a history record at
func CanAssignPosition(ctx AssignContext) GuardResult {
	if !ctx.EmployeeActive {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot assign inactive employee %s. Reactivate first with: hrdesk employee activate %s", ctx.EmployeeID, ctx.EmployeeID),
		}
	}
	if !ctx.PositionActive {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot assign to inactive position %s", ctx.PositionID),
		}
	}
	if !ctx.BaseSalary.IsPositive() {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("position %s has no base salary. Set one with: hrdesk position set-salary %s <amount>", ctx.PositionID, ctx.PositionID),
		}
	}
	return GuardResult{Allowed: true}
}
