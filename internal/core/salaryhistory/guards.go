package salaryhistory

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

// ReconcileContext provides context for reconciliation guards.
type ReconcileContext struct {
	PositionID string
	NewSalary  decimal.Decimal
}

// SalaryChangeContext provides context for deciding whether a position
// update should trigger a reconciliation.
type SalaryChangeContext struct {
	PreviousSalary decimal.Decimal
	NewSalary      decimal.Decimal
}

// CanReconcile evaluates whether a reconciliation has anything to do.
// Rules:
// - Position ID must be set
// - New salary must be positive (a zero value counts as missing)
func CanReconcile(ctx ReconcileContext) GuardResult {
	if ctx.PositionID == "" {
		return GuardResult{Allowed: false, Reason: "position ID is required"}
	}
	if !ctx.NewSalary.IsPositive() {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("salary %s is not a positive amount", ctx.NewSalary.String()),
		}
	}
	return GuardResult{Allowed: true}
}

// ShouldPropagateSalaryChange decides whether a committed position update
// needs to be fanned out to employee histories.
// Rules:
// - Salary must have changed
// - New salary must be positive
func ShouldPropagateSalaryChange(ctx SalaryChangeContext) GuardResult {
	if ctx.PreviousSalary.Equal(ctx.NewSalary) {
		return GuardResult{Allowed: false, Reason: "salary did not change"}
	}
	if !ctx.NewSalary.IsPositive() {
		return GuardResult{Allowed: false, Reason: "new salary is zero or invalid"}
	}
	return GuardResult{Allowed: true}
}
