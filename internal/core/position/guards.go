// Package position contains the pure business logic for position administration.
package position

import (
	"fmt"
	"strings"

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

// CreatePositionContext provides context for position creation guards.
type CreatePositionContext struct {
	Name       string
	BaseSalary decimal.Decimal
}

// SalaryChangeContext provides context for base salary change guards.
type SalaryChangeContext struct {
	PositionID string
	NewSalary  decimal.Decimal
}

// SetActiveContext provides context for activation guards.
type SetActiveContext struct {
	PositionID    string
	CurrentActive bool
	WantActive    bool
}

// CanCreatePosition evaluates whether a position can be created.
// Rules:
// - Name must not be blank
// - Base salary must not be negative (zero means "not yet set")
func CanCreatePosition(ctx CreatePositionContext) GuardResult {
	if strings.TrimSpace(ctx.Name) == "" {
		return GuardResult{Allowed: false, Reason: "position name is required"}
	}
	if ctx.BaseSalary.IsNegative() {
		return GuardResult{Allowed: false, Reason: "base salary cannot be negative"}
	}
	return GuardResult{Allowed: true}
}

// CanChangeSalary evaluates whether a base salary can be committed.
// A zero salary is accepted and simply never propagated.
func CanChangeSalary(ctx SalaryChangeContext) GuardResult {
	if ctx.NewSalary.IsNegative() {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot set base salary of %s to %s: amount is negative", ctx.PositionID, ctx.NewSalary.String()),
		}
	}
	return GuardResult{Allowed: true}
}

// CanSetActive evaluates whether a position can be activated or deactivated.
func CanSetActive(ctx SetActiveContext) GuardResult {
	if ctx.CurrentActive == ctx.WantActive {
		state := "inactive"
		if ctx.WantActive {
			state = "active"
		}
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("position %s is already %s", ctx.PositionID, state)}
	}
	return GuardResult{Allowed: true}
}
