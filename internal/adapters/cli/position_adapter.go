package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/hrdesk/internal/ports/primary"
)

// PositionAdapter translates CLI operations to PositionService calls.
type PositionAdapter struct {
	service primary.PositionService
	out     io.Writer
}

// NewPositionAdapter creates a new PositionAdapter with the given service.
func NewPositionAdapter(service primary.PositionService, out io.Writer) *PositionAdapter {
	return &PositionAdapter{
		service: service,
		out:     out,
	}
}

// Create creates a new position.
func (a *PositionAdapter) Create(ctx context.Context, name, description, salary string) error {
	amount, err := ParseAmount(salary)
	if err != nil {
		return err
	}

	resp, err := a.service.CreatePosition(ctx, primary.CreatePositionRequest{
		Name:        name,
		Description: description,
		BaseSalary:  amount,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created position %s: %s (%s)\n", resp.PositionID, resp.Position.Name, formatAmount(resp.Position.BaseSalary))
	return nil
}

// List prints one page of positions.
func (a *PositionAdapter) List(ctx context.Context, filters primary.PositionFilters) error {
	page, err := a.service.ListPositions(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list positions: %w", err)
	}

	if page.Total == 0 {
		fmt.Fprintln(a.out, "No positions found")
		return nil
	}

	w := newTable(a.out)
	fmt.Fprintln(w, "ID\tNAME\tBASE SALARY\tSTATUS")
	for _, p := range page.Positions {
		status := "active"
		if !p.Active {
			status = "inactive"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, formatAmount(p.BaseSalary), status)
	}
	w.Flush()

	if page.TotalPages > 1 {
		fmt.Fprintf(a.out, "\nPage %d of %d (%d positions)\n", page.Page, page.TotalPages, page.Total)
	}
	return nil
}

// Show displays details for a single position.
func (a *PositionAdapter) Show(ctx context.Context, positionID string) (*primary.Position, error) {
	p, err := a.service.GetPosition(ctx, positionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get position: %w", err)
	}

	fmt.Fprintf(a.out, "\nPosition: %s\n", p.ID)
	fmt.Fprintf(a.out, "Name:     %s\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(a.out, "Description: %s\n", p.Description)
	}
	fmt.Fprintf(a.out, "Salary:   %s\n", formatAmount(p.BaseSalary))
	if p.Active {
		fmt.Fprintf(a.out, "Status:   %s\n", green.Sprint("active"))
	} else {
		fmt.Fprintf(a.out, "Status:   %s\n", yellow.Sprint("inactive"))
	}
	if p.UpdatedAt != "" {
		fmt.Fprintf(a.out, "Updated:  %s\n", p.UpdatedAt)
	}
	fmt.Fprintln(a.out)

	return p, nil
}

// SetSalary commits a new base salary and reports the propagation.
func (a *PositionAdapter) SetSalary(ctx context.Context, positionID, salary, actingUserID, date string) error {
	amount, err := ParseAmount(salary)
	if err != nil {
		return err
	}
	today, err := ParseDate(date)
	if err != nil {
		return err
	}

	resp, err := a.service.UpdatePositionSalary(ctx, primary.UpdatePositionSalaryRequest{
		PositionID:   positionID,
		NewSalary:    amount,
		ActingUserID: actingUserID,
		Today:        today,
	})
	if err != nil {
		return err
	}

	if resp.PreviousSalary.Equal(resp.Position.BaseSalary) {
		fmt.Fprintf(a.out, "✓ Position %s base salary unchanged (%s)\n", positionID, formatAmount(resp.Position.BaseSalary))
		return nil
	}
	fmt.Fprintf(a.out, "✓ Position %s base salary %s → %s\n", positionID, formatAmount(resp.PreviousSalary), formatAmount(resp.Position.BaseSalary))

	if resp.ReconcileError != nil {
		fmt.Fprintf(a.out, "%s Salary saved, but employee histories were not updated\n", red.Sprint("✗"))
		return fmt.Errorf("reconciliation aborted: %w", resp.ReconcileError)
	}
	return printOutcome(a.out, resp.Reconciliation)
}

// Reconcile re-runs propagation for a position. An empty salary uses the
// position's current base salary.
func (a *PositionAdapter) Reconcile(ctx context.Context, positionID, salary, actingUserID, date string) error {
	today, err := ParseDate(date)
	if err != nil {
		return err
	}

	req := primary.ReconcileRequest{
		PositionID:   positionID,
		ActingUserID: actingUserID,
		Today:        today,
	}
	if salary == "" {
		p, err := a.service.GetPosition(ctx, positionID)
		if err != nil {
			return err
		}
		req.NewSalary = p.BaseSalary
	} else {
		if req.NewSalary, err = ParseAmount(salary); err != nil {
			return err
		}
	}

	outcome, err := a.service.ReconcilePosition(ctx, req)
	if err != nil {
		return err
	}
	return printOutcome(a.out, outcome)
}

// Activate reactivates a position.
func (a *PositionAdapter) Activate(ctx context.Context, positionID string) error {
	if err := a.service.SetPositionActive(ctx, positionID, true); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Position %s activated\n", positionID)
	return nil
}

// Deactivate soft-deletes a position.
func (a *PositionAdapter) Deactivate(ctx context.Context, positionID string) error {
	if err := a.service.SetPositionActive(ctx, positionID, false); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Position %s deactivated\n", positionID)
	return nil
}
