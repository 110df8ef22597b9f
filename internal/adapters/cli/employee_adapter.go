package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/hrdesk/internal/ports/primary"
)

// EmployeeAdapter translates CLI operations to EmployeeService calls.
type EmployeeAdapter struct {
	service primary.EmployeeService
	history primary.SalaryHistoryService
	out     io.Writer
}

// NewEmployeeAdapter creates a new EmployeeAdapter.
func NewEmployeeAdapter(service primary.EmployeeService, history primary.SalaryHistoryService, out io.Writer) *EmployeeAdapter {
	return &EmployeeAdapter{
		service: service,
		history: history,
		out:     out,
	}
}

// Create creates a new employee.
func (a *EmployeeAdapter) Create(ctx context.Context, firstName, lastName string) error {
	resp, err := a.service.CreateEmployee(ctx, primary.CreateEmployeeRequest{
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created employee %s: %s\n", resp.EmployeeID, resp.Employee.FullName())
	return nil
}

// List lists employees, optionally restricted to one position.
func (a *EmployeeAdapter) List(ctx context.Context, positionID string, includeInactive bool) error {
	filters := primary.EmployeeFilters{PositionID: positionID}
	if !includeInactive {
		active := true
		filters.Active = &active
	}

	employees, err := a.service.ListEmployees(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	if len(employees) == 0 {
		fmt.Fprintln(a.out, "No employees found")
		return nil
	}

	w := newTable(a.out)
	fmt.Fprintln(w, "ID\tNAME\tPOSITION\tSTATUS")
	for _, e := range employees {
		pos := e.PositionID
		if pos == "" {
			pos = "-"
		}
		status := "active"
		if !e.Active {
			status = "inactive"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.FullName(), pos, status)
	}
	w.Flush()
	return nil
}

// Show displays an employee and their open salary records.
func (a *EmployeeAdapter) Show(ctx context.Context, employeeID string) error {
	e, err := a.service.GetEmployee(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to get employee: %w", err)
	}

	fmt.Fprintf(a.out, "\nEmployee: %s\n", e.ID)
	fmt.Fprintf(a.out, "Name:     %s\n", e.FullName())
	if e.PositionID != "" {
		fmt.Fprintf(a.out, "Position: %s\n", e.PositionID)
	} else {
		fmt.Fprintln(a.out, "Position: (unassigned)")
	}
	if e.Active {
		fmt.Fprintf(a.out, "Status:   %s\n", green.Sprint("active"))
	} else {
		fmt.Fprintf(a.out, "Status:   %s\n", yellow.Sprint("inactive"))
	}

	open, err := a.history.OpenRecords(ctx, e.ID)
	if err != nil {
		return err
	}
	if len(open) > 0 {
		fmt.Fprintln(a.out, "\nCurrent salary:")
		for _, r := range open {
			fmt.Fprintf(a.out, "  %s  %s  %s since %s\n", r.ID, r.PositionID, formatAmount(r.Salary), r.StartDate)
		}
	}
	fmt.Fprintln(a.out)
	return nil
}

// Assign moves an employee onto a position.
func (a *EmployeeAdapter) Assign(ctx context.Context, employeeID, positionID, actingUserID, date string) error {
	today, err := ParseDate(date)
	if err != nil {
		return err
	}

	resp, err := a.service.AssignPosition(ctx, primary.AssignPositionRequest{
		EmployeeID:   employeeID,
		PositionID:   positionID,
		ActingUserID: actingUserID,
		Today:        today,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Employee %s assigned to %s\n", employeeID, positionID)
	for _, id := range resp.ClosedRecords {
		fmt.Fprintf(a.out, "  closed %s\n", id)
	}
	if resp.Created != nil {
		fmt.Fprintf(a.out, "  opened %s at %s from %s\n", resp.Created.ID, formatAmount(resp.Created.Salary), resp.Created.StartDate)
	} else {
		fmt.Fprintf(a.out, "  %s\n", yellow.Sprint("salary record already current, nothing opened"))
	}
	return nil
}

// SetActive activates or deactivates an employee.
func (a *EmployeeAdapter) SetActive(ctx context.Context, employeeID string, active bool) error {
	if err := a.service.SetEmployeeActive(ctx, employeeID, active); err != nil {
		return err
	}
	if active {
		fmt.Fprintf(a.out, "✓ Employee %s activated\n", employeeID)
	} else {
		fmt.Fprintf(a.out, "✓ Employee %s deactivated\n", employeeID)
	}
	return nil
}
