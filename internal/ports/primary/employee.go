package primary

import (
	"context"
	"time"
)

// EmployeeService defines the primary port for the employee directory.
type EmployeeService interface {
	// CreateEmployee creates a new active employee without a position.
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*CreateEmployeeResponse, error)

	// GetEmployee retrieves an employee by ID.
	GetEmployee(ctx context.Context, employeeID string) (*Employee, error)

	// ListEmployees lists employees with optional filters.
	ListEmployees(ctx context.Context, filters EmployeeFilters) ([]*Employee, error)

	// SetEmployeeActive deactivates or reactivates an employee.
	SetEmployeeActive(ctx context.Context, employeeID string, active bool) error

	// AssignPosition moves an employee onto a position at its base salary,
	// closing the employee's open salary history records.
	AssignPosition(ctx context.Context, req AssignPositionRequest) (*AssignPositionResponse, error)
}

// CreateEmployeeRequest contains parameters for creating an employee.
type CreateEmployeeRequest struct {
	FirstName string `validate:"required,max=80"`
	LastName  string `validate:"required,max=80"`
}

// CreateEmployeeResponse contains the result of creating an employee.
type CreateEmployeeResponse struct {
	EmployeeID string
	Employee   *Employee
}

// AssignPositionRequest contains parameters for assigning a position.
type AssignPositionRequest struct {
	EmployeeID   string `validate:"required"`
	PositionID   string `validate:"required"`
	ActingUserID string `validate:"required"`
	Today        time.Time
}

// AssignPositionResponse describes the history writes an assignment made.
type AssignPositionResponse struct {
	Employee      *Employee
	ClosedRecords []string
	Created       *SalaryHistoryEntry // nil when an identical record already started today
}

// Employee represents an employee entity at the port boundary.
type Employee struct {
	ID         string
	FirstName  string
	LastName   string
	PositionID string // empty when unassigned
	Active     bool
	CreatedAt  string
	UpdatedAt  string
}

// FullName returns "First Last".
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// EmployeeFilters contains filter options for querying employees.
type EmployeeFilters struct {
	PositionID string
	Active     *bool
}
