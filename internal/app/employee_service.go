package app

import (
	"context"
	"fmt"
	"time"

	coreemployee "github.com/example/hrdesk/internal/core/employee"
	"github.com/example/hrdesk/internal/core/salaryhistory"
	"github.com/example/hrdesk/internal/logging"
	"github.com/example/hrdesk/internal/ports/primary"
	"github.com/example/hrdesk/internal/ports/secondary"
)

// EmployeeServiceImpl implements the EmployeeService interface.
type EmployeeServiceImpl struct {
	employeeRepo secondary.EmployeeRepository
	positionRepo secondary.PositionRepository
	historyRepo  secondary.SalaryHistoryRepository
	executor     EffectExecutor
	logWriter    secondary.LogWriter
	locks        *PositionLocks
}

// NewEmployeeService creates a new EmployeeService with injected dependencies.
func NewEmployeeService(
	employeeRepo secondary.EmployeeRepository,
	positionRepo secondary.PositionRepository,
	historyRepo secondary.SalaryHistoryRepository,
	executor EffectExecutor,
	logWriter secondary.LogWriter,
	locks *PositionLocks,
) *EmployeeServiceImpl {
	if locks == nil {
		locks = NewPositionLocks()
	}
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		positionRepo: positionRepo,
		historyRepo:  historyRepo,
		executor:     executor,
		logWriter:    logWriter,
		locks:        locks,
	}
}

// CreateEmployee creates a new active employee without a position.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req primary.CreateEmployeeRequest) (*primary.CreateEmployeeResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	nextID, err := s.employeeRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate employee ID: %w", err)
	}

	record := &secondary.EmployeeRecord{
		ID:        nextID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Active:    true,
	}
	if err := s.employeeRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	s.audit(ctx, func() error { return s.logWriter.LogCreate(ctx, "employee", nextID) })

	created, err := s.employeeRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created employee: %w", err)
	}

	return &primary.CreateEmployeeResponse{
		EmployeeID: nextID,
		Employee:   recordToEmployee(created),
	}, nil
}

// GetEmployee retrieves an employee by ID.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, employeeID string) (*primary.Employee, error) {
	record, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return recordToEmployee(record), nil
}

// ListEmployees lists employees with optional filters.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filters primary.EmployeeFilters) ([]*primary.Employee, error) {
	records, err := s.employeeRepo.List(ctx, secondary.EmployeeFilters{
		PositionID: filters.PositionID,
		Active:     filters.Active,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	employees := make([]*primary.Employee, len(records))
	for i, r := range records {
		employees[i] = recordToEmployee(r)
	}
	return employees, nil
}

// SetEmployeeActive deactivates or reactivates an employee.
// Open salary records are left alone; inactive employees are simply not
// picked up by later salary changes.
func (s *EmployeeServiceImpl) SetEmployeeActive(ctx context.Context, employeeID string, active bool) error {
	record, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if record.Active == active {
		return nil
	}

	old := record.Active
	record.Active = active
	if err := s.employeeRepo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}

	s.audit(ctx, func() error {
		return s.logWriter.LogUpdate(ctx, "employee", employeeID, "active", fmt.Sprint(old), fmt.Sprint(active))
	})
	return nil
}

// AssignPosition moves an employee onto a position at its base salary.
func (s *EmployeeServiceImpl) AssignPosition(ctx context.Context, req primary.AssignPositionRequest) (*primary.AssignPositionResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	emp, unlock, err := s.lockAssignment(ctx, req.EmployeeID, req.PositionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	pos, err := s.positionRepo.GetByID(ctx, req.PositionID)
	if err != nil {
		return nil, err
	}

	guard := coreemployee.CanAssignPosition(coreemployee.AssignContext{
		EmployeeID:     emp.ID,
		EmployeeActive: emp.Active,
		PositionID:     pos.ID,
		PositionActive: pos.Active,
		BaseSalary:     pos.BaseSalary,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	records, err := s.historyRepo.List(ctx, secondary.SalaryHistoryFilters{EmployeeID: emp.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to load salary history: %w", err)
	}
	history := make([]salaryhistory.Record, len(records))
	for i, r := range records {
		history[i] = historyRecordToCore(r)
	}

	today := req.Today
	if today.IsZero() {
		today = time.Now()
	}

	plan := coreemployee.PlanAssignment(emp.PositionID, salaryhistory.AssignmentPlanInput{
		EmployeeID:   emp.ID,
		PositionID:   pos.ID,
		Salary:       pos.BaseSalary,
		ActingUserID: req.ActingUserID,
		Today:        today,
		History:      history,
	})

	if err := s.executor.Execute(ctx, plan.Effects()); err != nil {
		return nil, fmt.Errorf("failed to assign %s to %s: %w", emp.ID, pos.ID, err)
	}

	if plan.Change != nil {
		s.audit(ctx, func() error {
			return s.logWriter.LogUpdate(ctx, "employee", emp.ID, "position_id", plan.Change.OldPositionID, plan.Change.NewPositionID)
		})
	}

	resp := &primary.AssignPositionResponse{}
	for _, c := range plan.History.Closes {
		resp.ClosedRecords = append(resp.ClosedRecords, c.ID)
	}

	updated, err := s.employeeRepo.GetByID(ctx, emp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assigned employee: %w", err)
	}
	resp.Employee = recordToEmployee(updated)

	if plan.History.Create != nil {
		open, err := s.historyRepo.List(ctx, secondary.SalaryHistoryFilters{
			EmployeeID: emp.ID,
			PositionID: pos.ID,
			OpenOnly:   true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch new salary record: %w", err)
		}
		if len(open) > 0 {
			resp.Created = recordToHistoryEntry(open[0])
		}
	}

	return resp, nil
}

// lockAssignment locks the employee's current position and the target
// position, then returns the employee as read under those locks. The current
// position can only change while its lock is held, so a mismatch means a
// concurrent assignment won and the locks are retaken.
func (s *EmployeeServiceImpl) lockAssignment(ctx context.Context, employeeID, positionID string) (*secondary.EmployeeRecord, func(), error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, nil, err
	}
	for {
		heldFrom := emp.PositionID
		unlock := s.locks.LockAll(heldFrom, positionID)

		emp, err = s.employeeRepo.GetByID(ctx, employeeID)
		if err != nil {
			unlock()
			return nil, nil, err
		}
		if emp.PositionID == heldFrom {
			return emp, unlock, nil
		}
		unlock()

		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
	}
}

// audit writes an audit entry; failures are logged and otherwise ignored.
func (s *EmployeeServiceImpl) audit(ctx context.Context, write func() error) {
	if s.logWriter == nil {
		return
	}
	if err := write(); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to write audit log")
	}
}

// Helper methods

func recordToEmployee(r *secondary.EmployeeRecord) *primary.Employee {
	return &primary.Employee{
		ID:         r.ID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		PositionID: r.PositionID,
		Active:     r.Active,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// Ensure EmployeeServiceImpl implements the interface
var _ primary.EmployeeService = (*EmployeeServiceImpl)(nil)
