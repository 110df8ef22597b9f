package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/hrdesk/internal/core/salaryhistory"
	hrerrors "github.com/example/hrdesk/internal/errors"
	"github.com/example/hrdesk/internal/ports/primary"
	"github.com/example/hrdesk/internal/ports/secondary"
)

type employeeFixture struct {
	svc       *EmployeeServiceImpl
	employees *mockEmployeeRepository
	positions *mockPositionRepository
	history   *mockSalaryHistoryRepository
	logWriter *mockLogWriter
}

func newEmployeeFixture() *employeeFixture {
	f := &employeeFixture{
		employees: newMockEmployeeRepository(),
		positions: newMockPositionRepository(),
		history:   newMockSalaryHistoryRepository(),
		logWriter: &mockLogWriter{},
	}
	f.svc = NewEmployeeService(
		f.employees,
		f.positions,
		f.history,
		NewEffectExecutor(f.history, f.employees),
		f.logWriter,
		NewPositionLocks(),
	)
	return f
}

func assignReq(employeeID, positionID, today string) primary.AssignPositionRequest {
	return primary.AssignPositionRequest{
		EmployeeID:   employeeID,
		PositionID:   positionID,
		ActingUserID: "USR-001",
		Today:        day(today),
	}
}

func TestCreateEmployee(t *testing.T) {
	f := newEmployeeFixture()

	resp, err := f.svc.CreateEmployee(context.Background(), primary.CreateEmployeeRequest{FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)

	assert.Equal(t, "EMP-001", resp.EmployeeID)
	assert.Equal(t, "Ada Lovelace", resp.Employee.FullName())
	assert.True(t, resp.Employee.Active)
	assert.Empty(t, resp.Employee.PositionID)
	assert.Equal(t, []string{"create employee EMP-001"}, f.logWriter.entries)
}

func TestCreateEmployee_Validation(t *testing.T) {
	f := newEmployeeFixture()

	_, err := f.svc.CreateEmployee(context.Background(), primary.CreateEmployeeRequest{FirstName: "Ada"})
	require.Error(t, err)

	var verr *hrerrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "LastName", verr.Field)
	assert.Equal(t, "is required", verr.Message)
	assert.Empty(t, f.employees.employees)
}

func TestListEmployees_Filters(t *testing.T) {
	f := newEmployeeFixture()
	f.employees.add("EMP-001", "POS-001", true)
	f.employees.add("EMP-002", "POS-001", false)
	f.employees.add("EMP-003", "POS-002", true)

	active := true
	list, err := f.svc.ListEmployees(context.Background(), primary.EmployeeFilters{PositionID: "POS-001", Active: &active})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "EMP-001", list[0].ID)

	all, err := f.svc.ListEmployees(context.Background(), primary.EmployeeFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSetEmployeeActive(t *testing.T) {
	f := newEmployeeFixture()
	f.employees.add("EMP-001", "POS-001", true)
	f.history.seed(openRecord("SALH-001", "EMP-001", "POS-001", "2024-01-01", "1000"))

	require.NoError(t, f.svc.SetEmployeeActive(context.Background(), "EMP-001", false))
	emp, err := f.svc.GetEmployee(context.Background(), "EMP-001")
	require.NoError(t, err)
	assert.False(t, emp.Active)

	// Unchanged flag writes nothing
	require.NoError(t, f.svc.SetEmployeeActive(context.Background(), "EMP-001", false))

	assert.Equal(t, []string{"update employee EMP-001 active true->false"}, f.logWriter.entries)
	assert.Len(t, f.history.openFor("EMP-001", "POS-001"), 1, "open records are kept")

	err = f.svc.SetEmployeeActive(context.Background(), "EMP-404", true)
	assert.True(t, hrerrors.IsNotFound(err))
}

func TestAssignPosition_FirstAssignment(t *testing.T) {
	f := newEmployeeFixture()
	f.employees.add("EMP-001", "", true)
	seedMockPosition(f.positions, "POS-001", "Welder", "2500", true)

	resp, err := f.svc.AssignPosition(context.Background(), assignReq("EMP-001", "POS-001", "2024-06-01"))
	require.NoError(t, err)

	assert.Equal(t, "POS-001", resp.Employee.PositionID)
	assert.Empty(t, resp.ClosedRecords)
	require.NotNil(t, resp.Created)
	assert.Equal(t, "SALH-001", resp.Created.ID)
	assert.Equal(t, "2024-06-01", resp.Created.StartDate)
	assert.True(t, resp.Created.Salary.Equal(money("2500")))
	assert.Equal(t, salaryhistory.AssignmentNote, resp.Created.Note)
	assert.Equal(t, "USR-001", resp.Created.UserID)

	assert.Equal(t, []string{"update employee EMP-001 position_id ->POS-001"}, f.logWriter.entries)
}

func TestAssignPosition_MoveClosesOldRecords(t *testing.T) {
	f := newEmployeeFixture()
	f.employees.add("EMP-001", "POS-001", true)
	seedMockPosition(f.positions, "POS-001", "Welder", "1000", true)
	seedMockPosition(f.positions, "POS-002", "Foreman", "1800", true)
	f.history.seed(openRecord("SALH-001", "EMP-001", "POS-001", "2024-01-01", "1000"))

	resp, err := f.svc.AssignPosition(context.Background(), assignReq("EMP-001", "POS-002", "2024-06-01"))
	require.NoError(t, err)

	assert.Equal(t, []string{"SALH-001"}, resp.ClosedRecords)
	require.NotNil(t, resp.Created)
	assert.Equal(t, "POS-002", resp.Created.PositionID)

	state := f.history.snapshot()
	assert.Equal(t, "2024-06-01", state["SALH-001"].EndDate)
	assert.Empty(t, f.history.openFor("EMP-001", "POS-001"))
	assert.Len(t, f.history.openFor("EMP-001", "POS-002"), 1)

	emp, err := f.employees.GetByID(context.Background(), "EMP-001")
	require.NoError(t, err)
	assert.Equal(t, "POS-002", emp.PositionID)
}

func TestAssignPosition_SameDayRepeatIsNoOp(t *testing.T) {
	f := newEmployeeFixture()
	f.employees.add("EMP-001", "POS-001", true)
	seedMockPosition(f.positions, "POS-001", "Welder", "1000", true)
	f.history.seed(openRecord("SALH-001", "EMP-001", "POS-001", "2024-06-01", "1000"))

	resp, err := f.svc.AssignPosition(context.Background(), assignReq("EMP-001", "POS-001", "2024-06-01"))
	require.NoError(t, err)

	assert.Nil(t, resp.Created)
	assert.Empty(t, resp.ClosedRecords)
	assert.Empty(t, f.history.updates)
	assert.Empty(t, f.history.creates)
	assert.Empty(t, f.logWriter.entries)
}

func TestAssignPosition_Guards(t *testing.T) {
	tests := []struct {
		name      string
		empActive bool
		posActive bool
		salary    string
		want      string
	}{
		{name: "inactive employee", empActive: false, posActive: true, salary: "1000", want: "inactive employee"},
		{name: "inactive position", empActive: true, posActive: false, salary: "1000", want: "inactive position"},
		{name: "no base salary", empActive: true, posActive: true, salary: "0", want: "no base salary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEmployeeFixture()
			f.employees.add("EMP-001", "", tt.empActive)
			seedMockPosition(f.positions, "POS-001", "Welder", tt.salary, tt.posActive)

			_, err := f.svc.AssignPosition(context.Background(), assignReq("EMP-001", "POS-001", "2024-06-01"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Empty(t, f.history.creates)
		})
	}
}

func TestAssignPosition_NotFound(t *testing.T) {
	f := newEmployeeFixture()
	f.employees.add("EMP-001", "", true)

	_, err := f.svc.AssignPosition(context.Background(), assignReq("EMP-001", "POS-404", "2024-06-01"))
	assert.True(t, hrerrors.IsNotFound(err))

	_, err = f.svc.AssignPosition(context.Background(), assignReq("EMP-404", "POS-404", "2024-06-01"))
	assert.True(t, hrerrors.IsNotFound(err))
}

func TestAssignPosition_CloseFailureLeavesEmployeeInPlace(t *testing.T) {
	f := newEmployeeFixture()
	f.employees.add("EMP-001", "POS-001", true)
	seedMockPosition(f.positions, "POS-002", "Foreman", "1800", true)
	f.history.seed(openRecord("SALH-001", "EMP-001", "POS-001", "2024-01-01", "1000"))
	f.history.updateErrByID["SALH-001"] = errors.New("locked")

	_, err := f.svc.AssignPosition(context.Background(), assignReq("EMP-001", "POS-002", "2024-06-01"))
	require.Error(t, err)
	assert.True(t, hrerrors.IsUpstreamWrite(err))

	emp, err := f.employees.GetByID(context.Background(), "EMP-001")
	require.NoError(t, err)
	assert.Equal(t, "POS-001", emp.PositionID)
	assert.Empty(t, f.history.creates)
}

// pausingEmployeeRepository holds the first List call after it has read,
// until release is closed.
type pausingEmployeeRepository struct {
	*mockEmployeeRepository
	read    chan struct{}
	release chan struct{}
}

func (r *pausingEmployeeRepository) List(ctx context.Context, filters secondary.EmployeeFilters) ([]*secondary.EmployeeRecord, error) {
	records, err := r.mockEmployeeRepository.List(ctx, filters)
	close(r.read)
	<-r.release
	return records, err
}

func TestAssignPosition_WaitsForReconcileOnCurrentPosition(t *testing.T) {
	f := newEmployeeFixture()
	seedMockPosition(f.positions, "POS-001", "Welder", "1000", true)
	seedMockPosition(f.positions, "POS-002", "Foreman", "2000", true)
	f.employees.add("EMP-001", "POS-001", true)
	f.history.seed(openRecord("SALH-001", "EMP-001", "POS-001", "2024-01-01", "1000"))

	locks := NewPositionLocks()
	f.svc.locks = locks

	paused := &pausingEmployeeRepository{
		mockEmployeeRepository: f.employees,
		read:                   make(chan struct{}),
		release:                make(chan struct{}),
	}
	reconciler := NewSalaryReconciler(paused, f.history, NewEffectExecutor(f.history, f.employees))
	positions := NewPositionService(f.positions, reconciler, nil, locks)

	salaryDone := make(chan error, 1)
	go func() {
		_, err := positions.UpdatePositionSalary(context.Background(), primary.UpdatePositionSalaryRequest{
			PositionID:   "POS-001",
			NewSalary:    money("1200"),
			ActingUserID: "USR-002",
			Today:        day("2024-06-01"),
		})
		salaryDone <- err
	}()
	<-paused.read

	assignDone := make(chan error, 1)
	go func() {
		_, err := f.svc.AssignPosition(context.Background(), assignReq("EMP-001", "POS-002", "2024-06-01"))
		assignDone <- err
	}()

	select {
	case err := <-assignDone:
		t.Fatalf("assignment finished while POS-001 was being reconciled (err=%v)", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(paused.release)
	require.NoError(t, <-salaryDone)
	require.NoError(t, <-assignDone)

	emp, err := f.employees.GetByID(context.Background(), "EMP-001")
	require.NoError(t, err)
	assert.Equal(t, "POS-002", emp.PositionID)
	assert.Empty(t, f.history.openFor("EMP-001", "POS-001"))
	require.Len(t, f.history.openFor("EMP-001", "POS-002"), 1)
}
