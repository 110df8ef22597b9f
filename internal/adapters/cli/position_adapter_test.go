package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hrerrors "github.com/example/hrdesk/internal/errors"
	"github.com/example/hrdesk/internal/ports/primary"
)

func errNotFound(id string) error {
	return hrerrors.NewNotFoundError("record", id)
}

func TestPositionAdapter_Create(t *testing.T) {
	svc := &mockPositionService{}
	var out bytes.Buffer

	err := NewPositionAdapter(svc, &out).Create(context.Background(), "Welder", "Shop floor", "2500.5")
	require.NoError(t, err)

	assert.Equal(t, "Welder", svc.lastCreateReq.Name)
	assert.True(t, svc.lastCreateReq.BaseSalary.Equal(decimal.RequireFromString("2500.50")))
	assert.Equal(t, "✓ Created position POS-001: Welder (2500.50)\n", out.String())
}

func TestPositionAdapter_CreateRejectsBadAmount(t *testing.T) {
	svc := &mockPositionService{}
	var out bytes.Buffer

	err := NewPositionAdapter(svc, &out).Create(context.Background(), "Welder", "", "12k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid amount")
	assert.Empty(t, svc.lastCreateReq.Name)
}

func TestPositionAdapter_List(t *testing.T) {
	svc := &mockPositionService{
		listFn: func(ctx context.Context, filters primary.PositionFilters) (*primary.PositionPage, error) {
			return &primary.PositionPage{
				Positions: []*primary.Position{
					{ID: "POS-002", Name: "Baker", BaseSalary: decimal.RequireFromString("1800"), Active: true},
					{ID: "POS-001", Name: "Welder", BaseSalary: decimal.RequireFromString("2500"), Active: false},
				},
				Total: 5, Page: 1, PageSize: 2, TotalPages: 3,
			}, nil
		},
	}
	var out bytes.Buffer

	err := NewPositionAdapter(svc, &out).List(context.Background(), primary.PositionFilters{PageSize: 2})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, lines[0], "BASE SALARY")
	assert.Contains(t, lines[1], "Baker")
	assert.Contains(t, lines[1], "1800.00")
	assert.Contains(t, lines[2], "inactive")
	assert.Contains(t, out.String(), "Page 1 of 3 (5 positions)")
}

func TestPositionAdapter_ListEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewPositionAdapter(&mockPositionService{}, &out).List(context.Background(), primary.PositionFilters{}))
	assert.Equal(t, "No positions found\n", out.String())
}

func TestPositionAdapter_SetSalaryPrintsOutcome(t *testing.T) {
	svc := &mockPositionService{
		updateFn: func(ctx context.Context, req primary.UpdatePositionSalaryRequest) (*primary.UpdatePositionSalaryResponse, error) {
			return &primary.UpdatePositionSalaryResponse{
				Position:       &primary.Position{ID: req.PositionID, BaseSalary: req.NewSalary},
				PreviousSalary: decimal.RequireFromString("1000"),
				Reconciliation: &primary.ReconcileOutcome{
					RunID:      "run-1",
					PositionID: req.PositionID,
					Today:      "2024-06-01",
					Considered: 3,
					Updated:    2,
					Skipped:    1,
				},
			}, nil
		},
	}
	var out bytes.Buffer

	err := NewPositionAdapter(svc, &out).SetSalary(context.Background(), "POS-001", "1200", "USR-002", "2024-06-01")
	require.NoError(t, err)

	assert.Equal(t, "USR-002", svc.lastUpdateReq.ActingUserID)
	assert.Equal(t, "2024-06-01", svc.lastUpdateReq.Today.Format("2006-01-02"))

	s := out.String()
	assert.Contains(t, s, "✓ Position POS-001 base salary 1000.00 → 1200.00")
	assert.Contains(t, s, "Reconciled POS-001 on 2024-06-01 (run run-1)")
	assert.Contains(t, s, "updated:    2")
	assert.Contains(t, s, "skipped:    1")
	assert.NotContains(t, s, "failed")
}

func TestPositionAdapter_SetSalaryWithFailures(t *testing.T) {
	svc := &mockPositionService{
		updateFn: func(ctx context.Context, req primary.UpdatePositionSalaryRequest) (*primary.UpdatePositionSalaryResponse, error) {
			return &primary.UpdatePositionSalaryResponse{
				Position:       &primary.Position{ID: req.PositionID, BaseSalary: req.NewSalary},
				PreviousSalary: decimal.RequireFromString("1000"),
				Reconciliation: &primary.ReconcileOutcome{
					PositionID: req.PositionID,
					Today:      "2024-06-01",
					Considered: 2,
					Updated:    1,
					Failures: []primary.EmployeeFailure{
						{EmployeeID: "EMP-001", Operation: "close", RecordID: "SALH-001", Err: errors.New("locked")},
					},
				},
			}, nil
		},
	}
	var out bytes.Buffer

	err := NewPositionAdapter(svc, &out).SetSalary(context.Background(), "POS-001", "1200", "USR-002", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 employee(s) could not be updated")

	s := out.String()
	assert.Contains(t, s, "failed:     1")
	assert.Contains(t, s, "EMP-001")
	assert.Contains(t, s, "SALH-001")
	assert.Contains(t, s, "locked")
}

func TestPositionAdapter_SetSalaryReconcileAborted(t *testing.T) {
	svc := &mockPositionService{
		updateFn: func(ctx context.Context, req primary.UpdatePositionSalaryRequest) (*primary.UpdatePositionSalaryResponse, error) {
			return &primary.UpdatePositionSalaryResponse{
				Position:       &primary.Position{ID: req.PositionID, BaseSalary: req.NewSalary},
				PreviousSalary: decimal.RequireFromString("1000"),
				ReconcileError: hrerrors.NewUpstreamReadError("employees", errors.New("503")),
			}, nil
		},
	}
	var out bytes.Buffer

	err := NewPositionAdapter(svc, &out).SetSalary(context.Background(), "POS-001", "1200", "USR-002", "")
	require.Error(t, err)
	assert.True(t, hrerrors.IsUpstreamRead(err))
	assert.Contains(t, out.String(), "Salary saved, but employee histories were not updated")
}

func TestPositionAdapter_SetSalaryBadDate(t *testing.T) {
	svc := &mockPositionService{}
	var out bytes.Buffer

	err := NewPositionAdapter(svc, &out).SetSalary(context.Background(), "POS-001", "1200", "USR-002", "06/01/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected YYYY-MM-DD")
	assert.Empty(t, svc.lastUpdateReq.PositionID)
}

func TestPositionAdapter_ReconcileDefaultsToCurrentSalary(t *testing.T) {
	svc := &mockPositionService{
		getFn: func(ctx context.Context, positionID string) (*primary.Position, error) {
			return &primary.Position{ID: positionID, BaseSalary: decimal.RequireFromString("3100")}, nil
		},
	}
	var out bytes.Buffer

	err := NewPositionAdapter(svc, &out).Reconcile(context.Background(), "POS-001", "", "USR-001", "")
	require.NoError(t, err)

	assert.True(t, svc.lastReconcileReq.NewSalary.Equal(decimal.RequireFromString("3100")))
	assert.True(t, svc.lastReconcileReq.Today.IsZero())
	assert.Equal(t, "No active employees on POS-001, nothing to reconcile\n", out.String())
}

func TestPositionAdapter_ReconcileInvalidSalary(t *testing.T) {
	svc := &mockPositionService{
		reconcileFn: func(ctx context.Context, req primary.ReconcileRequest) (*primary.ReconcileOutcome, error) {
			return &primary.ReconcileOutcome{PositionID: req.PositionID, NoOpReason: primary.NoOpInvalidSalary}, nil
		},
	}
	var out bytes.Buffer

	err := NewPositionAdapter(svc, &out).Reconcile(context.Background(), "POS-001", "0", "USR-001", "2024-06-01")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "salary is not a positive amount")
}

func TestPositionAdapter_ReconcileMissingPosition(t *testing.T) {
	svc := &mockPositionService{
		reconcileFn: func(ctx context.Context, req primary.ReconcileRequest) (*primary.ReconcileOutcome, error) {
			return &primary.ReconcileOutcome{NoOpReason: primary.NoOpMissingPosition}, nil
		},
	}
	var out bytes.Buffer

	err := NewPositionAdapter(svc, &out).Reconcile(context.Background(), "", "1200", "USR-001", "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, "! No reconciliation: no position given\n", out.String())
}

func TestPositionAdapter_ActivateDeactivate(t *testing.T) {
	var calls []bool
	svc := &mockPositionService{
		setActiveFn: func(ctx context.Context, positionID string, active bool) error {
			calls = append(calls, active)
			return nil
		},
	}
	var out bytes.Buffer
	adapter := NewPositionAdapter(svc, &out)

	require.NoError(t, adapter.Deactivate(context.Background(), "POS-001"))
	require.NoError(t, adapter.Activate(context.Background(), "POS-001"))

	assert.Equal(t, []bool{false, true}, calls)
	assert.Equal(t, "✓ Position POS-001 deactivated\n✓ Position POS-001 activated\n", out.String())
}
