package app

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/example/hrdesk/internal/core/salaryhistory"
	hrerrors "github.com/example/hrdesk/internal/errors"
	"github.com/example/hrdesk/internal/logging"
	"github.com/example/hrdesk/internal/ports/primary"
	"github.com/example/hrdesk/internal/ports/secondary"
)

const (
	defaultReconcileConcurrency = 4
	defaultReconcileTimeout     = 30 * time.Second
)

// SalaryReconcilerImpl implements the SalaryReconciler interface.
// It holds no state between runs; every run starts from fresh rosters.
type SalaryReconcilerImpl struct {
	employeeRepo secondary.EmployeeRepository
	historyRepo  secondary.SalaryHistoryRepository
	executor     EffectExecutor

	concurrency int
	timeout     time.Duration
	newRunID    func() string
}

// ReconcilerOption configures a SalaryReconcilerImpl.
type ReconcilerOption func(*SalaryReconcilerImpl)

// WithConcurrency bounds how many employees are written at once.
func WithConcurrency(n int) ReconcilerOption {
	return func(r *SalaryReconcilerImpl) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithTimeout sets the deadline applied to a whole run. Zero disables it.
func WithTimeout(d time.Duration) ReconcilerOption {
	return func(r *SalaryReconcilerImpl) {
		r.timeout = d
	}
}

// WithRunIDGenerator replaces the uuid run ID source.
func WithRunIDGenerator(fn func() string) ReconcilerOption {
	return func(r *SalaryReconcilerImpl) {
		r.newRunID = fn
	}
}

// NewSalaryReconciler creates a new SalaryReconciler with injected dependencies.
func NewSalaryReconciler(
	employeeRepo secondary.EmployeeRepository,
	historyRepo secondary.SalaryHistoryRepository,
	executor EffectExecutor,
	opts ...ReconcilerOption,
) *SalaryReconcilerImpl {
	r := &SalaryReconcilerImpl{
		employeeRepo: employeeRepo,
		historyRepo:  historyRepo,
		executor:     executor,
		concurrency:  defaultReconcileConcurrency,
		timeout:      defaultReconcileTimeout,
		newRunID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile propagates a position salary change to employee histories.
func (r *SalaryReconcilerImpl) Reconcile(ctx context.Context, req primary.ReconcileRequest) (*primary.ReconcileOutcome, error) {
	today := req.Today
	if today.IsZero() {
		today = time.Now()
	}

	runID := req.RunID
	if runID == "" {
		runID = r.newRunID()
	}

	outcome := &primary.ReconcileOutcome{
		RunID:      runID,
		PositionID: req.PositionID,
		Today:      today.Format(salaryhistory.DateLayout),
	}

	logger := logging.FromContext(ctx).With().
		Str("run_id", outcome.RunID).
		Str("position_id", req.PositionID).
		Logger()
	ctx = logging.WithLogger(ctx, &logger)

	guard := salaryhistory.CanReconcile(salaryhistory.ReconcileContext{
		PositionID: req.PositionID,
		NewSalary:  req.NewSalary,
	})
	if !guard.Allowed {
		outcome.NoOpReason = primary.NoOpInvalidSalary
		if req.PositionID == "" {
			outcome.NoOpReason = primary.NoOpMissingPosition
		}
		logger.Debug().Str("reason", guard.Reason).Msg("reconciliation skipped")
		return outcome, nil
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	employees, history, err := r.fetchRosters(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("reconciliation aborted")
		return nil, err
	}

	plan := salaryhistory.GenerateReconcilePlan(salaryhistory.ReconcilePlanInput{
		PositionID:   req.PositionID,
		NewSalary:    req.NewSalary,
		ActingUserID: req.ActingUserID,
		Today:        today,
		Employees:    employees,
		History:      history,
	})

	outcome.Considered = plan.Considered()
	if outcome.Considered == 0 {
		outcome.NoOpReason = primary.NoOpNoEmployees
		logger.Info().Msg("no active employees on position")
		return outcome, nil
	}

	results := r.apply(ctx, plan)

	for i, ep := range plan.Employees {
		switch {
		case ep.Skip:
			outcome.Skipped++
			outcome.SkippedEmployees = append(outcome.SkippedEmployees, ep.EmployeeID)
		case results[i] != nil:
			outcome.Failures = append(outcome.Failures, toEmployeeFailure(ep.EmployeeID, results[i]))
		default:
			outcome.Updated++
			outcome.UpdatedEmployees = append(outcome.UpdatedEmployees, ep.EmployeeID)
		}
	}
	sort.SliceStable(outcome.Failures, func(i, j int) bool {
		return salaryhistory.CompareIDs(outcome.Failures[i].EmployeeID, outcome.Failures[j].EmployeeID) < 0
	})

	for _, f := range outcome.Failures {
		logger.Warn().
			Str("employee_id", f.EmployeeID).
			Str("operation", f.Operation).
			Str("record_id", f.RecordID).
			Err(f.Err).
			Msg("salary history write failed")
	}
	logger.Info().
		Str("salary", req.NewSalary.String()).
		Int("considered", outcome.Considered).
		Int("updated", outcome.Updated).
		Int("skipped", outcome.Skipped).
		Int("failed", len(outcome.Failures)).
		Msg("reconciliation finished")

	return outcome, nil
}

// fetchRosters reads both rosters concurrently. Either failure aborts the run.
func (r *SalaryReconcilerImpl) fetchRosters(ctx context.Context) ([]salaryhistory.Employee, []salaryhistory.Record, error) {
	var (
		employees []salaryhistory.Employee
		history   []salaryhistory.Record
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := r.employeeRepo.List(gctx, secondary.EmployeeFilters{})
		if err != nil {
			return hrerrors.NewUpstreamReadError("employees", err)
		}
		employees = make([]salaryhistory.Employee, len(records))
		for i, rec := range records {
			employees[i] = salaryhistory.Employee{ID: rec.ID, PositionID: rec.PositionID, Active: rec.Active}
		}
		return nil
	})
	g.Go(func() error {
		records, err := r.historyRepo.List(gctx, secondary.SalaryHistoryFilters{})
		if err != nil {
			return hrerrors.NewUpstreamReadError("salary history", err)
		}
		history = make([]salaryhistory.Record, len(records))
		for i, rec := range records {
			history[i] = historyRecordToCore(rec)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return employees, history, nil
}

// apply executes each employee's plan with bounded concurrency. A failure is
// recorded in its slot and never stops the other employees. Skipped plans
// only log.
func (r *SalaryReconcilerImpl) apply(ctx context.Context, plan salaryhistory.ReconcilePlan) []error {
	results := make([]error, len(plan.Employees))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, ep := range plan.Employees {
		g.Go(func() error {
			results[i] = r.executor.Execute(ctx, ep.Effects())
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func toEmployeeFailure(employeeID string, err error) primary.EmployeeFailure {
	failure := primary.EmployeeFailure{
		EmployeeID: employeeID,
		Operation:  "write",
		Err:        err,
	}
	var writeErr *hrerrors.UpstreamWriteError
	if hrerrors.As(err, &writeErr) {
		failure.Operation = writeErr.Operation
		failure.RecordID = writeErr.RecordID
		failure.Err = writeErr
	}
	return failure
}

// Ensure SalaryReconcilerImpl implements the interface
var _ primary.SalaryReconciler = (*SalaryReconcilerImpl)(nil)
