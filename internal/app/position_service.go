package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	coreposition "github.com/example/hrdesk/internal/core/position"
	"github.com/example/hrdesk/internal/ctxutil"
	"github.com/example/hrdesk/internal/core/salaryhistory"
	hrerrors "github.com/example/hrdesk/internal/errors"
	"github.com/example/hrdesk/internal/logging"
	"github.com/example/hrdesk/internal/ports/primary"
	"github.com/example/hrdesk/internal/ports/secondary"
)

// PositionServiceImpl implements the PositionService interface.
type PositionServiceImpl struct {
	positionRepo secondary.PositionRepository
	reconciler   primary.SalaryReconciler
	logWriter    secondary.LogWriter
	locks        *PositionLocks
	newRunID     func() string
}

// NewPositionService creates a new PositionService with injected dependencies.
func NewPositionService(
	positionRepo secondary.PositionRepository,
	reconciler primary.SalaryReconciler,
	logWriter secondary.LogWriter,
	locks *PositionLocks,
) *PositionServiceImpl {
	if locks == nil {
		locks = NewPositionLocks()
	}
	return &PositionServiceImpl{
		positionRepo: positionRepo,
		reconciler:   reconciler,
		logWriter:    logWriter,
		locks:        locks,
		newRunID:     uuid.NewString,
	}
}

// CreatePosition creates a new active position.
func (s *PositionServiceImpl) CreatePosition(ctx context.Context, req primary.CreatePositionRequest) (*primary.CreatePositionResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	guard := coreposition.CanCreatePosition(coreposition.CreatePositionContext{
		Name:       req.Name,
		BaseSalary: req.BaseSalary,
	})
	if !guard.Allowed {
		return nil, hrerrors.NewValidationError("BaseSalary", req.BaseSalary.String(), guard.Reason)
	}

	nextID, err := s.positionRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate position ID: %w", err)
	}

	record := &secondary.PositionRecord{
		ID:          nextID,
		Name:        req.Name,
		Description: req.Description,
		BaseSalary:  req.BaseSalary,
		Active:      true,
	}
	if err := s.positionRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create position: %w", err)
	}
	s.audit(ctx, func() error { return s.logWriter.LogCreate(ctx, "position", nextID) })

	created, err := s.positionRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created position: %w", err)
	}

	return &primary.CreatePositionResponse{
		PositionID: nextID,
		Position:   recordToPosition(created),
	}, nil
}

// GetPosition retrieves a position by ID.
func (s *PositionServiceImpl) GetPosition(ctx context.Context, positionID string) (*primary.Position, error) {
	record, err := s.positionRepo.GetByID(ctx, positionID)
	if err != nil {
		return nil, err
	}
	return recordToPosition(record), nil
}

// ListPositions returns one page of positions sorted by name.
func (s *PositionServiceImpl) ListPositions(ctx context.Context, filters primary.PositionFilters) (*primary.PositionPage, error) {
	repoFilters := secondary.PositionFilters{}
	if !filters.IncludeInactive {
		active := true
		repoFilters.Active = &active
	}

	records, err := s.positionRepo.List(ctx, repoFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	byID := make(map[string]*secondary.PositionRecord, len(records))
	listings := make([]coreposition.Listing, len(records))
	for i, r := range records {
		byID[r.ID] = r
		listings[i] = coreposition.Listing{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			BaseSalary:  r.BaseSalary,
		}
	}

	listings = coreposition.Search(listings, filters.Search)
	coreposition.SortByName(listings)
	page := coreposition.Paginate(len(listings), filters.Page, filters.PageSize)

	positions := make([]*primary.Position, 0, page.End-page.Start)
	for _, l := range listings[page.Start:page.End] {
		positions = append(positions, recordToPosition(byID[l.ID]))
	}

	return &primary.PositionPage{
		Positions:  positions,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// UpdatePositionSalary commits a new base salary, then propagates it.
func (s *PositionServiceImpl) UpdatePositionSalary(ctx context.Context, req primary.UpdatePositionSalaryRequest) (*primary.UpdatePositionSalaryResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	guard := coreposition.CanChangeSalary(coreposition.SalaryChangeContext{
		PositionID: req.PositionID,
		NewSalary:  req.NewSalary,
	})
	if !guard.Allowed {
		return nil, hrerrors.NewValidationError("NewSalary", req.NewSalary.String(), guard.Reason)
	}

	unlock := s.locks.Lock(req.PositionID)
	defer unlock()

	record, err := s.positionRepo.GetByID(ctx, req.PositionID)
	if err != nil {
		return nil, err
	}

	previous := record.BaseSalary
	propagate := salaryhistory.ShouldPropagateSalaryChange(salaryhistory.SalaryChangeContext{
		PreviousSalary: previous,
		NewSalary:      req.NewSalary,
	})

	// The salary audit entry and the run it triggers share one run ID.
	var runID string
	if propagate.Allowed {
		runID = s.newRunID()
		ctx = ctxutil.WithRunID(ctx, runID)
	}

	record.BaseSalary = req.NewSalary
	if err := s.positionRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update position salary: %w", err)
	}
	s.audit(ctx, func() error {
		return s.logWriter.LogUpdate(ctx, "position", req.PositionID, "base_salary", previous.String(), req.NewSalary.String())
	})

	resp := &primary.UpdatePositionSalaryResponse{
		Position:       recordToPosition(record),
		PreviousSalary: previous,
	}

	if !propagate.Allowed {
		logging.FromContext(ctx).Debug().
			Str("position_id", req.PositionID).
			Str("reason", propagate.Reason).
			Msg("salary change not propagated")
		return resp, nil
	}

	today := req.Today
	if today.IsZero() {
		today = time.Now()
	}

	// The salary is committed; a failed reconciliation is reported, not rolled back.
	outcome, err := s.reconciler.Reconcile(ctx, primary.ReconcileRequest{
		PositionID:   req.PositionID,
		NewSalary:    req.NewSalary,
		ActingUserID: req.ActingUserID,
		Today:        today,
		RunID:        runID,
	})
	resp.Reconciliation = outcome
	resp.ReconcileError = err
	s.auditRun(ctx, req.PositionID, outcome)

	return resp, nil
}

// ReconcilePosition re-runs propagation for an existing position.
func (s *PositionServiceImpl) ReconcilePosition(ctx context.Context, req primary.ReconcileRequest) (*primary.ReconcileOutcome, error) {
	unlock := s.locks.Lock(req.PositionID)
	defer unlock()

	if _, err := s.positionRepo.GetByID(ctx, req.PositionID); err != nil {
		return nil, err
	}

	if req.RunID == "" {
		req.RunID = s.newRunID()
	}
	ctx = ctxutil.WithRunID(ctx, req.RunID)

	outcome, err := s.reconciler.Reconcile(ctx, req)
	s.auditRun(ctx, req.PositionID, outcome)
	return outcome, err
}

// SetPositionActive deactivates (soft delete) or reactivates a position.
func (s *PositionServiceImpl) SetPositionActive(ctx context.Context, positionID string, active bool) error {
	record, err := s.positionRepo.GetByID(ctx, positionID)
	if err != nil {
		return err
	}

	guard := coreposition.CanSetActive(coreposition.SetActiveContext{
		PositionID:    positionID,
		CurrentActive: record.Active,
		WantActive:    active,
	})
	if err := guard.Error(); err != nil {
		return err
	}

	record.Active = active
	if err := s.positionRepo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}

	s.audit(ctx, func() error {
		if !active {
			return s.logWriter.LogDelete(ctx, "position", positionID)
		}
		return s.logWriter.LogUpdate(ctx, "position", positionID, "active", "false", "true")
	})
	return nil
}

// auditRun records a run that reached at least one employee.
func (s *PositionServiceImpl) auditRun(ctx context.Context, positionID string, outcome *primary.ReconcileOutcome) {
	if outcome == nil || outcome.IsNoOp() {
		return
	}
	s.audit(ctx, func() error {
		return s.logWriter.LogReconcile(ctx, positionID, outcome.Updated, outcome.Skipped, len(outcome.Failures))
	})
}

// audit writes an audit entry; failures are logged and otherwise ignored.
func (s *PositionServiceImpl) audit(ctx context.Context, write func() error) {
	if s.logWriter == nil {
		return
	}
	if err := write(); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to write audit log")
	}
}

// Helper methods

func recordToPosition(r *secondary.PositionRecord) *primary.Position {
	return &primary.Position{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		BaseSalary:  r.BaseSalary,
		Active:      r.Active,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// Ensure PositionServiceImpl implements the interface
var _ primary.PositionService = (*PositionServiceImpl)(nil)
