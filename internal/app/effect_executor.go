// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"

	"github.com/example/hrdesk/internal/core/effects"
	coreemployee "github.com/example/hrdesk/internal/core/employee"
	"github.com/example/hrdesk/internal/core/salaryhistory"
	hrerrors "github.com/example/hrdesk/internal/errors"
	"github.com/example/hrdesk/internal/logging"
	"github.com/example/hrdesk/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place I/O happens.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// DefaultEffectExecutor implements EffectExecutor against the repositories.
type DefaultEffectExecutor struct {
	historyRepo  secondary.SalaryHistoryRepository
	employeeRepo secondary.EmployeeRepository
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(historyRepo secondary.SalaryHistoryRepository, employeeRepo secondary.EmployeeRepository) *DefaultEffectExecutor {
	return &DefaultEffectExecutor{
		historyRepo:  historyRepo,
		employeeRepo: employeeRepo,
	}
}

// Execute processes a slice of effects in sequence, stopping at the first failure.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.PersistEffect:
		return e.executePersist(ctx, typed)
	case effects.CompositeEffect:
		return e.Execute(ctx, typed.Effects)
	case effects.LogEffect:
		e.executeLog(ctx, typed)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeLog(ctx context.Context, eff effects.LogEffect) {
	log := logging.FromContext(ctx)
	ev := log.Info()
	switch eff.Level {
	case "debug":
		ev = log.Debug()
	case "warn":
		ev = log.Warn()
	}
	for k, v := range eff.Fields {
		ev = ev.Str(k, v)
	}
	ev.Msg(eff.Message)
}

func (e *DefaultEffectExecutor) executePersist(ctx context.Context, eff effects.PersistEffect) error {
	switch eff.Entity {
	case effects.EntitySalaryHistory:
		return e.executeSalaryHistoryOp(ctx, eff)
	case effects.EntityEmployee:
		return e.executeEmployeeOp(ctx, eff)
	default:
		return fmt.Errorf("unknown entity: %s", eff.Entity)
	}
}

func (e *DefaultEffectExecutor) executeSalaryHistoryOp(ctx context.Context, eff effects.PersistEffect) error {
	rec, ok := eff.Data.(salaryhistory.Record)
	if !ok {
		return fmt.Errorf("invalid salary history data type: %T", eff.Data)
	}

	switch eff.Operation {
	case effects.OpClose:
		if err := e.historyRepo.Update(ctx, coreToHistoryRecord(rec)); err != nil {
			return hrerrors.NewUpstreamWriteError(effects.OpClose, "salary history record", rec.ID, rec.EmployeeID, err)
		}
		return nil
	case effects.OpCreate:
		if _, err := e.historyRepo.Create(ctx, coreToHistoryRecord(rec)); err != nil {
			return hrerrors.NewUpstreamWriteError(effects.OpCreate, "salary history record", "", rec.EmployeeID, err)
		}
		return nil
	default:
		return fmt.Errorf("unknown salary history operation: %s", eff.Operation)
	}
}

func (e *DefaultEffectExecutor) executeEmployeeOp(ctx context.Context, eff effects.PersistEffect) error {
	switch eff.Operation {
	case effects.OpUpdate:
		change, ok := eff.Data.(coreemployee.PositionChange)
		if !ok {
			return fmt.Errorf("invalid employee update data type: %T", eff.Data)
		}
		emp, err := e.employeeRepo.GetByID(ctx, change.EmployeeID)
		if err != nil {
			return err
		}
		emp.PositionID = change.NewPositionID
		if err := e.employeeRepo.Update(ctx, emp); err != nil {
			return hrerrors.NewUpstreamWriteError(effects.OpUpdate, "employee", emp.ID, emp.ID, err)
		}
		return nil
	default:
		return fmt.Errorf("unknown employee operation: %s", eff.Operation)
	}
}

func coreToHistoryRecord(r salaryhistory.Record) *secondary.SalaryHistoryRecord {
	return &secondary.SalaryHistoryRecord{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		PositionID: r.PositionID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Salary:     r.Salary,
		Note:       r.Note,
		Active:     r.Active,
		UserID:     r.UserID,
	}
}

func historyRecordToCore(r *secondary.SalaryHistoryRecord) salaryhistory.Record {
	return salaryhistory.Record{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		PositionID: r.PositionID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Salary:     r.Salary,
		Note:       r.Note,
		Active:     r.Active,
		UserID:     r.UserID,
	}
}
