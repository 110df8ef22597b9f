package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/hrdesk/internal/ports/primary"
)

// HistoryAdapter renders salary history and the audit trail.
type HistoryAdapter struct {
	history primary.SalaryHistoryService
	logs    primary.AuditLogService
	out     io.Writer
}

// NewHistoryAdapter creates a new HistoryAdapter.
func NewHistoryAdapter(history primary.SalaryHistoryService, logs primary.AuditLogService, out io.Writer) *HistoryAdapter {
	return &HistoryAdapter{
		history: history,
		logs:    logs,
		out:     out,
	}
}

// List prints salary history records newest first.
func (a *HistoryAdapter) List(ctx context.Context, filters primary.HistoryFilters) error {
	entries, err := a.history.ListHistory(ctx, filters)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No salary history found")
		return nil
	}

	w := newTable(a.out)
	fmt.Fprintln(w, "ID\tEMPLOYEE\tPOSITION\tSTART\tEND\tSALARY\tNOTE")
	for _, e := range entries {
		end := e.EndDate
		if e.IsOpen() {
			end = green.Sprint("open")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.EmployeeID, e.PositionID, e.StartDate, end, formatAmount(e.Salary), e.Note)
	}
	w.Flush()
	return nil
}

// Logs prints audit entries newest first.
func (a *HistoryAdapter) Logs(ctx context.Context, filters primary.LogFilters) error {
	entries, err := a.logs.ListLogs(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to fetch logs: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No log entries found")
		return nil
	}

	w := newTable(a.out)
	fmt.Fprintln(w, "TIME\tACTOR\tACTION\tENTITY\tCHANGE")
	for _, e := range entries {
		actor := e.ActorID
		if actor == "" {
			actor = "-"
		}
		change := ""
		if e.FieldName != "" {
			change = fmt.Sprintf("%s: %s → %s", e.FieldName, e.OldValue, e.NewValue)
		}
		if e.RunID != "" {
			change += " " + faint.Sprintf("[run %s]", e.RunID)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\n", e.Timestamp, actor, e.Action, e.EntityType, e.EntityID, change)
	}
	w.Flush()
	return nil
}

// Prune deletes audit entries older than the given number of days.
func (a *HistoryAdapter) Prune(ctx context.Context, olderThanDays int) error {
	n, err := a.logs.PruneLogs(ctx, olderThanDays)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Pruned %d log entries older than %d days\n", n, olderThanDays)
	return nil
}
