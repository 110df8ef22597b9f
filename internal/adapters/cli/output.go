// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing and output
// formatting, but delegate business logic to services.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/example/hrdesk/internal/core/salaryhistory"
	"github.com/example/hrdesk/internal/ports/primary"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	faint  = color.New(color.Faint)
)

// ParseAmount parses a salary given on the command line.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: expected a number like 1200 or 1200.50", s)
	}
	return d, nil
}

// ParseDate parses an optional YYYY-MM-DD date. An empty string yields the zero time.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(salaryhistory.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

// printOutcome renders a reconciliation outcome. It returns an error when any
// employee failed so the command exits non-zero.
func printOutcome(out io.Writer, outcome *primary.ReconcileOutcome) error {
	if outcome == nil {
		return nil
	}

	switch outcome.NoOpReason {
	case primary.NoOpMissingPosition:
		fmt.Fprintf(out, "%s No reconciliation: no position given\n", yellow.Sprint("!"))
		return nil
	case primary.NoOpInvalidSalary:
		fmt.Fprintf(out, "%s No reconciliation: salary is not a positive amount\n", yellow.Sprint("!"))
		return nil
	case primary.NoOpNoEmployees:
		fmt.Fprintf(out, "No active employees on %s, nothing to reconcile\n", outcome.PositionID)
		return nil
	}

	fmt.Fprintf(out, "Reconciled %s on %s %s\n", outcome.PositionID, outcome.Today, faint.Sprintf("(run %s)", outcome.RunID))
	fmt.Fprintf(out, "  considered: %d\n", outcome.Considered)
	fmt.Fprintf(out, "  updated:    %s\n", green.Sprint(outcome.Updated))
	fmt.Fprintf(out, "  skipped:    %s\n", yellow.Sprint(outcome.Skipped))
	if !outcome.HasFailures() {
		return nil
	}
	fmt.Fprintf(out, "  failed:     %s\n\n", red.Sprint(len(outcome.Failures)))

	w := newTable(out)
	fmt.Fprintln(w, "EMPLOYEE\tOPERATION\tRECORD\tERROR")
	for _, f := range outcome.Failures {
		record := f.RecordID
		if record == "" {
			record = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", f.EmployeeID, f.Operation, record, f.Err)
	}
	w.Flush()

	return fmt.Errorf("%d employee(s) could not be updated", len(outcome.Failures))
}
