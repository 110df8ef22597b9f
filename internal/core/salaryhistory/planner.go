// Package salaryhistory contains the pure business logic for salary history records.
// Planners take pre-fetched rosters and return the writes to perform as data;
// they never touch storage themselves.
package salaryhistory

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/hrdesk/internal/core/effects"
)

// DateLayout is the calendar-date format used for start and end dates.
const DateLayout = "2006-01-02"

// Notes attached to records created by hrdesk itself.
const (
	AutoUpdateNote = "Automatic update due to position salary change"
	AssignmentNote = "Assigned to position"
)

// Employee is the slice of an employee the planners need.
type Employee struct {
	ID         string
	PositionID string
	Active     bool
}

// Record is a salary history record. An empty EndDate means the record is
// still in effect.
type Record struct {
	ID         string
	EmployeeID string
	PositionID string
	StartDate  string
	EndDate    string
	Salary     decimal.Decimal
	Note       string
	Active     bool
	UserID     string
}

// IsOpen reports whether the record is active and has no end date.
func (r Record) IsOpen() bool {
	return r.Active && strings.TrimSpace(r.EndDate) == ""
}

// ReconcilePlanInput contains pre-fetched data for a position salary change.
type ReconcilePlanInput struct {
	PositionID   string
	NewSalary    decimal.Decimal
	ActingUserID string
	Today        time.Time
	Employees    []Employee
	History      []Record
}

// AssignmentPlanInput contains pre-fetched data for moving an employee onto a position.
type AssignmentPlanInput struct {
	EmployeeID   string
	PositionID   string
	Salary       decimal.Decimal
	ActingUserID string
	Today        time.Time
	History      []Record
}

// EmployeePlan is the set of writes planned for one employee.
// Closes must be persisted before Create.
type EmployeePlan struct {
	EmployeeID string
	Open       *Record  // open record for the target position, nil if none
	Skip       bool     // same-day duplicate, nothing to write
	Closes     []Record // full records with EndDate set
	Create     *Record  // new open record, ID assigned on persist
}

// Effects returns the plan as a single sequenced effect. Each close is
// followed by a debug log; a suppressed duplicate yields only a debug log.
func (p EmployeePlan) Effects() []effects.Effect {
	seq := make([]effects.Effect, 0, 2*len(p.Closes)+1)
	for _, c := range p.Closes {
		seq = append(seq,
			effects.PersistEffect{
				Entity:    effects.EntitySalaryHistory,
				Operation: effects.OpClose,
				Data:      c,
			},
			effects.LogEffect{
				Level:   "debug",
				Message: "closed salary record",
				Fields: map[string]string{
					"employee_id": c.EmployeeID,
					"record_id":   c.ID,
					"position_id": c.PositionID,
					"end_date":    c.EndDate,
				},
			},
		)
	}
	if p.Skip && p.Open != nil {
		seq = append(seq, effects.LogEffect{
			Level:   "debug",
			Message: "salary record already current",
			Fields: map[string]string{
				"employee_id": p.EmployeeID,
				"record_id":   p.Open.ID,
				"position_id": p.Open.PositionID,
			},
		})
	}
	if p.Create != nil {
		seq = append(seq, effects.PersistEffect{
			Entity:    effects.EntitySalaryHistory,
			Operation: effects.OpCreate,
			Data:      *p.Create,
		})
	}
	return []effects.Effect{effects.CompositeEffect{Effects: seq}}
}

// ReconcilePlan represents the planned writes for a position salary change.
type ReconcilePlan struct {
	PositionID string
	Today      string
	Employees  []EmployeePlan
}

// Considered returns the number of employees selected for the position.
func (p ReconcilePlan) Considered() int {
	return len(p.Employees)
}

// Skipped returns the number of employees suppressed by the duplicate rule.
func (p ReconcilePlan) Skipped() int {
	n := 0
	for _, e := range p.Employees {
		if e.Skip {
			n++
		}
	}
	return n
}

// GenerateReconcilePlan plans the history writes for a position salary change.
// This is a pure function - all input data must be pre-fetched, and the
// caller must have checked CanReconcile.
//
// Rules:
//   - only active employees currently on the position are considered
//   - the employee's open record for the position is the one with the latest
//     start date; ties go to the greatest record ID
//   - an open record that started today at the new salary suppresses all writes
//   - otherwise the open record (if any) is closed today and a new one opened
//
// Other open records for the same pair are left untouched.
func GenerateReconcilePlan(input ReconcilePlanInput) ReconcilePlan {
	today := input.Today.Format(DateLayout)
	plan := ReconcilePlan{
		PositionID: input.PositionID,
		Today:      today,
	}

	for _, emp := range SelectEmployees(input.Employees, input.PositionID) {
		ep := EmployeePlan{EmployeeID: emp.ID}
		ep.Open = FindOpenRecord(input.History, emp.ID, input.PositionID)

		if IsDuplicate(ep.Open, today, input.NewSalary) {
			ep.Skip = true
			plan.Employees = append(plan.Employees, ep)
			continue
		}

		if ep.Open != nil {
			ep.Closes = append(ep.Closes, closeRecord(*ep.Open, today, input.ActingUserID))
		}
		ep.Create = &Record{
			EmployeeID: emp.ID,
			PositionID: input.PositionID,
			StartDate:  today,
			Salary:     input.NewSalary,
			Note:       AutoUpdateNote,
			Active:     true,
			UserID:     input.ActingUserID,
		}
		plan.Employees = append(plan.Employees, ep)
	}

	return plan
}

// GenerateAssignmentPlan plans the history writes for assigning an employee
// to a position at the given salary. Open records the employee holds on other
// positions are closed today. The target position follows the same rules as
// a reconciliation, including duplicate suppression.
func GenerateAssignmentPlan(input AssignmentPlanInput) EmployeePlan {
	today := input.Today.Format(DateLayout)
	plan := EmployeePlan{EmployeeID: input.EmployeeID}

	for _, r := range sortedRecords(input.History) {
		if r.EmployeeID != input.EmployeeID || r.PositionID == input.PositionID || !r.IsOpen() {
			continue
		}
		plan.Closes = append(plan.Closes, closeRecord(r, today, input.ActingUserID))
	}

	plan.Open = FindOpenRecord(input.History, input.EmployeeID, input.PositionID)
	if IsDuplicate(plan.Open, today, input.Salary) {
		plan.Skip = true
		return plan
	}

	if plan.Open != nil {
		plan.Closes = append(plan.Closes, closeRecord(*plan.Open, today, input.ActingUserID))
	}
	plan.Create = &Record{
		EmployeeID: input.EmployeeID,
		PositionID: input.PositionID,
		StartDate:  today,
		Salary:     input.Salary,
		Note:       AssignmentNote,
		Active:     true,
		UserID:     input.ActingUserID,
	}
	return plan
}

// SelectEmployees returns the active employees on positionID, ordered by ID.
func SelectEmployees(employees []Employee, positionID string) []Employee {
	var selected []Employee
	for _, e := range employees {
		if e.Active && e.PositionID == positionID {
			selected = append(selected, e)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return CompareIDs(selected[i].ID, selected[j].ID) < 0
	})
	return selected
}

// FindOpenRecord returns a copy of the employee's open record for the
// position, or nil. With several open records the latest start date wins,
// then the greatest ID. Unparseable start dates sort as oldest.
func FindOpenRecord(history []Record, employeeID, positionID string) *Record {
	var best *Record
	for i := range history {
		r := history[i]
		if r.EmployeeID != employeeID || r.PositionID != positionID || !r.IsOpen() {
			continue
		}
		if best == nil || newer(r, *best) {
			cp := r
			best = &cp
		}
	}
	return best
}

// IsDuplicate reports whether open already records salary starting today.
func IsDuplicate(open *Record, today string, salary decimal.Decimal) bool {
	if open == nil {
		return false
	}
	return NormalizeDate(open.StartDate) == today && open.Salary.Equal(salary)
}

// NormalizeDate trims a timestamp down to its YYYY-MM-DD prefix.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) {
		return s[:len(DateLayout)]
	}
	return s
}

// ParseDate parses a date or timestamp; ok is false when it cannot be read.
func ParseDate(s string) (t time.Time, ok bool) {
	t, err := time.Parse(DateLayout, NormalizeDate(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CompareIDs orders zero-padded sequential IDs such as SALH-009 < SALH-010 < SALH-1000.
func CompareIDs(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func newer(a, b Record) bool {
	ta, okA := ParseDate(a.StartDate)
	tb, okB := ParseDate(b.StartDate)
	switch {
	case okA && !okB:
		return true
	case !okA && okB:
		return false
	case okA && okB && !ta.Equal(tb):
		return ta.After(tb)
	}
	return CompareIDs(a.ID, b.ID) > 0
}

func closeRecord(r Record, today, actingUserID string) Record {
	r.EndDate = today
	r.UserID = actingUserID
	return r
}

func sortedRecords(history []Record) []Record {
	out := make([]Record, len(history))
	copy(out, history)
	sort.SliceStable(out, func(i, j int) bool {
		return CompareIDs(out[i].ID, out[j].ID) < 0
	})
	return out
}
