package employee

import (
	"github.com/example/hrdesk/internal/core/effects"
	"github.com/example/hrdesk/internal/core/salaryhistory"
)

// PositionChange is the data carried by an employee update effect.
type PositionChange struct {
	EmployeeID    string
	OldPositionID string
	NewPositionID string
}

// AssignmentPlan is the full set of writes for an assignment.
type AssignmentPlan struct {
	History salaryhistory.EmployeePlan
	Change  *PositionChange // nil when the employee already holds the position
}

// PlanAssignment combines the history plan with the employee's position
// change. History writes come first so a failed close leaves the employee
// where they were.
func PlanAssignment(currentPositionID string, input salaryhistory.AssignmentPlanInput) AssignmentPlan {
	plan := AssignmentPlan{
		History: salaryhistory.GenerateAssignmentPlan(input),
	}
	if currentPositionID != input.PositionID {
		plan.Change = &PositionChange{
			EmployeeID:    input.EmployeeID,
			OldPositionID: currentPositionID,
			NewPositionID: input.PositionID,
		}
	}
	return plan
}

// Effects returns the plan as effects in execution order.
func (p AssignmentPlan) Effects() []effects.Effect {
	effs := p.History.Effects()
	if p.Change != nil {
		effs = append(effs, effects.PersistEffect{
			Entity:    effects.EntityEmployee,
			Operation: effects.OpUpdate,
			Data:      *p.Change,
		})
	}
	return effs
}
