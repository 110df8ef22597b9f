package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/hrdesk/internal/wire"
)

var employeeCmd = &cobra.Command{
	Use:     "employee",
	Aliases: []string{"emp"},
	Short:   "Manage employees and their position assignments",
}

var employeeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List employees",
	RunE: func(cmd *cobra.Command, args []string) error {
		positionID, _ := cmd.Flags().GetString("position")
		all, _ := cmd.Flags().GetBool("all")
		if err := validateEntityID(positionID, "position"); err != nil {
			return err
		}
		return wire.EmployeeAdapter().List(NewContext(), positionID, all)
	},
}

var employeeShowCmd = &cobra.Command{
	Use:   "show [employee-id]",
	Short: "Show an employee and their current salary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEntityID(args[0], "employee"); err != nil {
			return err
		}
		return wire.EmployeeAdapter().Show(NewContext(), args[0])
	},
}

var employeeCreateCmd = &cobra.Command{
	Use:   "create [first-name] [last-name]",
	Short: "Create a new employee",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.EmployeeAdapter().Create(NewContext(), args[0], args[1])
	},
}

var employeeAssignCmd = &cobra.Command{
	Use:   "assign [employee-id] [position-id]",
	Short: "Assign an employee to a position at its base salary",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEntityID(args[0], "employee"); err != nil {
			return err
		}
		if err := validateEntityID(args[1], "position"); err != nil {
			return err
		}
		date, _ := cmd.Flags().GetString("date")
		return wire.EmployeeAdapter().Assign(NewContext(), args[0], args[1], GetActorID(), date)
	},
}

var employeeActivateCmd = &cobra.Command{
	Use:   "activate [employee-id]",
	Short: "Reactivate an employee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEntityID(args[0], "employee"); err != nil {
			return err
		}
		return wire.EmployeeAdapter().SetActive(NewContext(), args[0], true)
	},
}

var employeeDeactivateCmd = &cobra.Command{
	Use:   "deactivate [employee-id]",
	Short: "Deactivate an employee",
	Long:  "Deactivate an employee. Their salary history is kept; later salary changes skip them.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEntityID(args[0], "employee"); err != nil {
			return err
		}
		return wire.EmployeeAdapter().SetActive(NewContext(), args[0], false)
	},
}

// EmployeeCmd returns the employee command
func EmployeeCmd() *cobra.Command {
	employeeListCmd.Flags().StringP("position", "p", "", "Only employees currently on this position")
	employeeListCmd.Flags().BoolP("all", "a", false, "Include inactive employees")
	employeeAssignCmd.Flags().String("date", "", "Effective date YYYY-MM-DD (default: today)")

	employeeCmd.AddCommand(employeeListCmd)
	employeeCmd.AddCommand(employeeShowCmd)
	employeeCmd.AddCommand(employeeCreateCmd)
	employeeCmd.AddCommand(employeeAssignCmd)
	employeeCmd.AddCommand(employeeActivateCmd)
	employeeCmd.AddCommand(employeeDeactivateCmd)

	return employeeCmd
}
