package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/hrdesk/internal/ports/primary"
	"github.com/example/hrdesk/internal/wire"
)

var positionCmd = &cobra.Command{
	Use:     "position",
	Aliases: []string{"pos"},
	Short:   "Manage positions and their base salaries",
}

var positionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List positions sorted by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		all, _ := cmd.Flags().GetBool("all")
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")

		return wire.PositionAdapter().List(NewContext(), primary.PositionFilters{
			Search:          search,
			IncludeInactive: all,
			Page:            page,
			PageSize:        pageSize,
		})
	},
}

var positionShowCmd = &cobra.Command{
	Use:   "show [position-id]",
	Short: "Show position details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEntityID(args[0], "position"); err != nil {
			return err
		}
		_, err := wire.PositionAdapter().Show(NewContext(), args[0])
		return err
	},
}

var positionCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		salary, _ := cmd.Flags().GetString("salary")
		description, _ := cmd.Flags().GetString("description")
		return wire.PositionAdapter().Create(NewContext(), args[0], description, salary)
	},
}

var positionSetSalaryCmd = &cobra.Command{
	Use:   "set-salary [position-id] [amount]",
	Short: "Change a position's base salary and update employee histories",
	Long: `Commit a new base salary for the position. When the amount changed and is
positive, every active employee on the position gets their open salary record
closed and a new one opened at the new amount.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEntityID(args[0], "position"); err != nil {
			return err
		}
		date, _ := cmd.Flags().GetString("date")
		return wire.PositionAdapter().SetSalary(NewContext(), args[0], args[1], GetActorID(), date)
	},
}

var positionActivateCmd = &cobra.Command{
	Use:   "activate [position-id]",
	Short: "Reactivate a position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEntityID(args[0], "position"); err != nil {
			return err
		}
		return wire.PositionAdapter().Activate(NewContext(), args[0])
	},
}

var positionDeactivateCmd = &cobra.Command{
	Use:   "deactivate [position-id]",
	Short: "Deactivate a position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEntityID(args[0], "position"); err != nil {
			return err
		}
		return wire.PositionAdapter().Deactivate(NewContext(), args[0])
	},
}

// PositionCmd returns the position command
func PositionCmd() *cobra.Command {
	positionListCmd.Flags().StringP("search", "s", "", "Filter by name, description or salary")
	positionListCmd.Flags().BoolP("all", "a", false, "Include inactive positions")
	positionListCmd.Flags().Int("page", 1, "Page number")
	positionListCmd.Flags().Int("page-size", 20, "Positions per page")
	positionCreateCmd.Flags().String("salary", "0", "Base salary")
	positionCreateCmd.Flags().StringP("description", "d", "", "Position description")
	positionSetSalaryCmd.Flags().String("date", "", "Effective date YYYY-MM-DD (default: today)")

	positionCmd.AddCommand(positionListCmd)
	positionCmd.AddCommand(positionShowCmd)
	positionCmd.AddCommand(positionCreateCmd)
	positionCmd.AddCommand(positionSetSalaryCmd)
	positionCmd.AddCommand(positionActivateCmd)
	positionCmd.AddCommand(positionDeactivateCmd)

	return positionCmd
}

// ReconcileCmd returns the reconcile command
func ReconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile [position-id]",
		Short: "Re-run salary history reconciliation for a position",
		Long: `Bring the open salary records of every active employee on the position in
line with the given salary (default: the position's current base salary).
Running it twice on the same day changes nothing the second time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateEntityID(args[0], "position"); err != nil {
				return err
			}
			salary, _ := cmd.Flags().GetString("salary")
			date, _ := cmd.Flags().GetString("date")
			if cmd.Flags().Changed("salary") && salary == "" {
				return fmt.Errorf("--salary cannot be empty")
			}
			return wire.PositionAdapter().Reconcile(NewContext(), args[0], salary, GetActorID(), date)
		},
	}
	cmd.Flags().String("salary", "", "Salary to reconcile to (default: current base salary)")
	cmd.Flags().String("date", "", "Effective date YYYY-MM-DD (default: today)")
	return cmd
}
