package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/hrdesk/internal/ports/primary"
	"github.com/example/hrdesk/internal/wire"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect salary history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List salary history records, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		employeeID, _ := cmd.Flags().GetString("employee")
		positionID, _ := cmd.Flags().GetString("position")
		open, _ := cmd.Flags().GetBool("open")

		if err := validateEntityID(employeeID, "employee"); err != nil {
			return err
		}
		if err := validateEntityID(positionID, "position"); err != nil {
			return err
		}

		return wire.HistoryAdapter().List(NewContext(), primary.HistoryFilters{
			EmployeeID: employeeID,
			PositionID: positionID,
			OpenOnly:   open,
		})
	},
}

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	historyListCmd.Flags().StringP("employee", "e", "", "Filter by employee")
	historyListCmd.Flags().StringP("position", "p", "", "Filter by position")
	historyListCmd.Flags().Bool("open", false, "Only records still in effect")

	historyCmd.AddCommand(historyListCmd)
	return historyCmd
}
