package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/hrdesk/internal/ports/primary"
	"github.com/example/hrdesk/internal/wire"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit trail",
	Long:  "View and prune the audit trail of position, employee and salary changes",
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent audit entries",
	Long:  "Show recent audit entries (default 50)",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		entityType, _ := cmd.Flags().GetString("type")
		entityID, _ := cmd.Flags().GetString("id")
		actorID, _ := cmd.Flags().GetString("actor")
		action, _ := cmd.Flags().GetString("action")
		runID, _ := cmd.Flags().GetString("run")

		if limit <= 0 {
			limit = 50
		}

		return wire.HistoryAdapter().Logs(NewContext(), primary.LogFilters{
			EntityType: entityType,
			EntityID:   entityID,
			ActorID:    actorID,
			Action:     action,
			RunID:      runID,
			Limit:      limit,
		})
	},
}

var logPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old audit entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("older-than")
		return wire.HistoryAdapter().Prune(NewContext(), days)
	},
}

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	logListCmd.Flags().IntP("limit", "n", 50, "Number of entries to show")
	logListCmd.Flags().StringP("type", "t", "", "Filter by entity type (position, employee)")
	logListCmd.Flags().String("id", "", "Filter by entity ID")
	logListCmd.Flags().StringP("actor", "a", "", "Filter by acting user")
	logListCmd.Flags().String("action", "", "Filter by action (create, update, delete)")
	logListCmd.Flags().String("run", "", "Show only entries written by one reconciliation run")
	logPruneCmd.Flags().Int("older-than", 90, "Delete entries older than this many days")

	logCmd.AddCommand(logListCmd)
	logCmd.AddCommand(logPruneCmd)
	return logCmd
}
