package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/hrdesk/internal/cli"
	"github.com/example/hrdesk/internal/db"
	"github.com/example/hrdesk/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "hrdesk",
		Short:   "hrdesk - salary administration back office",
		Version: version.String(),
		Long: `hrdesk manages positions, employees and their salary history.
Changing a position's base salary updates the salary history of every
active employee holding it.`,
		PersistentPreRunE: cli.Bootstrap,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	cli.AddGlobalFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.PositionCmd())
	rootCmd.AddCommand(cli.EmployeeCmd())
	rootCmd.AddCommand(cli.HistoryCmd())
	rootCmd.AddCommand(cli.ReconcileCmd())
	rootCmd.AddCommand(cli.LogCmd())

	err := rootCmd.Execute()
	if cerr := db.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
