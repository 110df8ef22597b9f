package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/hrdesk/internal/config"
	"github.com/example/hrdesk/internal/db"
	"github.com/example/hrdesk/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the hrdesk database",
		Long:  `Create the hrdesk database (default ~/.hrdesk/hrdesk.db) and bring its schema up to date.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			fmt.Printf("Initializing hrdesk database at %s\n", cfg.DBPath)

			conn, err := wire.Database()
			if err != nil {
				return err
			}
			fmt.Println("✓ Database initialized successfully")

			seed, _ := cmd.Flags().GetBool("seed")
			if seed {
				if err := db.SeedFixtures(conn); err != nil {
					return fmt.Errorf("failed to seed fixtures: %w", err)
				}
				fmt.Println("✓ Sample positions, employees and salary history loaded")
			}

			writeConfig, _ := cmd.Flags().GetBool("write-config")
			if writeConfig {
				path, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				if err := config.SaveConfig(path, cfg); err != nil {
					return err
				}
				fmt.Printf("✓ Config written to %s\n", path)
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  hrdesk position create \"Welder\" --salary 2500")
			fmt.Println("  hrdesk employee create Ada Lovelace")
			fmt.Println("  hrdesk employee assign EMP-001 POS-001")

			return nil
		},
	}
	cmd.Flags().Bool("seed", false, "Load sample data")
	cmd.Flags().Bool("write-config", false, "Write the effective configuration to ~/.hrdesk.yaml")
	return cmd
}
