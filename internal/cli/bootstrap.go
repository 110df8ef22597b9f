// Package cli provides the cobra commands for hrdesk.
package cli

import (
	gocontext "context"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/hrdesk/internal/ctxutil"
	"github.com/example/hrdesk/internal/logging"
	"github.com/example/hrdesk/internal/wire"
)

// globalFlags holds the persistent flags shared by every command.
var globalFlags struct {
	configFile string
	dbPath     string
	user       string
	verbose    bool
	noColor    bool
}

// globalActorID stores the acting user for the current CLI invocation.
// Set once at startup by Bootstrap.
var globalActorID string

// AddGlobalFlags registers the persistent flags on the root command.
func AddGlobalFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringVar(&globalFlags.configFile, "config", "", "Config file (default: ./.hrdesk.yaml or ~/.hrdesk.yaml)")
	flags.StringVar(&globalFlags.dbPath, "db", "", "Database path (default: ~/.hrdesk/hrdesk.db)")
	flags.StringVarP(&globalFlags.user, "user", "u", "", "Acting user ID recorded on history and audit entries")
	flags.BoolVarP(&globalFlags.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&globalFlags.noColor, "no-color", false, "Disable colored output")
}

// Bootstrap loads configuration and stores the acting user.
// It runs once per invocation as the root PersistentPreRunE.
func Bootstrap(cmd *cobra.Command, args []string) error {
	if globalFlags.noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	cfg, err := wire.Configure(wire.Options{
		ConfigFile: globalFlags.configFile,
		DBPath:     globalFlags.dbPath,
		User:       globalFlags.user,
		Verbose:    globalFlags.verbose,
		NoColor:    color.NoColor,
	})
	if err != nil {
		return err
	}
	if err := validateEntityID(cfg.User, "user"); err != nil {
		return err
	}

	globalActorID = cfg.User
	return nil
}

// GetActorID returns the acting user stored at startup.
func GetActorID() string {
	return globalActorID
}

// NewContext creates a context carrying the acting user and the configured logger.
// CLI commands should use this instead of context.Background() directly.
func NewContext() gocontext.Context {
	ctx := logging.WithLogger(gocontext.Background(), logging.Default())
	if globalActorID != "" {
		return ctxutil.WithActorID(ctx, globalActorID)
	}
	return ctx
}
