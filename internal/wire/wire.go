// Package wire provides dependency injection for hrdesk.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	cliadapter "github.com/example/hrdesk/internal/adapters/cli"
	"github.com/example/hrdesk/internal/adapters/sqlite"
	"github.com/example/hrdesk/internal/app"
	"github.com/example/hrdesk/internal/config"
	"github.com/example/hrdesk/internal/db"
	"github.com/example/hrdesk/internal/logging"
	"github.com/example/hrdesk/internal/ports/primary"
)

// Options are the command-line settings that override loaded configuration.
type Options struct {
	ConfigFile string
	DBPath     string
	User       string
	Verbose    bool
	NoColor    bool
}

var (
	cfg     *config.Config
	cfgErr  error
	cfgOnce sync.Once

	positionService primary.PositionService
	employeeService primary.EmployeeService
	historyService  primary.SalaryHistoryService
	auditLogService primary.AuditLogService
	database        *sql.DB
	once            sync.Once
)

// Configure loads configuration once and sets up logging. Later calls return
// the first result.
func Configure(opts Options) (*config.Config, error) {
	cfgOnce.Do(func() {
		cfg, cfgErr = loadConfig(opts)
	})
	return cfg, cfgErr
}

func loadConfig(opts Options) (*config.Config, error) {
	c, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if err := c.ApplyOverrides(opts.DBPath, opts.User); err != nil {
		return nil, err
	}

	logCfg := &logging.Config{
		Level:   c.Log.Level,
		Format:  c.Log.Format,
		Output:  c.Log.Output,
		NoColor: opts.NoColor,
	}
	if opts.Verbose {
		logCfg.Level = "debug"
	}
	logging.Configure(logCfg)

	logging.Default().Debug().
		Str("db_path", c.DBPath).
		Str("user", c.User).
		Str("config_file", c.ConfigFile).
		Msg("configuration loaded")
	return c, nil
}

// Config returns the loaded configuration, loading defaults if Configure was
// never called.
func Config() *config.Config {
	c, err := Configure(Options{})
	if err != nil {
		logging.Default().Fatal().Err(err).Msg("failed to load configuration")
	}
	return c
}

// Database returns the shared database connection for the configured path.
func Database() (*sql.DB, error) {
	conn, err := db.GetDB(Config().DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return conn, nil
}

// PositionService returns the singleton PositionService instance.
func PositionService() primary.PositionService {
	once.Do(initServices)
	return positionService
}

// EmployeeService returns the singleton EmployeeService instance.
func EmployeeService() primary.EmployeeService {
	once.Do(initServices)
	return employeeService
}

// SalaryHistoryService returns the singleton SalaryHistoryService instance.
func SalaryHistoryService() primary.SalaryHistoryService {
	once.Do(initServices)
	return historyService
}

// AuditLogService returns the singleton AuditLogService instance.
func AuditLogService() primary.AuditLogService {
	once.Do(initServices)
	return auditLogService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	c := Config()

	var err error
	database, err = Database()
	if err != nil {
		logging.Default().Fatal().Err(err).Str("db_path", c.DBPath).Msg("failed to initialize database")
	}

	// Repository adapters (secondary ports) with the injected DB
	positionRepo := sqlite.NewPositionRepository(database)
	employeeRepo := sqlite.NewEmployeeRepository(database)
	historyRepo := sqlite.NewSalaryHistoryRepository(database)
	logRepo := sqlite.NewAuditLogRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(logRepo)

	executor := app.NewEffectExecutor(historyRepo, employeeRepo)
	reconciler := app.NewSalaryReconciler(employeeRepo, historyRepo, executor,
		app.WithConcurrency(c.Reconcile.Concurrency),
		app.WithTimeout(c.Reconcile.Timeout),
	)

	// Salary changes and assignments share one lock set
	locks := app.NewPositionLocks()

	positionService = app.NewPositionService(positionRepo, reconciler, logWriter, locks)
	employeeService = app.NewEmployeeService(employeeRepo, positionRepo, historyRepo, executor, logWriter, locks)
	historyService = app.NewSalaryHistoryService(historyRepo)
	auditLogService = app.NewAuditLogService(logRepo)
}

// PositionAdapter returns a new PositionAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func PositionAdapter() *cliadapter.PositionAdapter {
	return PositionAdapterWithOutput(os.Stdout)
}

// PositionAdapterWithOutput returns a new PositionAdapter writing to the given output.
func PositionAdapterWithOutput(out io.Writer) *cliadapter.PositionAdapter {
	return cliadapter.NewPositionAdapter(PositionService(), out)
}

// EmployeeAdapter returns a new EmployeeAdapter writing to stdout.
func EmployeeAdapter() *cliadapter.EmployeeAdapter {
	return cliadapter.NewEmployeeAdapter(EmployeeService(), SalaryHistoryService(), os.Stdout)
}

// HistoryAdapter returns a new HistoryAdapter writing to stdout.
func HistoryAdapter() *cliadapter.HistoryAdapter {
	return cliadapter.NewHistoryAdapter(SalaryHistoryService(), AuditLogService(), os.Stdout)
}
