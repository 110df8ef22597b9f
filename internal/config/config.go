// Package config loads hrdesk configuration.
//
// Precedence, highest first: command-line overrides, HRDESK_* environment
// variables, .env/.env.local files, the YAML config file, defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	hrerrors "github.com/example/hrdesk/internal/errors"
)

const (
	// EnvPrefix is prepended to every environment variable hrdesk reads.
	EnvPrefix = "HRDESK"

	// DefaultUser is the acting user when none is configured.
	DefaultUser = "USR-001"

	DefaultReconcileTimeout     = 30 * time.Second
	DefaultReconcileConcurrency = 4
)

// Config represents the hrdesk configuration.
type Config struct {
	DBPath    string          `mapstructure:"db_path"`
	User      string          `mapstructure:"user"`
	Reconcile ReconcileConfig `mapstructure:"reconcile"`
	Log       LogConfig       `mapstructure:"log"`

	// ConfigFile is the file the values were read from, empty if none.
	ConfigFile string `mapstructure:"-"`
}

// ReconcileConfig bounds salary history reconciliation runs.
type ReconcileConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	Concurrency int           `mapstructure:"concurrency"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Load reads configuration. An empty configFile searches for .hrdesk.yaml in
// the working directory and then the home directory; a missing file is not an error.
func Load(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName(".hrdesk")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyOverrides lets command-line flags win over every other source.
// Empty values leave the loaded setting untouched.
func (c *Config) ApplyOverrides(dbPath, user string) error {
	if dbPath != "" {
		c.DBPath = dbPath
	}
	if user != "" {
		c.User = user
	}
	return c.normalize()
}

// SaveConfig writes cfg as YAML to path, creating parent directories.
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	v := viper.New()
	v.Set("db_path", cfg.DBPath)
	v.Set("user", cfg.User)
	v.Set("reconcile.timeout", cfg.Reconcile.Timeout.String())
	v.Set("reconcile.concurrency", cfg.Reconcile.Concurrency)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("log.output", cfg.Log.Output)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// DefaultDBPath returns ~/.hrdesk/hrdesk.db.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".hrdesk", "hrdesk.db"), nil
}

// DefaultConfigPath returns ~/.hrdesk.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".hrdesk.yaml"), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_path", "")
	v.SetDefault("user", DefaultUser)
	v.SetDefault("reconcile.timeout", DefaultReconcileTimeout)
	v.SetDefault("reconcile.concurrency", DefaultReconcileConcurrency)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "auto")
	v.SetDefault("log.output", "stderr")
}

func (c *Config) normalize() error {
	if c.DBPath == "" {
		path, err := DefaultDBPath()
		if err != nil {
			return err
		}
		c.DBPath = path
	}
	if strings.HasPrefix(c.DBPath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		c.DBPath = filepath.Join(home, c.DBPath[2:])
	}
	if strings.TrimSpace(c.User) == "" {
		return hrerrors.NewValidationError("user", c.User, "acting user cannot be empty")
	}
	if c.Reconcile.Timeout <= 0 {
		return hrerrors.NewValidationError("reconcile.timeout", c.Reconcile.Timeout, "must be positive")
	}
	if c.Reconcile.Concurrency < 1 {
		return hrerrors.NewValidationError("reconcile.concurrency", c.Reconcile.Concurrency, "must be at least 1")
	}
	return nil
}

// loadEnvFiles loads .env then .env.local; already-set variables win.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}
