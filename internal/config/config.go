package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for mockbank
type Config struct {
	// Ledger state and tool behavior
	Ledger LedgerConfig `mapstructure:"ledger"`

	// SQL sink for export/import and the server's snapshot endpoint
	Database DatabaseConfig `mapstructure:"database"`

	// HTTP tool server
	Server ServerConfig `mapstructure:"server"`

	// Concurrent workload simulation
	Simulate SimulateConfig `mapstructure:"simulate"`

	Logging LoggingConfig `mapstructure:"logging"`

	// Console output
	Verbose bool `mapstructure:"verbose"`
	NoColor bool `mapstructure:"no_color"`
}

// LedgerConfig controls where ledger state comes from and goes to
type LedgerConfig struct {
	// Snapshot file (.json, .yaml, .yml). Empty = embedded seed data.
	DBPath string `mapstructure:"db_path"`

	// Write state back to DBPath after a write command
	SaveOnExit bool `mapstructure:"save_on_exit"`

	// Page size for transaction history when the caller gives none
	HistoryLimit int `mapstructure:"history_limit"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	// Driver: mysql or sqlite
	Driver string `mapstructure:"driver"`

	// Connection string (DSN)
	// mysql:  user:password@tcp(host:port)/database
	// sqlite: file path or file: URI
	DSN string `mapstructure:"dsn"`

	// Connection pool settings
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr string `mapstructure:"addr"`

	// gin mode: debug, release or test
	Mode string `mapstructure:"mode"`

	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// SimulateConfig holds workload simulation settings
type SimulateConfig struct {
	// Random seed for reproducibility (0 = random)
	Seed int64 `mapstructure:"seed"`

	// Concurrent workers
	Workers int `mapstructure:"workers"`

	// Operations per worker
	Operations int `mapstructure:"operations"`

	// Reads per write
	ReadWriteRatio float64 `mapstructure:"read_write_ratio"`

	// Largest random amount, in currency units
	MaxAmount float64 `mapstructure:"max_amount"`

	// Delay between a worker's operations (0 = none)
	ThinkTime time.Duration `mapstructure:"think_time"`

	// Relative weights of the write operations
	Mix OperationMix `mapstructure:"mix"`
}

// OperationMix weights the write operations; weights need not sum to 1
type OperationMix struct {
	Deposit     float64 `mapstructure:"deposit"`
	Withdrawal  float64 `mapstructure:"withdrawal"`
	Transfer    float64 `mapstructure:"transfer"`
	LoanPayment float64 `mapstructure:"loan_payment"`
	CardPayment float64 `mapstructure:"card_payment"`
	Freeze      float64 `mapstructure:"freeze"`
}

// Total is the sum of all weights.
func (m OperationMix) Total() float64 {
	return m.Deposit + m.Withdrawal + m.Transfer + m.LoanPayment + m.CardPayment + m.Freeze
}

// LoggingConfig holds structured logging settings
type LoggingConfig struct {
	// debug, info, warn, error
	Level string `mapstructure:"level"`

	// Human-readable console output instead of JSON
	Development bool `mapstructure:"development"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Ledger: LedgerConfig{
			DBPath:       "",
			SaveOnExit:   false,
			HistoryLimit: DefaultHistoryLimit,
		},
		Database: DatabaseConfig{
			Driver:          DefaultDriver,
			MaxOpenConns:    DefaultMaxOpenConns,
			MaxIdleConns:    DefaultMaxIdleConns,
			ConnMaxLifetime: DefaultConnMaxLifetime,
			ConnMaxIdleTime: DefaultConnMaxIdleTime,
		},
		Server: ServerConfig{
			Addr:            DefaultServerAddr,
			Mode:            "release",
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Simulate: SimulateConfig{
			Seed:           0,
			Workers:        DefaultWorkers,
			Operations:     DefaultOperations,
			ReadWriteRatio: DefaultReadWriteRatio,
			MaxAmount:      DefaultMaxAmount,
			ThinkTime:      0,
			Mix: OperationMix{
				Deposit:     MixDeposit,
				Withdrawal:  MixWithdrawal,
				Transfer:    MixTransfer,
				LoanPayment: MixLoanPayment,
				CardPayment: MixCardPayment,
				Freeze:      MixFreeze,
			},
		},
		Logging: LoggingConfig{
			Level:       "warn",
			Development: false,
		},
		Verbose: false,
	}
}

// SetDefaults registers every default with v so config files and
// MOCKBANK_* environment variables can override any key.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("ledger.db_path", d.Ledger.DBPath)
	v.SetDefault("ledger.save_on_exit", d.Ledger.SaveOnExit)
	v.SetDefault("ledger.history_limit", d.Ledger.HistoryLimit)

	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.dsn", d.Database.DSN)
	v.SetDefault("database.max_open_conns", d.Database.MaxOpenConns)
	v.SetDefault("database.max_idle_conns", d.Database.MaxIdleConns)
	v.SetDefault("database.conn_max_lifetime", d.Database.ConnMaxLifetime)
	v.SetDefault("database.conn_max_idle_time", d.Database.ConnMaxIdleTime)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)

	v.SetDefault("simulate.seed", d.Simulate.Seed)
	v.SetDefault("simulate.workers", d.Simulate.Workers)
	v.SetDefault("simulate.operations", d.Simulate.Operations)
	v.SetDefault("simulate.read_write_ratio", d.Simulate.ReadWriteRatio)
	v.SetDefault("simulate.max_amount", d.Simulate.MaxAmount)
	v.SetDefault("simulate.think_time", d.Simulate.ThinkTime)
	v.SetDefault("simulate.mix.deposit", d.Simulate.Mix.Deposit)
	v.SetDefault("simulate.mix.withdrawal", d.Simulate.Mix.Withdrawal)
	v.SetDefault("simulate.mix.transfer", d.Simulate.Mix.Transfer)
	v.SetDefault("simulate.mix.loan_payment", d.Simulate.Mix.LoanPayment)
	v.SetDefault("simulate.mix.card_payment", d.Simulate.Mix.CardPayment)
	v.SetDefault("simulate.mix.freeze", d.Simulate.Mix.Freeze)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.development", d.Logging.Development)

	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("no_color", d.NoColor)
}

// Load reads configuration from the global viper instance into a Config
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads configuration from v into a Config
func LoadFrom(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []string

	// Ledger
	if c.Ledger.HistoryLimit <= 0 {
		errs = append(errs, "ledger.history_limit must be positive")
	}
	if c.Ledger.SaveOnExit && c.Ledger.DBPath == "" {
		errs = append(errs, "ledger.save_on_exit requires ledger.db_path")
	}

	// Database pool settings
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("database.driver must be mysql or sqlite (got %q)", c.Database.Driver))
	}
	if c.Database.MaxOpenConns < 1 {
		errs = append(errs, "database.max_open_conns must be >= 1")
	}
	if c.Database.MaxIdleConns < 0 {
		errs = append(errs, "database.max_idle_conns must be >= 0")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, "database.max_idle_conns should not exceed max_open_conns")
	}

	// Server
	if c.Server.Addr == "" {
		errs = append(errs, "server.addr must not be empty")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Sprintf("server.mode must be debug, release or test (got %q)", c.Server.Mode))
	}

	// Simulation
	if c.Simulate.Workers <= 0 {
		errs = append(errs, "simulate.workers must be positive")
	}
	if c.Simulate.Operations <= 0 {
		errs = append(errs, "simulate.operations must be positive")
	}
	if c.Simulate.ReadWriteRatio < 0 {
		errs = append(errs, "simulate.read_write_ratio must be non-negative")
	}
	if c.Simulate.MaxAmount < 0.01 {
		errs = append(errs, "simulate.max_amount must be at least 0.01")
	}
	if c.Simulate.ThinkTime < 0 {
		errs = append(errs, "simulate.think_time must be non-negative")
	}
	m := c.Simulate.Mix
	if m.Deposit < 0 || m.Withdrawal < 0 || m.Transfer < 0 || m.LoanPayment < 0 || m.CardPayment < 0 || m.Freeze < 0 {
		errs = append(errs, "simulate.mix weights must be non-negative")
	} else if m.Total() == 0 {
		errs = append(errs, "simulate.mix must have at least one positive weight")
	}

	// Logging
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("logging.level must be debug, info, warn or error (got %q)", c.Logging.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", joinErrors(errs))
	}

	return nil
}

// joinErrors joins error messages with newline and bullet points
func joinErrors(errs []string) string {
	return strings.Join(errs, "\n  - ")
}
