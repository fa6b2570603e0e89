// Package config loads mockbank settings from flags, MOCKBANK_* environment
// variables and an optional config file. The constants below are the
// compile-time defaults.
package config

import "time"

// =============================================================================
// LEDGER
// =============================================================================

const (
	// DefaultHistoryLimit is the transaction history page size
	DefaultHistoryLimit = 10

	// EnvPrefix prefixes environment overrides (MOCKBANK_SERVER_ADDR, ...)
	EnvPrefix = "MOCKBANK"
)

// =============================================================================
// SQL SINK
// =============================================================================

const (
	// DefaultDriver needs no external server
	DefaultDriver = "sqlite"

	DefaultMaxOpenConns    = 10
	DefaultMaxIdleConns    = 2
	DefaultConnMaxLifetime = 5 * time.Minute
	DefaultConnMaxIdleTime = 1 * time.Minute
)

// =============================================================================
// HTTP SERVER
// =============================================================================

const (
	DefaultServerAddr      = "127.0.0.1:8080"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

// =============================================================================
// SIMULATION
// =============================================================================

// Workload size
const (
	// DefaultWorkers is the number of concurrent workers
	DefaultWorkers = 8

	// DefaultOperations is operations per worker
	DefaultOperations = 500

	// DefaultReadWriteRatio is reads per write operation (3.0 = 3 reads per 1 write)
	DefaultReadWriteRatio = 3.0

	// DefaultMaxAmount caps random amounts, in currency units
	DefaultMaxAmount = 500.0
)

// Write mix weights
const (
	MixDeposit     = 0.30
	MixWithdrawal  = 0.25
	MixTransfer    = 0.25
	MixLoanPayment = 0.08
	MixCardPayment = 0.08
	MixFreeze      = 0.04
)
