package main

import "time"

const shutdownTimeout = 10 * time.Second

// Error messages
const (
	ErrMsgConfigFailed     = "failed to load configuration: %w"
	ErrMsgStorageFailed    = "failed to open storage: %w"
	ErrMsgCatalogFailed    = "failed to sync catalog: %w"
	ErrMsgSeedFailed       = "failed to seed random source: %w"
	ErrMsgTradeCurrencyFmt = "trade currency %s is not an active catalog currency"
)

// Log messages
const (
	LogMsgStarting       = "Lootkeeper starting"
	LogMsgReady          = "Ledgers ready"
	LogMsgShuttingDown   = "Shutting down"
	LogMsgMemoryStore    = "Using in-memory storage; ledger state is lost on exit"
	LogMsgMigrationsDone = "Migrations complete"
	LogMsgCatalogSynced  = "Catalog synced"
	LogMsgReloading      = "Reloading catalog"
	LogMsgReloadFailed   = "Catalog reload failed"
	LogMsgEnvWarning     = "Environment warning"
	LogMsgServerFailed   = "Ops server failed"
)
