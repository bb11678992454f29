package config

import "time"

const (
	// Configuration file paths
	ConfigPathCatalog       = "configs/catalog.json"
	ConfigPathCatalogSchema = "configs/schemas/catalog.schema.json"
)

// Storage drivers
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Defaults
const (
	DefaultEnvironment       = "dev"
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultServiceName       = "lootkeeper"
	DefaultVersion           = "dev"
	DefaultPort              = 8080
	DefaultDBMaxConns        = 10
	DefaultDBMaxConnIdle     = 30 * time.Minute
	DefaultDBMaxConnLifetime = time.Hour
	DefaultCatalogCacheSize  = 512
	DefaultCatalogCacheTTL   = 10 * time.Minute
	DefaultTradeCurrency     = "GOLD"
	DefaultSlotCapacity      = 24
)
