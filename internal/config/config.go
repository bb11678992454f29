package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Environment string
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Port        int

	StorageDriver     string
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int32
	DBMaxConnIdle     time.Duration
	DBMaxConnLifetime time.Duration
	RunMigrations     bool

	CatalogPath      string
	CatalogCacheSize int
	CatalogCacheTTL  time.Duration

	TradeCurrency       string
	RNGSeed             uint64
	DefaultSlotCapacity int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment:   getEnv("ENVIRONMENT", DefaultEnvironment),
		LogLevel:      getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:     getEnv("LOG_FORMAT", DefaultLogFormat),
		ServiceName:   getEnv("SERVICE_NAME", DefaultServiceName),
		Version:       getEnv("VERSION", DefaultVersion),
		StorageDriver: getEnv("STORAGE_DRIVER", StorageDriverPostgres),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBName:        getEnv("DB_NAME", "lootkeeper"),
		CatalogPath:   getEnv("CATALOG_PATH", ConfigPathCatalog),
		TradeCurrency: getEnv("TRADE_CURRENCY", DefaultTradeCurrency),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", DefaultPort); err != nil {
		return nil, err
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", DefaultDBMaxConns)
	if err != nil {
		return nil, err
	}
	cfg.DBMaxConns = int32(maxConns) //nolint:gosec // bounded by config validation below
	if cfg.DBMaxConnIdle, err = getEnvDuration("DB_MAX_CONN_IDLE", DefaultDBMaxConnIdle); err != nil {
		return nil, err
	}
	if cfg.DBMaxConnLifetime, err = getEnvDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime); err != nil {
		return nil, err
	}
	if cfg.RunMigrations, err = getEnvBool("RUN_MIGRATIONS", true); err != nil {
		return nil, err
	}

	if cfg.CatalogCacheSize, err = getEnvInt("CATALOG_CACHE_SIZE", DefaultCatalogCacheSize); err != nil {
		return nil, err
	}
	if cfg.CatalogCacheTTL, err = getEnvDuration("CATALOG_CACHE_TTL", DefaultCatalogCacheTTL); err != nil {
		return nil, err
	}

	seedStr := getEnv("RNG_SEED", "0")
	if cfg.RNGSeed, err = strconv.ParseUint(seedStr, 10, 64); err != nil {
		return nil, fmt.Errorf("invalid RNG_SEED value: %w", err)
	}

	if cfg.DefaultSlotCapacity, err = getEnvInt("DEFAULT_SLOT_CAPACITY", DefaultSlotCapacity); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER value %q: must be %q or %q", c.StorageDriver, StorageDriverPostgres, StorageDriverMemory)
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("invalid DB_MAX_CONNS value %d: must be at least 1", c.DBMaxConns)
	}
	if c.DefaultSlotCapacity < 0 {
		return fmt.Errorf("invalid DEFAULT_SLOT_CAPACITY value %d: must not be negative", c.DefaultSlotCapacity)
	}
	if c.CatalogCacheSize < 1 {
		return fmt.Errorf("invalid CATALOG_CACHE_SIZE value %d: must be at least 1", c.CatalogCacheSize)
	}
	if c.TradeCurrency == "" {
		return fmt.Errorf("TRADE_CURRENCY must not be empty")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return b, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// UsesPostgres reports whether the configured storage driver is PostgreSQL
func (c *Config) UsesPostgres() bool {
	return c.StorageDriver == StorageDriverPostgres
}
