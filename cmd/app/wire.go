package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Lootkeeper_Go/internal/catalog"
	"github.com/osse101/Lootkeeper_Go/internal/concurrency"
	"github.com/osse101/Lootkeeper_Go/internal/config"
	"github.com/osse101/Lootkeeper_Go/internal/database"
	"github.com/osse101/Lootkeeper_Go/internal/database/memory"
	"github.com/osse101/Lootkeeper_Go/internal/database/postgres"
	"github.com/osse101/Lootkeeper_Go/internal/economy"
	"github.com/osse101/Lootkeeper_Go/internal/inventory"
	"github.com/osse101/Lootkeeper_Go/internal/loot"
	"github.com/osse101/Lootkeeper_Go/internal/random"
	"github.com/osse101/Lootkeeper_Go/internal/repository"
	"github.com/osse101/Lootkeeper_Go/internal/wallet"
)

// App holds the wired ledgers and the infrastructure they run on
type App struct {
	Store     repository.Store
	Pool      *pgxpool.Pool
	Loader    catalog.Loader
	Catalog   *catalog.Cache
	Inventory inventory.Service
	Wallet    wallet.Service
	Economy   economy.Service
	Seed      uint64

	// SlotCapacity pads ListHoldings for owners without their own capacity
	SlotCapacity int
}

// Close releases the database pool, if any
func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}

// DBPool returns the pool for readiness checks. It is a nil interface, not a
// typed nil, when running on the memory store.
func (a *App) DBPool() database.Pool {
	if a.Pool == nil {
		return nil
	}
	return a.Pool
}

// openStore picks the storage driver and runs migrations for postgres
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, *pgxpool.Pool, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		slog.Default().Warn(LogMsgMemoryStore)
		return memory.NewStore(), nil, nil
	}

	pool, err := database.NewPool(database.ConnString(cfg), int(cfg.DBMaxConns), cfg.DBMaxConnIdle, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, nil, err
	}
	if cfg.RunMigrations {
		applied, err := database.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		slog.Default().Info(LogMsgMigrationsDone, "applied", applied)
	}
	return postgres.NewStore(pool), pool, nil
}

// wire builds the application: storage, catalog sync, cache, RNG and the
// ledger services sharing one lock manager
func wire(ctx context.Context, cfg *config.Config) (*App, error) {
	store, pool, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgStorageFailed, err)
	}
	app := &App{Store: store, Pool: pool, Loader: catalog.NewLoader(), SlotCapacity: cfg.DefaultSlotCapacity}

	if err := syncCatalog(ctx, app, cfg.CatalogPath); err != nil {
		app.Close()
		return nil, err
	}
	app.Catalog = catalog.NewCache(store, cfg.CatalogCacheSize, cfg.CatalogCacheTTL)

	tradeCurrency, err := app.Catalog.GetCurrencyByCode(ctx, cfg.TradeCurrency)
	if err != nil {
		app.Close()
		return nil, err
	}
	if tradeCurrency == nil || !tradeCurrency.IsActive {
		app.Close()
		return nil, fmt.Errorf(ErrMsgTradeCurrencyFmt, cfg.TradeCurrency)
	}

	source, err := random.NewSourceFromConfig(cfg.RNGSeed)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf(ErrMsgSeedFailed, err)
	}
	app.Seed = source.Seed()

	locks := concurrency.NewLockManager()
	app.Inventory = inventory.NewService(store, locks)
	app.Wallet = wallet.NewService(store, locks)
	resolver := loot.NewResolver(app.Catalog, app.Inventory, source)
	app.Economy = economy.NewService(store, app.Catalog, resolver, locks, cfg.TradeCurrency)

	return app, nil
}

// syncCatalog loads the catalog file and writes it to storage. An empty
// path uses the catalog embedded in the binary.
func syncCatalog(ctx context.Context, app *App, path string) error {
	cfg, err := app.Loader.Load(ctx, path)
	if err != nil {
		return fmt.Errorf(ErrMsgCatalogFailed, err)
	}
	result, err := app.Loader.SyncToStore(ctx, cfg, app.Store)
	if err != nil {
		return fmt.Errorf(ErrMsgCatalogFailed, err)
	}
	slog.Default().Info(LogMsgCatalogSynced,
		"version", cfg.Version,
		"items", result.ItemsSynced,
		"currencies", result.CurrenciesSynced,
		"monsters", result.MonstersSynced)
	return nil
}

// reloadCatalog re-syncs the catalog and drops every cached entry
func reloadCatalog(ctx context.Context, app *App, path string) error {
	if err := syncCatalog(ctx, app, path); err != nil {
		return err
	}
	app.Catalog.Purge(ctx)
	return nil
}
