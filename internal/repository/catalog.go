package repository

import (
	"context"

	"github.com/osse101/Lootkeeper_Go/internal/domain"
)

// Catalog defines the interface for catalog configuration persistence
type Catalog interface {
	CatalogReader

	// Item operations
	GetAllItems(ctx context.Context) ([]domain.Item, error)
	GetItemByCode(ctx context.Context, code string) (*domain.Item, error)
	UpsertItem(ctx context.Context, item *domain.Item) (int, error)

	// Currency operations
	GetAllCurrencies(ctx context.Context) ([]domain.Currency, error)
	GetCurrencyByID(ctx context.Context, id int) (*domain.Currency, error)
	UpsertCurrency(ctx context.Context, currency *domain.Currency) (int, error)

	// Monster operations
	GetMonsterByID(ctx context.Context, id int) (*domain.Monster, error)
	GetMonsterByCode(ctx context.Context, code string) (*domain.Monster, error)
	UpsertMonster(ctx context.Context, monster *domain.Monster) (int, error)
	ReplaceDropTable(ctx context.Context, monsterID int, drops []domain.DropTableEntry) error
}

// Store is the full persistence surface used by the application
type Store interface {
	Ledger
	Catalog
}
