package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/Lootkeeper_Go/internal/domain"
)

// InventoryTx defines the item ledger operations available inside a transaction.
// Lookups that find nothing return (nil, nil).
type InventoryTx interface {
	// Stacked items
	FindStack(ctx context.Context, ownerID string, itemID int) (*domain.StackEntry, error)
	// AddToStack atomically adds delta to an existing stack and returns the new quantity.
	// It returns (0, false, nil) when no stack exists.
	AddToStack(ctx context.Context, ownerID string, itemID, delta int) (int, bool, error)
	// UpsertStack creates the stack with quantity delta or atomically increments it
	UpsertStack(ctx context.Context, ownerID string, itemID, delta int) (int, error)
	DeleteStack(ctx context.Context, ownerID string, itemID int) error
	ListStacks(ctx context.Context, ownerID string) ([]domain.StackEntry, error)

	// Unique instances
	FindInstance(ctx context.Context, worldID uuid.UUID) (*domain.ItemInstance, error)
	FindInstanceByOwnerItem(ctx context.Context, ownerID string, itemID int) (*domain.ItemInstance, error)
	InsertInstance(ctx context.Context, instance *domain.ItemInstance) error
	ReassignOwner(ctx context.Context, worldID uuid.UUID, ownerID *string) error
	DeleteInstance(ctx context.Context, worldID uuid.UUID) error
	ListInstances(ctx context.Context, ownerID string) ([]domain.ItemInstance, error)
}

// WalletTx defines the currency ledger operations available inside a transaction
type WalletTx interface {
	// FindWallet returns the wallet row locked for update, or nil
	FindWallet(ctx context.Context, ownerID string, currencyID int) (*domain.Wallet, error)
	UpsertWallet(ctx context.Context, wallet *domain.Wallet) error
}

// CatalogReader resolves templates and currencies. Implemented by both the
// store and its transactions.
type CatalogReader interface {
	GetItemByID(ctx context.Context, id int) (*domain.Item, error)
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
}

// LedgerTx is a single storage transaction spanning items and wallets
type LedgerTx interface {
	Tx
	InventoryTx
	WalletTx
	CatalogReader
}

// Ledger defines the interface for ledger persistence
type Ledger interface {
	BeginTx(ctx context.Context) (LedgerTx, error)
}
