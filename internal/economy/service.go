package economy

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/Lootkeeper_Go/internal/concurrency"
	"github.com/osse101/Lootkeeper_Go/internal/domain"
	"github.com/osse101/Lootkeeper_Go/internal/loot"
	"github.com/osse101/Lootkeeper_Go/internal/repository"
)

// TradeRequest is a buy or sell of Quantity units of ItemID. WorldID names
// a specific unique instance; PricePerUnit is only honored by Buy.
type TradeRequest struct {
	OwnerID      string     `json:"owner_id" validate:"required,max=64"`
	ItemID       int        `json:"item_id" validate:"required,min=1"`
	Quantity     int        `json:"quantity"`
	PricePerUnit int64      `json:"price_per_unit" validate:"gte=0"`
	WorldID      *uuid.UUID `json:"world_id,omitempty"`
}

// Receipt describes a committed trade
type Receipt struct {
	OwnerID   string      `json:"owner_id"`
	ItemID    int         `json:"item_id"`
	Quantity  int         `json:"quantity"`
	UnitPrice int64       `json:"unit_price"`
	Total     int64       `json:"total"`
	Currency  string      `json:"currency"`
	Balance   int64       `json:"balance"`
	WorldIDs  []uuid.UUID `json:"world_ids,omitempty"`
}

// LootAward describes the rewards granted for defeating a monster
type LootAward struct {
	MonsterID int                    `json:"monster_id"`
	XPReward  int                    `json:"xp_reward"`
	Items     []domain.Grant         `json:"items"`
	Currency  []domain.CurrencyGrant `json:"currency"`
}

// Catalog is the read-only catalog access the gateway needs
type Catalog interface {
	GetItemByID(ctx context.Context, id int) (*domain.Item, error)
	GetMonsterByID(ctx context.Context, id int) (*domain.Monster, error)
}

// Service is the transaction gateway: every operation applies all of its
// inventory and wallet changes in one storage transaction or none of them.
type Service interface {
	GrantBatch(ctx context.Context, ownerID string, grants []domain.Grant) error
	Buy(ctx context.Context, req TradeRequest) (*Receipt, error)
	Sell(ctx context.Context, req TradeRequest) (*Receipt, error)
	AwardLoot(ctx context.Context, ownerID string, monsterID int) (*LootAward, error)
}

type service struct {
	repo          repository.Ledger
	catalog       Catalog
	resolver      *loot.Resolver
	locks         *concurrency.LockManager
	tradeCurrency string
}

// NewService creates a new transaction gateway. Share locks with the
// inventory and wallet services so all three serialize on the same owner.
// An empty tradeCurrency defaults to GOLD.
func NewService(repo repository.Ledger, catalog Catalog, resolver *loot.Resolver, locks *concurrency.LockManager, tradeCurrency string) Service {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	if tradeCurrency == "" {
		tradeCurrency = domain.CurrencyGold
	}
	return &service{
		repo:          repo,
		catalog:       catalog,
		resolver:      resolver,
		locks:         locks,
		tradeCurrency: tradeCurrency,
	}
}

// withTx holds the owner lock for the whole transaction and commits only
// when operation succeeds.
func (s *service) withTx(ctx context.Context, ownerID string, operation func(tx repository.LedgerTx) error) error {
	unlock := s.locks.Lock(concurrency.OwnerKey(ownerID))
	defer unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := operation(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}
	return nil
}

func (s *service) getItem(ctx context.Context, itemID int) (*domain.Item, error) {
	item, err := s.catalog.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetItemFailed, err)
	}
	if item == nil {
		return nil, fmt.Errorf(ErrMsgItemNotFoundFmt, domain.ErrItemNotFound, itemID)
	}
	return item, nil
}
