package loot

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/osse101/Lootkeeper_Go/internal/domain"
	"github.com/osse101/Lootkeeper_Go/internal/logger"
	"github.com/osse101/Lootkeeper_Go/internal/metrics"
	"github.com/osse101/Lootkeeper_Go/internal/random"
)

// Catalog is the read-only catalog access the resolver needs
type Catalog interface {
	GetItemByID(ctx context.Context, id int) (*domain.Item, error)
	GetCurrencyByID(ctx context.Context, id int) (*domain.Currency, error)
}

// Minter creates unowned instances for unique item drops. Both the
// inventory Service and a transaction-bound inventory Mutator satisfy it.
type Minter interface {
	MintInstance(ctx context.Context, itemID int, ownerID *string) (*domain.ItemInstance, error)
}

// Resolver turns a monster drop table into concrete grants
type Resolver struct {
	catalog Catalog
	minter  Minter
	roller  random.Roller
}

// NewResolver creates a new loot resolver
func NewResolver(catalog Catalog, minter Minter, roller random.Roller) *Resolver {
	return &Resolver{
		catalog: catalog,
		minter:  minter,
		roller:  roller,
	}
}

// WithMinter returns a copy of the resolver that mints through m, so loot
// minted inside a transaction is rolled back with it.
func (r *Resolver) WithMinter(m Minter) *Resolver {
	cp := *r
	cp.minter = m
	return &cp
}

var chanceMultiplier = decimal.NewFromInt(domain.ChanceMultiplier)

// Threshold converts a chance percentage into the highest winning draw on
// the 1..ChanceScale scale: floor(chance * 100), clamped to the scale.
func Threshold(chance decimal.Decimal) int {
	t := chance.Mul(chanceMultiplier).Floor().IntPart()
	if t < 0 {
		return 0
	}
	if t > domain.ChanceScale {
		return domain.ChanceScale
	}
	return int(t)
}

// Hits reports whether draw wins against chance
func Hits(chance decimal.Decimal, draw int) bool {
	return draw <= Threshold(chance)
}

func (r *Resolver) roll(entry domain.DropTableEntry) bool {
	hit := Hits(entry.ChancePercent, r.roller.Between(1, domain.ChanceScale))
	if hit {
		metrics.LootRolls.WithLabelValues(metrics.ResultHit).Inc()
	} else {
		metrics.LootRolls.WithLabelValues(metrics.ResultMiss).Inc()
	}
	return hit
}

// Resolve rolls every ITEM entry of table independently. A stackable hit
// yields (itemID, amount, nil) with amount drawn from [min, max]; a unique
// hit mints a fresh unowned instance and yields (itemID, 1, worldID).
// CURRENCY entries and entries without an item are skipped.
func (r *Resolver) Resolve(ctx context.Context, table []domain.DropTableEntry) ([]domain.Grant, error) {
	log := logger.FromContext(ctx)

	var grants []domain.Grant
	for _, entry := range table {
		if entry.Kind != domain.DropKindItem || entry.ItemID == nil {
			continue
		}
		if !r.roll(entry) {
			continue
		}

		item, err := r.catalog.GetItemByID(ctx, *entry.ItemID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgGetItemFailed, err)
		}
		if item == nil {
			return nil, fmt.Errorf(ErrMsgItemNotFoundFmt, domain.ErrItemNotFound, *entry.ItemID)
		}

		if item.IsStacked {
			amount := r.roller.Between(entry.MinAmount, entry.MaxAmount)
			grants = append(grants, domain.Grant{ItemID: item.ID, Amount: amount})
			metrics.LootDrops.WithLabelValues(DropStack).Inc()
			log.Debug(LogMsgItemDropped, "item_id", item.ID, "amount", amount)
			continue
		}

		inst, err := r.minter.MintInstance(ctx, item.ID, nil)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgMintFailed, err)
		}
		worldID := inst.WorldID
		grants = append(grants, domain.Grant{ItemID: item.ID, Amount: 1, WorldID: &worldID})
		metrics.LootDrops.WithLabelValues(DropInstance).Inc()
		log.Debug(LogMsgItemDropped, "item_id", item.ID, "world_id", worldID)
	}

	log.Debug(LogMsgTableResolved, "entries", len(table), "grants", len(grants))
	return grants, nil
}

// ResolveCurrency rolls every CURRENCY entry of table the same way Resolve
// rolls items. Crediting the wallets is left to the caller.
func (r *Resolver) ResolveCurrency(ctx context.Context, table []domain.DropTableEntry) ([]domain.CurrencyGrant, error) {
	var grants []domain.CurrencyGrant
	for _, entry := range table {
		if entry.Kind != domain.DropKindCurrency || entry.CurrencyID == nil {
			continue
		}
		if !r.roll(entry) {
			continue
		}

		currency, err := r.catalog.GetCurrencyByID(ctx, *entry.CurrencyID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgGetCurrencyFailed, err)
		}
		if currency == nil {
			return nil, fmt.Errorf(ErrMsgCurrencyIDFmt, domain.ErrUnknownCurrency, *entry.CurrencyID)
		}

		amount := int64(r.roller.Between(entry.MinAmount, entry.MaxAmount))
		grants = append(grants, domain.CurrencyGrant{CurrencyCode: currency.Code, Amount: amount})
		metrics.LootDrops.WithLabelValues(DropCurrency).Inc()
		logger.FromContext(ctx).Debug(LogMsgCurrencyDropped, "currency", currency.Code, "amount", amount)
	}
	return grants, nil
}
