package economy

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Lootkeeper_Go/internal/concurrency"
	"github.com/osse101/Lootkeeper_Go/internal/database/memory"
	"github.com/osse101/Lootkeeper_Go/internal/domain"
	"github.com/osse101/Lootkeeper_Go/internal/inventory"
	"github.com/osse101/Lootkeeper_Go/internal/loot"
	"github.com/osse101/Lootkeeper_Go/internal/random"
	"github.com/osse101/Lootkeeper_Go/internal/wallet"
)

const testOwner = "player-1"

type fixture struct {
	store   *memory.Store
	gateway Service
	inv     inventory.Service
	wallet  wallet.Service
	roller  *random.Scripted

	potion *domain.Item
	sword  *domain.Item
	relic  *domain.Item
	gold   *domain.Currency
	gems   *domain.Currency
}

// newFixture wires the gateway over a memory store. draws script the loot
// roller used by AwardLoot.
func newFixture(t *testing.T, draws ...int) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	locks := concurrency.NewLockManager()

	f := &fixture{
		store:  store,
		inv:    inventory.NewService(store, locks),
		wallet: wallet.NewService(store, locks),
		roller: random.NewScripted(draws...),
		potion: &domain.Item{Code: "potion", Name: "Potion", ItemType: domain.ItemTypePotion, IsStacked: true, IsSellable: true, Cost: 10, IsActive: true},
		sword:  &domain.Item{Code: "sword", Name: "Sword", ItemType: domain.ItemTypeWeapon, IsSellable: true, Cost: 100, IsActive: true},
		relic:  &domain.Item{Code: "relic", Name: "Relic", ItemType: domain.ItemTypeQuest, Cost: 500, IsActive: true},
		gold:   &domain.Currency{Code: domain.CurrencyGold, Name: "Gold", IsActive: true},
		gems:   &domain.Currency{Code: "GEMS", Name: "Gems"},
	}
	for _, item := range []*domain.Item{f.potion, f.sword, f.relic} {
		_, err := store.UpsertItem(ctx, item)
		require.NoError(t, err)
	}
	for _, c := range []*domain.Currency{f.gold, f.gems} {
		_, err := store.UpsertCurrency(ctx, c)
		require.NoError(t, err)
	}

	resolver := loot.NewResolver(store, f.inv, f.roller)
	f.gateway = NewService(store, store, resolver, locks, "")
	return f
}

func (f *fixture) fund(t *testing.T, amount int64) {
	t.Helper()
	_, err := f.wallet.Credit(context.Background(), testOwner, domain.CurrencyGold, amount)
	require.NoError(t, err)
}

func (f *fixture) balance(t *testing.T) int64 {
	t.Helper()
	b, err := f.wallet.Balance(context.Background(), testOwner, domain.CurrencyGold)
	require.NoError(t, err)
	return b
}

func (f *fixture) quantity(t *testing.T, itemID int) int {
	t.Helper()
	h, found, err := f.inv.Find(context.Background(), testOwner, itemID, nil)
	require.NoError(t, err)
	if !found {
		return 0
	}
	return h.Quantity()
}

func (f *fixture) addMonster(t *testing.T, drops ...domain.DropTableEntry) *domain.Monster {
	t.Helper()
	ctx := context.Background()
	m := &domain.Monster{Code: "goblin", Name: "Goblin", Level: 2, XPReward: 15, IsActive: true}
	_, err := f.store.UpsertMonster(ctx, m)
	require.NoError(t, err)
	require.NoError(t, loot.ValidateDropTable(drops))
	require.NoError(t, f.store.ReplaceDropTable(ctx, m.ID, drops))
	return m
}

func itemDrop(itemID int, chance string, minAmount, maxAmount int) domain.DropTableEntry {
	return domain.DropTableEntry{
		Kind:          domain.DropKindItem,
		ItemID:        &itemID,
		MinAmount:     minAmount,
		MaxAmount:     maxAmount,
		ChancePercent: decimal.RequireFromString(chance),
	}
}

func currencyDrop(currencyID int, chance string, minAmount, maxAmount int) domain.DropTableEntry {
	return domain.DropTableEntry{
		Kind:          domain.DropKindCurrency,
		CurrencyID:    &currencyID,
		MinAmount:     minAmount,
		MaxAmount:     maxAmount,
		ChancePercent: decimal.RequireFromString(chance),
	}
}
