package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osse101/Lootkeeper_Go/internal/concurrency"
	"github.com/osse101/Lootkeeper_Go/internal/database/memory"
	"github.com/osse101/Lootkeeper_Go/internal/domain"
)

const testOwner = "player-1"

type fixture struct {
	store  *memory.Store
	svc    Service
	potion *domain.Item
	arrow  *domain.Item
	sword  *domain.Item
	amulet *domain.Item
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	f := &fixture{
		store:  store,
		svc:    NewService(store, concurrency.NewLockManager()),
		potion: &domain.Item{Code: "potion", Name: "Potion", ItemType: domain.ItemTypePotion, IsStacked: true, Cost: 10, IsActive: true},
		arrow:  &domain.Item{Code: "arrow", Name: "arrow", ItemType: domain.ItemTypeConsumable, IsStacked: true, Cost: 1, IsActive: true},
		sword: &domain.Item{Code: "sword", Name: "Épée", ItemType: domain.ItemTypeWeapon, Cost: 100, IsActive: true,
			BaseStats: domain.Stats{Strength: 5, Dexterity: 1}},
		amulet: &domain.Item{Code: "amulet", Name: "Amulet", ItemType: domain.ItemTypeAmulet, Cost: 50, IsActive: true},
	}
	for _, item := range []*domain.Item{f.potion, f.arrow, f.sword, f.amulet} {
		_, err := store.UpsertItem(ctx, item)
		require.NoError(t, err)
	}
	return f
}

func (f *fixture) grantStack(t *testing.T, ownerID string, itemID, qty int) {
	t.Helper()
	_, err := f.svc.ChangeStackQuantity(context.Background(), ownerID, itemID, qty)
	require.NoError(t, err)
}

func (f *fixture) mintFor(t *testing.T, ownerID string, itemID int) *domain.ItemInstance {
	t.Helper()
	inst, err := f.svc.MintInstance(context.Background(), itemID, &ownerID)
	require.NoError(t, err)
	return inst
}
