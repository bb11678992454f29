package inventory

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Lootkeeper_Go/internal/domain"
	"github.com/osse101/Lootkeeper_Go/internal/random"
)

func TestChangeStackQuantity_AddCreatesAndIncrements(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	qty, err := f.svc.ChangeStackQuantity(ctx, testOwner, f.potion.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, qty)

	qty, err = f.svc.ChangeStackQuantity(ctx, testOwner, f.potion.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 7, qty)
	assert.Equal(t, 1, f.store.StackCount())
}

func TestChangeStackQuantity_ZeroDelta(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ChangeStackQuantity(context.Background(), testOwner, f.potion.ID, 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.ErrorIs(t, err, domain.ErrZeroDelta)
}

func TestChangeStackQuantity_EmptyOwner(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ChangeStackQuantity(context.Background(), "", f.potion.ID, 1)

	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestChangeStackQuantity_RejectsUniqueAndUnknownItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ChangeStackQuantity(ctx, testOwner, f.sword.ID, 1)
	assert.ErrorIs(t, err, domain.ErrItemNotStackable)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = f.svc.ChangeStackQuantity(ctx, testOwner, 9999, 1)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	assert.Equal(t, 0, f.store.StackCount())
}

// Scenario A: removing the whole stack deletes it and lookups then fail
func TestChangeStackQuantity_RemovingAllDeletesEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.grantStack(t, testOwner, f.potion.ID, 5)

	qty, err := f.svc.ChangeStackQuantity(ctx, testOwner, f.potion.ID, -5)
	require.NoError(t, err)
	assert.Equal(t, 0, qty)
	assert.Equal(t, 0, f.store.StackCount())

	_, err = f.svc.Lookup(ctx, testOwner, f.potion.ID, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Scenario B: removing from an absent stack fails and creates nothing
func TestChangeStackQuantity_RemoveFromAbsentStack(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ChangeStackQuantity(context.Background(), testOwner, f.potion.ID, -1)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var qtyErr *domain.InsufficientQuantityError
	require.True(t, errors.As(err, &qtyErr))
	assert.Equal(t, 1, qtyErr.Required)
	assert.Equal(t, 0, qtyErr.Available)
	assert.Equal(t, 0, f.store.StackCount())
}

func TestChangeStackQuantity_InsufficientLeavesStackUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.grantStack(t, testOwner, f.potion.ID, 3)

	_, err := f.svc.ChangeStackQuantity(ctx, testOwner, f.potion.ID, -5)

	var qtyErr *domain.InsufficientQuantityError
	require.True(t, errors.As(err, &qtyErr))
	assert.Equal(t, 5, qtyErr.Required)
	assert.Equal(t, 3, qtyErr.Available)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	holding, err := f.svc.Lookup(ctx, testOwner, f.potion.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, holding.Quantity())
}

func TestChangeStackQuantity_PartialRemoval(t *testing.T) {
	f := newFixture(t)
	f.grantStack(t, testOwner, f.potion.ID, 5)

	qty, err := f.svc.ChangeStackQuantity(context.Background(), testOwner, f.potion.ID, -2)

	require.NoError(t, err)
	assert.Equal(t, 3, qty)
}

func TestChangeStackQuantity_NeverPersistsNonPositive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rng := random.NewSource(2024)

	for i := 0; i < 500; i++ {
		delta := rng.Between(-6, 5)
		if delta == 0 {
			continue
		}
		_, _ = f.svc.ChangeStackQuantity(ctx, testOwner, f.potion.ID, delta)

		holding, found, err := f.svc.Find(ctx, testOwner, f.potion.ID, nil)
		require.NoError(t, err)
		if found {
			require.Greater(t, holding.Stack.Quantity, 0, "step %d persisted a non-positive stack", i)
		}
	}
}

func TestChangeStackQuantity_ConcurrentIncrementsAreNotLost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.ChangeStackQuantity(ctx, testOwner, f.arrow.ID, 2)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	holding, err := f.svc.Lookup(ctx, testOwner, f.arrow.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 100, holding.Quantity())
}

func TestConsumeOne(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	consumed, err := f.svc.ConsumeOne(ctx, testOwner, f.potion.ID)
	require.NoError(t, err)
	assert.False(t, consumed)

	f.grantStack(t, testOwner, f.potion.ID, 1)
	consumed, err = f.svc.ConsumeOne(ctx, testOwner, f.potion.ID)
	require.NoError(t, err)
	assert.True(t, consumed)
	assert.Equal(t, 0, f.store.StackCount())
}

func TestChangeStackQuantity_RejectsOverflow(t *testing.T) {
	// ARRANGE
	f := newFixture(t)
	ctx := context.Background()
	f.grantStack(t, testOwner, f.potion.ID, domain.MaxStackQuantity-2)

	// ACT
	_, err := f.svc.ChangeStackQuantity(ctx, testOwner, f.potion.ID, 5)

	// ASSERT
	assert.ErrorIs(t, err, domain.ErrStackLimit)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	holding, err := f.svc.Lookup(ctx, testOwner, f.potion.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxStackQuantity-2, holding.Quantity())

	qty, err := f.svc.ChangeStackQuantity(ctx, testOwner, f.potion.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxStackQuantity, qty)
}

func TestChangeStackQuantity_RejectsOversizedFirstGrant(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ChangeStackQuantity(context.Background(), testOwner, f.potion.ID, math.MaxInt)

	assert.ErrorIs(t, err, domain.ErrStackLimit)
	assert.Equal(t, 0, f.store.StackCount())
}
