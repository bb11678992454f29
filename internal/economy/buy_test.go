package economy

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Lootkeeper_Go/internal/domain"
	"github.com/osse101/Lootkeeper_Go/internal/testing/leaktest"
)

func TestBuy_InsufficientFundsChangesNothing(t *testing.T) {
	// ARRANGE
	f := newFixture(t)
	f.fund(t, 25)

	// ACT
	receipt, err := f.gateway.Buy(context.Background(), TradeRequest{
		OwnerID: testOwner, ItemID: f.potion.ID, Quantity: 3, PricePerUnit: 10,
	})

	// ASSERT
	require.Error(t, err)
	assert.Nil(t, receipt)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	var fundsErr *domain.InsufficientFundsError
	require.True(t, errors.As(err, &fundsErr))
	assert.Equal(t, int64(30), fundsErr.Required)
	assert.Equal(t, int64(25), fundsErr.Available)

	assert.Equal(t, int64(25), f.balance(t))
	assert.Equal(t, 0, f.quantity(t, f.potion.ID))
}

func TestBuy_StackedItem(t *testing.T) {
	f := newFixture(t)
	f.fund(t, 100)

	receipt, err := f.gateway.Buy(context.Background(), TradeRequest{
		OwnerID: testOwner, ItemID: f.potion.ID, Quantity: 3, PricePerUnit: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, &Receipt{
		OwnerID:   testOwner,
		ItemID:    f.potion.ID,
		Quantity:  3,
		UnitPrice: 10,
		Total:     30,
		Currency:  domain.CurrencyGold,
		Balance:   70,
	}, receipt)
	assert.Equal(t, int64(70), f.balance(t))
	assert.Equal(t, 3, f.quantity(t, f.potion.ID))
}

func TestBuy_UniqueItemMintsInstances(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fund(t, 500)

	receipt, err := f.gateway.Buy(ctx, TradeRequest{
		OwnerID: testOwner, ItemID: f.sword.ID, Quantity: 2, PricePerUnit: 100,
	})

	require.NoError(t, err)
	require.Len(t, receipt.WorldIDs, 2)
	assert.NotEqual(t, receipt.WorldIDs[0], receipt.WorldIDs[1])
	for _, id := range receipt.WorldIDs {
		worldID := id
		_, found, err := f.inv.Find(ctx, testOwner, f.sword.ID, &worldID)
		require.NoError(t, err)
		assert.True(t, found)
	}
	assert.Equal(t, int64(300), f.balance(t))
}

func TestBuy_UniqueItemTransfersNamedInstance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fund(t, 100)
	inst, err := f.inv.MintInstance(ctx, f.sword.ID, nil)
	require.NoError(t, err)

	receipt, err := f.gateway.Buy(ctx, TradeRequest{
		OwnerID: testOwner, ItemID: f.sword.ID, Quantity: 1, PricePerUnit: 60, WorldID: &inst.WorldID,
	})

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{inst.WorldID}, receipt.WorldIDs)
	h, found, err := f.inv.Find(ctx, testOwner, f.sword.ID, &inst.WorldID)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, h.Instance.OwnedBy(testOwner))
	assert.Equal(t, int64(40), f.balance(t))
}

func TestBuy_GrantFailureRollsBackDebit(t *testing.T) {
	// ARRANGE
	f := newFixture(t)
	f.fund(t, 100)
	missing := uuid.New()

	// ACT
	_, err := f.gateway.Buy(context.Background(), TradeRequest{
		OwnerID: testOwner, ItemID: f.sword.ID, Quantity: 1, PricePerUnit: 100, WorldID: &missing,
	})

	// ASSERT
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOperationFailed)
	assert.ErrorIs(t, err, domain.ErrInstanceNotFound)
	assert.Equal(t, int64(100), f.balance(t))
}

func TestBuy_ThenSellRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fund(t, 100)

	_, err := f.gateway.Buy(ctx, TradeRequest{OwnerID: testOwner, ItemID: f.potion.ID, Quantity: 4, PricePerUnit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(60), f.balance(t))

	_, err = f.gateway.Sell(ctx, TradeRequest{OwnerID: testOwner, ItemID: f.potion.ID, Quantity: 4})
	require.NoError(t, err)

	assert.Equal(t, int64(100), f.balance(t))
	assert.Equal(t, 0, f.quantity(t, f.potion.ID))
}

func TestBuy_RequestValidation(t *testing.T) {
	worldID := uuid.New()

	tests := []struct {
		name    string
		req     func(f *fixture) TradeRequest
		wantErr error
	}{
		{
			name:    "missing owner",
			req:     func(f *fixture) TradeRequest { return TradeRequest{ItemID: f.potion.ID, Quantity: 1} },
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "missing item",
			req:     func(f *fixture) TradeRequest { return TradeRequest{OwnerID: testOwner, Quantity: 1} },
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name: "negative price",
			req: func(f *fixture) TradeRequest {
				return TradeRequest{OwnerID: testOwner, ItemID: f.potion.ID, Quantity: 1, PricePerUnit: -1}
			},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "zero quantity",
			req:     func(f *fixture) TradeRequest { return TradeRequest{OwnerID: testOwner, ItemID: f.potion.ID} },
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name: "quantity above maximum",
			req: func(f *fixture) TradeRequest {
				return TradeRequest{OwnerID: testOwner, ItemID: f.potion.ID, Quantity: domain.MaxTransactionQuantity + 1}
			},
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name:    "unknown item",
			req:     func(f *fixture) TradeRequest { return TradeRequest{OwnerID: testOwner, ItemID: 9999, Quantity: 1} },
			wantErr: domain.ErrItemNotFound,
		},
		{
			name: "named instance with quantity above one",
			req: func(f *fixture) TradeRequest {
				return TradeRequest{OwnerID: testOwner, ItemID: f.sword.ID, Quantity: 2, WorldID: &worldID}
			},
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name: "total overflows",
			req: func(f *fixture) TradeRequest {
				return TradeRequest{OwnerID: testOwner, ItemID: f.potion.ID, Quantity: 2, PricePerUnit: 1 << 62}
			},
			wantErr: domain.ErrPriceOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.fund(t, 1000)

			_, err := f.gateway.Buy(context.Background(), tt.req(f))

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, int64(1000), f.balance(t))
		})
	}
}

func TestBuy_ConcurrentPurchasesNeverOverspend(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fund(t, 50)
	checker := leaktest.NewGoroutineChecker(t)

	const buyers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.gateway.Buy(ctx, TradeRequest{OwnerID: testOwner, ItemID: f.potion.ID, Quantity: 1, PricePerUnit: 5})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		}()
	}
	wg.Wait()

	checker.Check(0)
	assert.Equal(t, 10, successes)
	assert.Equal(t, int64(0), f.balance(t))
	assert.Equal(t, 10, f.quantity(t, f.potion.ID))
}

func TestBuy_StackedItemRejectsWorldID(t *testing.T) {
	// ARRANGE
	f := newFixture(t)
	f.fund(t, 100)
	worldID := uuid.New()

	// ACT
	receipt, err := f.gateway.Buy(context.Background(), TradeRequest{
		OwnerID: testOwner, ItemID: f.potion.ID, Quantity: 2, PricePerUnit: 10, WorldID: &worldID,
	})

	// ASSERT
	assert.Nil(t, receipt)
	assert.ErrorIs(t, err, domain.ErrWorldIDOnStacked)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Equal(t, int64(100), f.balance(t))
	assert.Equal(t, 0, f.quantity(t, f.potion.ID))
}
