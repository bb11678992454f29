package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Lootkeeper_Go/internal/domain"
	"github.com/osse101/Lootkeeper_Go/internal/repository/mocks"
)

func TestChangeQuantity_DispatchesOnItemKind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.ChangeQuantity(ctx, testOwner, f.potion, 2, nil))
	holding, err := f.svc.Lookup(ctx, testOwner, f.potion.ID, nil)
	require.NoError(t, err)
	assert.True(t, holding.IsStack())
	assert.Equal(t, 2, holding.Quantity())

	inst := f.mintFor(t, testOwner, f.sword.ID)
	require.NoError(t, f.svc.ChangeQuantity(ctx, testOwner, f.sword, -1, &inst.WorldID))
	_, found, err := f.svc.Find(ctx, testOwner, f.sword.ID, &inst.WorldID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestChangeQuantity_WrapsEveryFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	missing := uuid.New()

	tests := []struct {
		name  string
		item  *domain.Item
		delta int
		world *uuid.UUID
		cause error
		op    string
	}{
		{"stack underflow", f.potion, -1, nil, domain.ErrInsufficientQuantity, domain.OpRemoveStack},
		{"zero delta", f.potion, 0, nil, domain.ErrInvalidArgument, domain.OpAddStack},
		{"unique bad delta", f.sword, 3, &missing, domain.ErrInvalidArgument, domain.OpAddInstance},
		{"unique missing instance", f.sword, -1, &missing, domain.ErrNotFound, domain.OpRemoveInstance},
		{"nil item", nil, 1, nil, domain.ErrNotFound, domain.OpAddInstance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.svc.ChangeQuantity(ctx, testOwner, tt.item, tt.delta, tt.world)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrOperationFailed)
			assert.ErrorIs(t, err, tt.cause)

			var opErr *domain.OperationError
			require.True(t, errors.As(err, &opErr))
			assert.Equal(t, tt.op, opErr.Op)
		})
	}
}

func TestListHoldings_OrdersAndPads(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.grantStack(t, testOwner, f.potion.ID, 4)
	f.grantStack(t, testOwner, f.arrow.ID, 20)
	sword := f.mintFor(t, testOwner, f.sword.ID)
	f.mintFor(t, testOwner, f.amulet.ID)
	f.grantStack(t, "player-2", f.potion.ID, 9)

	views, err := f.svc.ListHoldings(ctx, testOwner, domain.DefaultSlotCapacity)
	require.NoError(t, err)
	require.Len(t, views, domain.DefaultSlotCapacity)

	// stacks first, then instances, each case-insensitively by name
	assert.Equal(t, domain.HoldingKindStack, views[0].Kind)
	assert.Equal(t, "arrow", views[0].Name)
	assert.Equal(t, 20, views[0].Quantity)
	assert.Equal(t, "Potion", views[1].Name)
	assert.Equal(t, domain.HoldingKindInstance, views[2].Kind)
	assert.Equal(t, "Amulet", views[2].Name)
	assert.Equal(t, "Épée", views[3].Name, "accented names sort with their base letter")
	assert.Equal(t, sword.WorldID, *views[3].WorldID)

	require.Len(t, views[3].Stats, len(domain.StatNames))
	assert.Equal(t, domain.StatStrength, views[3].Stats[0].Name)
	assert.Equal(t, 5, views[3].Stats[0].Total())

	for i, v := range views {
		assert.Equal(t, i+1, v.SlotNumber)
		if i >= 4 {
			assert.Equal(t, domain.HoldingKindEmpty, v.Kind)
		}
	}
}

func TestListHoldings_CapacityIsNotEnforced(t *testing.T) {
	f := newFixture(t)
	f.grantStack(t, testOwner, f.potion.ID, 1)
	f.grantStack(t, testOwner, f.arrow.ID, 1)
	f.mintFor(t, testOwner, f.sword.ID)

	views, err := f.svc.ListHoldings(context.Background(), testOwner, 2)

	require.NoError(t, err)
	assert.Len(t, views, 3)
}

func TestService_BeginTxFailure(t *testing.T) {
	ledger := new(mocks.MockLedger)
	ledger.On("BeginTx", mock.Anything).Return(nil, errors.New("pool closed"))
	svc := NewService(ledger, nil)

	_, err := svc.ChangeStackQuantity(context.Background(), testOwner, 1, 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to begin transaction")
	ledger.AssertExpectations(t)
}

func TestService_FailedOperationRollsBackWithoutCommit(t *testing.T) {
	ctx := context.Background()
	tx := new(mocks.MockLedgerTx)
	tx.On("FindStack", mock.Anything, testOwner, 1).Return(&domain.StackEntry{OwnerID: testOwner, ItemID: 1, Quantity: 2}, nil)
	tx.On("Rollback", mock.Anything).Return(nil)
	ledger := new(mocks.MockLedger)
	ledger.On("BeginTx", mock.Anything).Return(tx, nil)
	svc := NewService(ledger, nil)

	_, err := svc.ChangeStackQuantity(ctx, testOwner, 1, -3)

	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
	tx.AssertNotCalled(t, "DeleteStack", mock.Anything, mock.Anything, mock.Anything)
	tx.AssertExpectations(t)
}

func TestService_StorageErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("deadlock detected")
	tx := new(mocks.MockLedgerTx)
	tx.On("GetItemByID", mock.Anything, 1).Return(&domain.Item{ID: 1, IsStacked: true}, nil)
	tx.On("FindStack", mock.Anything, testOwner, 1).Return(nil, nil)
	tx.On("UpsertStack", mock.Anything, testOwner, 1, 2).Return(0, dbErr)
	tx.On("Rollback", mock.Anything).Return(nil)
	ledger := new(mocks.MockLedger)
	ledger.On("BeginTx", mock.Anything).Return(tx, nil)
	svc := NewService(ledger, nil)

	err := svc.ChangeQuantity(ctx, testOwner, &domain.Item{ID: 1, IsStacked: true}, 2, nil)

	assert.ErrorIs(t, err, dbErr)
	assert.ErrorIs(t, err, domain.ErrOperationFailed)
	tx.AssertExpectations(t)
}

func TestService_CommitFailure(t *testing.T) {
	ctx := context.Background()
	tx := new(mocks.MockLedgerTx)
	tx.On("GetItemByID", mock.Anything, 1).Return(&domain.Item{ID: 1, IsStacked: true}, nil)
	tx.On("FindStack", mock.Anything, testOwner, 1).Return(nil, nil)
	tx.On("UpsertStack", mock.Anything, testOwner, 1, 2).Return(2, nil)
	tx.On("Commit", mock.Anything).Return(errors.New("serialization failure"))
	tx.On("Rollback", mock.Anything).Return(errors.New(domain.ErrMsgTxClosed))
	ledger := new(mocks.MockLedger)
	ledger.On("BeginTx", mock.Anything).Return(tx, nil)
	svc := NewService(ledger, nil)

	err := svc.ChangeQuantity(ctx, testOwner, &domain.Item{ID: 1, IsStacked: true}, 2, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOperationFailed)
	assert.Contains(t, err.Error(), "failed to commit transaction")
	tx.AssertExpectations(t)
}
