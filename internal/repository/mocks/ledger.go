// Package mocks provides testify mocks of the repository interfaces for
// tests that need to script storage failures.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/Lootkeeper_Go/internal/domain"
	"github.com/osse101/Lootkeeper_Go/internal/repository"
)

// MockLedger implements repository.Ledger for testing
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.LedgerTx), args.Error(1)
}

// MockLedgerTx implements repository.LedgerTx for testing
type MockLedgerTx struct {
	mock.Mock
}

var _ repository.LedgerTx = (*MockLedgerTx)(nil)

func (m *MockLedgerTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerTx) FindStack(ctx context.Context, ownerID string, itemID int) (*domain.StackEntry, error) {
	args := m.Called(ctx, ownerID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StackEntry), args.Error(1)
}

func (m *MockLedgerTx) AddToStack(ctx context.Context, ownerID string, itemID, delta int) (int, bool, error) {
	args := m.Called(ctx, ownerID, itemID, delta)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockLedgerTx) UpsertStack(ctx context.Context, ownerID string, itemID, delta int) (int, error) {
	args := m.Called(ctx, ownerID, itemID, delta)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerTx) DeleteStack(ctx context.Context, ownerID string, itemID int) error {
	args := m.Called(ctx, ownerID, itemID)
	return args.Error(0)
}

func (m *MockLedgerTx) ListStacks(ctx context.Context, ownerID string) ([]domain.StackEntry, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StackEntry), args.Error(1)
}

func (m *MockLedgerTx) FindInstance(ctx context.Context, worldID uuid.UUID) (*domain.ItemInstance, error) {
	args := m.Called(ctx, worldID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemInstance), args.Error(1)
}

func (m *MockLedgerTx) FindInstanceByOwnerItem(ctx context.Context, ownerID string, itemID int) (*domain.ItemInstance, error) {
	args := m.Called(ctx, ownerID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemInstance), args.Error(1)
}

func (m *MockLedgerTx) InsertInstance(ctx context.Context, instance *domain.ItemInstance) error {
	args := m.Called(ctx, instance)
	return args.Error(0)
}

func (m *MockLedgerTx) ReassignOwner(ctx context.Context, worldID uuid.UUID, ownerID *string) error {
	args := m.Called(ctx, worldID, ownerID)
	return args.Error(0)
}

func (m *MockLedgerTx) DeleteInstance(ctx context.Context, worldID uuid.UUID) error {
	args := m.Called(ctx, worldID)
	return args.Error(0)
}

func (m *MockLedgerTx) ListInstances(ctx context.Context, ownerID string) ([]domain.ItemInstance, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemInstance), args.Error(1)
}

func (m *MockLedgerTx) FindWallet(ctx context.Context, ownerID string, currencyID int) (*domain.Wallet, error) {
	args := m.Called(ctx, ownerID, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockLedgerTx) UpsertWallet(ctx context.Context, wallet *domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockLedgerTx) GetItemByID(ctx context.Context, id int) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockLedgerTx) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}
