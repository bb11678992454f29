package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/Lootkeeper_Go/internal/concurrency"
	"github.com/osse101/Lootkeeper_Go/internal/domain"
	"github.com/osse101/Lootkeeper_Go/internal/repository"
)

// Service defines the inventory ledger operations. Every call runs in its
// own storage transaction while holding the owner's lock.
type Service interface {
	Find(ctx context.Context, ownerID string, itemID int, worldID *uuid.UUID) (domain.Holding, bool, error)
	Lookup(ctx context.Context, ownerID string, itemID int, worldID *uuid.UUID) (domain.Holding, error)
	ChangeStackQuantity(ctx context.Context, ownerID string, itemID, delta int) (int, error)
	MintInstance(ctx context.Context, itemID int, ownerID *string) (*domain.ItemInstance, error)
	TransferInstance(ctx context.Context, worldID uuid.UUID, newOwnerID string) (*domain.ItemInstance, error)
	RemoveInstance(ctx context.Context, ownerID string, worldID uuid.UUID) (*domain.ItemInstance, error)
	ChangeUniqueItem(ctx context.Context, ownerID string, itemID, delta int, worldID *uuid.UUID) error
	ChangeQuantity(ctx context.Context, ownerID string, item *domain.Item, delta int, worldID *uuid.UUID) error
	ListHoldings(ctx context.Context, ownerID string, slotCapacity int) ([]domain.HoldingView, error)
	ConsumeOne(ctx context.Context, ownerID string, itemID int) (bool, error)
}

type service struct {
	repo  repository.Ledger
	locks *concurrency.LockManager
}

// NewService creates a new inventory service
func NewService(repo repository.Ledger, locks *concurrency.LockManager) Service {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{repo: repo, locks: locks}
}

// withTx runs operation in a transaction, committing only when it succeeds.
// An empty ownerID skips the owner lock.
func (s *service) withTx(ctx context.Context, ownerID string, operation func(m *Mutator) error) error {
	if ownerID != "" {
		unlock := s.locks.Lock(concurrency.OwnerKey(ownerID))
		defer unlock()
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := operation(NewMutator(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}
	return nil
}

func (s *service) Find(ctx context.Context, ownerID string, itemID int, worldID *uuid.UUID) (domain.Holding, bool, error) {
	var holding domain.Holding
	var found bool
	err := s.withTx(ctx, ownerID, func(m *Mutator) error {
		var err error
		holding, found, err = m.Find(ctx, ownerID, itemID, worldID)
		return err
	})
	return holding, found, err
}

func (s *service) Lookup(ctx context.Context, ownerID string, itemID int, worldID *uuid.UUID) (domain.Holding, error) {
	var holding domain.Holding
	err := s.withTx(ctx, ownerID, func(m *Mutator) error {
		var err error
		holding, err = m.Lookup(ctx, ownerID, itemID, worldID)
		return err
	})
	return holding, err
}

func (s *service) ChangeStackQuantity(ctx context.Context, ownerID string, itemID, delta int) (int, error) {
	var qty int
	err := s.withTx(ctx, ownerID, func(m *Mutator) error {
		var err error
		qty, err = m.ChangeStackQuantity(ctx, ownerID, itemID, delta)
		return err
	})
	return qty, err
}

func (s *service) MintInstance(ctx context.Context, itemID int, ownerID *string) (*domain.ItemInstance, error) {
	lockKey := ""
	if ownerID != nil {
		lockKey = *ownerID
	}
	var inst *domain.ItemInstance
	err := s.withTx(ctx, lockKey, func(m *Mutator) error {
		var err error
		inst, err = m.MintInstance(ctx, itemID, ownerID)
		return err
	})
	return inst, err
}

func (s *service) TransferInstance(ctx context.Context, worldID uuid.UUID, newOwnerID string) (*domain.ItemInstance, error) {
	var inst *domain.ItemInstance
	err := s.withTx(ctx, newOwnerID, func(m *Mutator) error {
		var err error
		inst, err = m.TransferInstance(ctx, worldID, newOwnerID)
		return err
	})
	return inst, err
}

func (s *service) RemoveInstance(ctx context.Context, ownerID string, worldID uuid.UUID) (*domain.ItemInstance, error) {
	var inst *domain.ItemInstance
	err := s.withTx(ctx, ownerID, func(m *Mutator) error {
		var err error
		inst, err = m.RemoveInstance(ctx, ownerID, worldID)
		return err
	})
	return inst, err
}

func (s *service) ChangeUniqueItem(ctx context.Context, ownerID string, itemID, delta int, worldID *uuid.UUID) error {
	return s.withTx(ctx, ownerID, func(m *Mutator) error {
		return m.ChangeUniqueItem(ctx, ownerID, itemID, delta, worldID)
	})
}

func (s *service) ChangeQuantity(ctx context.Context, ownerID string, item *domain.Item, delta int, worldID *uuid.UUID) error {
	err := s.withTx(ctx, ownerID, func(m *Mutator) error {
		return m.ChangeQuantity(ctx, ownerID, item, delta, worldID)
	})
	if err != nil && !isOperationError(err) {
		itemID := 0
		if item != nil {
			itemID = item.ID
		}
		return &domain.OperationError{Op: operationName(item != nil && item.IsStacked, delta), ItemID: itemID, Err: err}
	}
	return err
}

func (s *service) ListHoldings(ctx context.Context, ownerID string, slotCapacity int) ([]domain.HoldingView, error) {
	var views []domain.HoldingView
	err := s.withTx(ctx, ownerID, func(m *Mutator) error {
		var err error
		views, err = m.ListHoldings(ctx, ownerID, slotCapacity)
		return err
	})
	return views, err
}

func (s *service) ConsumeOne(ctx context.Context, ownerID string, itemID int) (bool, error) {
	var consumed bool
	err := s.withTx(ctx, ownerID, func(m *Mutator) error {
		var err error
		consumed, err = m.ConsumeOne(ctx, ownerID, itemID)
		return err
	})
	return consumed, err
}

func isOperationError(err error) bool {
	var opErr *domain.OperationError
	return errors.As(err, &opErr)
}
