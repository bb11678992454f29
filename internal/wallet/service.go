package wallet

import (
	"context"
	"fmt"

	"github.com/osse101/Lootkeeper_Go/internal/concurrency"
	"github.com/osse101/Lootkeeper_Go/internal/metrics"
	"github.com/osse101/Lootkeeper_Go/internal/repository"
)

// Service defines the wallet ledger operations
type Service interface {
	Credit(ctx context.Context, ownerID, currencyCode string, amount int64) (int64, error)
	Debit(ctx context.Context, ownerID, currencyCode string, amount int64) (int64, error)
	Balance(ctx context.Context, ownerID, currencyCode string) (int64, error)
}

type service struct {
	repo  repository.Ledger
	locks *concurrency.LockManager
}

// NewService creates a new wallet service. Pass the same LockManager as the
// inventory service so both ledgers serialize on the same owner lock.
func NewService(repo repository.Ledger, locks *concurrency.LockManager) Service {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{repo: repo, locks: locks}
}

func (s *service) withTx(ctx context.Context, ownerID string, operation func(m *Mutator) error) error {
	unlock := s.locks.Lock(concurrency.OwnerKey(ownerID))
	defer unlock()

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

func (s *service) Credit(ctx context.Context, ownerID, currencyCode string, amount int64) (int64, error) {
	var balance int64
	err := s.withTx(ctx, ownerID, func(m *Mutator) error {
		var err error
		balance, err = m.Credit(ctx, ownerID, currencyCode, amount)
		return err
	})
	if err == nil {
		metrics.MoneyEarned.WithLabelValues(currencyCode).Add(float64(amount))
	}
	return balance, err
}

func (s *service) Debit(ctx context.Context, ownerID, currencyCode string, amount int64) (int64, error) {
	var balance int64
	err := s.withTx(ctx, ownerID, func(m *Mutator) error {
		var err error
		balance, err = m.Debit(ctx, ownerID, currencyCode, amount)
		return err
	})
	if err == nil {
		metrics.MoneySpent.WithLabelValues(currencyCode).Add(float64(amount))
	}
	return balance, err
}

func (s *service) Balance(ctx context.Context, ownerID, currencyCode string) (int64, error) {
	var balance int64
	err := s.withTx(ctx, ownerID, func(m *Mutator) error {
		var err error
		balance, err = m.Balance(ctx, ownerID, currencyCode)
		return err
	})
	return balance, err
}
