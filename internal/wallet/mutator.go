package wallet

import (
	"context"
	"fmt"
	"math"

	"github.com/osse101/Lootkeeper_Go/internal/domain"
	"github.com/osse101/Lootkeeper_Go/internal/logger"
	"github.com/osse101/Lootkeeper_Go/internal/metrics"
	"github.com/osse101/Lootkeeper_Go/internal/repository"
)

// Mutator applies wallet changes inside a caller-owned transaction. Like the
// inventory Mutator it takes no locks and never ends the transaction.
type Mutator struct {
	tx repository.LedgerTx
}

// NewMutator binds a Mutator to tx
func NewMutator(tx repository.LedgerTx) *Mutator {
	return &Mutator{tx: tx}
}

// Currency resolves an active currency by code
func (m *Mutator) Currency(ctx context.Context, code string) (*domain.Currency, error) {
	currency, err := m.tx.GetCurrencyByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCurrencyFailed, err)
	}
	if currency == nil || !currency.IsActive {
		return nil, fmt.Errorf(ErrMsgUnknownCurrencyFmt, domain.ErrUnknownCurrency, code)
	}
	return currency, nil
}

// Balance returns the owner's balance, 0 when no wallet row exists yet
func (m *Mutator) Balance(ctx context.Context, ownerID, currencyCode string) (int64, error) {
	currency, err := m.Currency(ctx, currencyCode)
	if err != nil {
		return 0, err
	}
	wallet, err := m.tx.FindWallet(ctx, ownerID, currency.ID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgFindWalletFailed, err)
	}
	if wallet == nil {
		return 0, nil
	}
	return wallet.Amount, nil
}

// Credit adds amount to the owner's wallet, creating it on first use, and
// returns the new balance.
func (m *Mutator) Credit(ctx context.Context, ownerID, currencyCode string, amount int64) (int64, error) {
	balance, err := m.credit(ctx, ownerID, currencyCode, amount)
	metrics.WalletOperations.WithLabelValues(OpCredit, metrics.Result(err)).Inc()
	return balance, err
}

func (m *Mutator) credit(ctx context.Context, ownerID, currencyCode string, amount int64) (int64, error) {
	if ownerID == "" {
		return 0, domain.ErrInvalidOwner
	}
	if amount < 0 {
		return 0, fmt.Errorf(ErrMsgNegativeAmountFmt, domain.ErrNegativeAmount, amount)
	}
	currency, err := m.Currency(ctx, currencyCode)
	if err != nil {
		return 0, err
	}

	wallet, err := m.tx.FindWallet(ctx, ownerID, currency.ID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgFindWalletFailed, err)
	}
	if wallet == nil {
		wallet = &domain.Wallet{OwnerID: ownerID, CurrencyID: currency.ID}
	}
	if wallet.Amount > math.MaxInt64-amount {
		return 0, fmt.Errorf("%w: balance overflow", domain.ErrInvalidArgument)
	}
	wallet.Amount += amount

	if err := m.tx.UpsertWallet(ctx, wallet); err != nil {
		return 0, fmt.Errorf(ErrMsgUpdateWalletFailed, err)
	}

	logger.FromContext(ctx).Debug(LogMsgCredited, "owner_id", ownerID, "currency", currency.Code, "amount", amount, "balance", wallet.Amount)
	return wallet.Amount, nil
}

// Debit removes amount from the owner's wallet and returns the new balance.
// The balance never goes negative.
func (m *Mutator) Debit(ctx context.Context, ownerID, currencyCode string, amount int64) (int64, error) {
	balance, err := m.debit(ctx, ownerID, currencyCode, amount)
	metrics.WalletOperations.WithLabelValues(OpDebit, metrics.Result(err)).Inc()
	return balance, err
}

func (m *Mutator) debit(ctx context.Context, ownerID, currencyCode string, amount int64) (int64, error) {
	if ownerID == "" {
		return 0, domain.ErrInvalidOwner
	}
	if amount < 0 {
		return 0, fmt.Errorf(ErrMsgNegativeAmountFmt, domain.ErrNegativeAmount, amount)
	}
	currency, err := m.Currency(ctx, currencyCode)
	if err != nil {
		return 0, err
	}

	wallet, err := m.tx.FindWallet(ctx, ownerID, currency.ID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgFindWalletFailed, err)
	}
	var available int64
	if wallet != nil {
		available = wallet.Amount
	}
	if available < amount {
		return 0, &domain.InsufficientFundsError{CurrencyCode: currency.Code, Required: amount, Available: available}
	}
	if amount == 0 {
		return available, nil
	}

	wallet.Amount -= amount
	if err := m.tx.UpsertWallet(ctx, wallet); err != nil {
		return 0, fmt.Errorf(ErrMsgUpdateWalletFailed, err)
	}

	logger.FromContext(ctx).Debug(LogMsgDebited, "owner_id", ownerID, "currency", currency.Code, "amount", amount, "balance", wallet.Amount)
	return wallet.Amount, nil
}
