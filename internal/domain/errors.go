package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Kinds
	ErrMsgInvalidArgument      = "invalid argument"
	ErrMsgNotFound             = "not found"
	ErrMsgInsufficientQuantity = "insufficient quantity"
	ErrMsgInsufficientFunds    = "insufficient funds"
	ErrMsgOperationFailed      = "operation failed"
	ErrMsgBatchGrantFailed     = "batch grant failed"

	// Item errors
	ErrMsgItemNotFound     = "item not found"
	ErrMsgInstanceNotFound = "item instance not found"
	ErrMsgStackNotFound    = "item stack not found"
	ErrMsgNotInInventory   = "item not in inventory"
	ErrMsgItemNotStackable = "item is not stackable"
	ErrMsgItemIsStackable  = "item is stackable"
	ErrMsgItemNotSellable  = "item cannot be sold"

	// Economy errors
	ErrMsgUnknownCurrency = "unknown currency"
	ErrMsgMonsterNotFound = "monster not found"

	// Validation errors
	ErrMsgZeroDelta            = "delta must be non-zero"
	ErrMsgInvalidInstanceDelta = "delta for a unique item must be 1 or -1"
	ErrMsgWorldIDRequired      = "world id is required for a unique item"
	ErrMsgNegativeAmount       = "amount must not be negative"
	ErrMsgInvalidQuantity      = "quantity must be positive"
	ErrMsgInvalidOwner         = "owner id is required"
	ErrMsgInvalidDropTable     = "invalid drop table"
	ErrMsgPriceOverflow        = "trade total overflows"
	ErrMsgStackLimit           = "stack quantity exceeds limit"
	ErrMsgWorldIDOnStacked     = "world id is not allowed for a stacked item"

	// Database/System errors
	ErrMsgTxClosed = "tx is closed"
)

// Error kinds. Every error returned by the ledgers matches exactly one of
// these with errors.Is.
var (
	ErrInvalidArgument      = errors.New(ErrMsgInvalidArgument)
	ErrNotFound             = errors.New(ErrMsgNotFound)
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)
	ErrInsufficientFunds    = errors.New(ErrMsgInsufficientFunds)
	ErrOperationFailed      = errors.New(ErrMsgOperationFailed)
	ErrBatchGrantFailed     = errors.New(ErrMsgBatchGrantFailed)
)

// Specific errors, each belonging to a kind.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrItemNotFound     = kindError(ErrNotFound, ErrMsgItemNotFound)
	ErrInstanceNotFound = kindError(ErrNotFound, ErrMsgInstanceNotFound)
	ErrStackNotFound    = kindError(ErrNotFound, ErrMsgStackNotFound)
	ErrNotInInventory   = kindError(ErrNotFound, ErrMsgNotInInventory)
	ErrUnknownCurrency  = kindError(ErrNotFound, ErrMsgUnknownCurrency)
	ErrMonsterNotFound  = kindError(ErrNotFound, ErrMsgMonsterNotFound)

	ErrZeroDelta            = kindError(ErrInvalidArgument, ErrMsgZeroDelta)
	ErrInvalidInstanceDelta = kindError(ErrInvalidArgument, ErrMsgInvalidInstanceDelta)
	ErrWorldIDRequired      = kindError(ErrInvalidArgument, ErrMsgWorldIDRequired)
	ErrNegativeAmount       = kindError(ErrInvalidArgument, ErrMsgNegativeAmount)
	ErrInvalidQuantity      = kindError(ErrInvalidArgument, ErrMsgInvalidQuantity)
	ErrInvalidOwner         = kindError(ErrInvalidArgument, ErrMsgInvalidOwner)
	ErrItemNotStackable     = kindError(ErrInvalidArgument, ErrMsgItemNotStackable)
	ErrItemIsStackable      = kindError(ErrInvalidArgument, ErrMsgItemIsStackable)
	ErrInvalidDropTable     = kindError(ErrInvalidArgument, ErrMsgInvalidDropTable)
	ErrItemNotSellable      = kindError(ErrInvalidArgument, ErrMsgItemNotSellable)
	ErrPriceOverflow        = kindError(ErrInvalidArgument, ErrMsgPriceOverflow)
	ErrStackLimit           = kindError(ErrInvalidArgument, ErrMsgStackLimit)
	ErrWorldIDOnStacked     = kindError(ErrInvalidArgument, ErrMsgWorldIDOnStacked)
)

type kindedError struct {
	msg  string
	kind error
}

func kindError(kind error, msg string) error {
	return &kindedError{msg: msg, kind: kind}
}

func (e *kindedError) Error() string { return e.msg }
func (e *kindedError) Unwrap() error { return e.kind }

// InsufficientQuantityError reports a removal larger than the held stack.
// Cause is set when the stack does not exist at all.
type InsufficientQuantityError struct {
	ItemID    int
	Required  int
	Available int
	Cause     error
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("%s: item %d requires %d, available %d", ErrMsgInsufficientQuantity, e.ItemID, e.Required, e.Available)
}

func (e *InsufficientQuantityError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrInsufficientQuantity, e.Cause}
	}
	return []error{ErrInsufficientQuantity}
}

// InsufficientFundsError reports a debit larger than the wallet balance
type InsufficientFundsError struct {
	CurrencyCode string
	Required     int64
	Available    int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: %s requires %d, available %d", ErrMsgInsufficientFunds, e.CurrencyCode, e.Required, e.Available)
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

// OperationError is the single error shape returned by ChangeQuantity,
// regardless of whether the item is stacked or unique.
type OperationError struct {
	Op     string
	ItemID int
	Err    error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %s item %d: %v", ErrMsgOperationFailed, e.Op, e.ItemID, e.Err)
}

func (e *OperationError) Unwrap() []error {
	return []error{ErrOperationFailed, e.Err}
}

// BatchGrantError wraps the first failing grant of a rolled back batch
type BatchGrantError struct {
	Index int
	Grant Grant
	Err   error
}

func (e *BatchGrantError) Error() string {
	return fmt.Sprintf("%s: grant %d (item %d, amount %d): %v", ErrMsgBatchGrantFailed, e.Index, e.Grant.ItemID, e.Grant.Amount, e.Err)
}

func (e *BatchGrantError) Unwrap() []error {
	return []error{ErrBatchGrantFailed, e.Err}
}

// User-facing messages, derived from the error kind rather than the raw error
const (
	UserMsgInvalidRequest       = "That action is not possible."
	UserMsgNotFound             = "That item is not in your inventory."
	UserMsgUnknownCurrency      = "That currency does not exist."
	UserMsgInsufficientQuantity = "You do not have enough of that item."
	UserMsgInsufficientFunds    = "You do not have enough money."
	UserMsgInternal             = "Something went wrong. Please try again."
)

// UserMessage maps an error to a human-readable message safe to show players
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInsufficientFunds):
		return UserMsgInsufficientFunds
	case errors.Is(err, ErrInsufficientQuantity):
		return UserMsgInsufficientQuantity
	case errors.Is(err, ErrUnknownCurrency):
		return UserMsgUnknownCurrency
	case errors.Is(err, ErrNotFound):
		return UserMsgNotFound
	case errors.Is(err, ErrInvalidArgument):
		return UserMsgInvalidRequest
	default:
		return UserMsgInternal
	}
}
