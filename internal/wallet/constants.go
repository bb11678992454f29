package wallet

// Database operation error messages
const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgGetCurrencyFailed       = "failed to get currency: %w"
	ErrMsgFindWalletFailed        = "failed to find wallet: %w"
	ErrMsgUpdateWalletFailed      = "failed to update wallet: %w"
)

// Formatted domain error messages
const (
	ErrMsgUnknownCurrencyFmt = "%w: %s"
	ErrMsgNegativeAmountFmt  = "%w: %d"
)

// Wallet operation names for metrics
const (
	OpCredit = "credit"
	OpDebit  = "debit"
)

// Log messages
const (
	LogMsgCredited = "Wallet credited"
	LogMsgDebited  = "Wallet debited"
)
