package domain

import "math"

// Currency codes
const (
	CurrencyGold = "GOLD"
)

// Inventory display constants
const (
	// DefaultSlotCapacity is the number of slots an inventory listing is padded to
	DefaultSlotCapacity = 24
	// MaxStackQuantity is the largest quantity a single stack may hold,
	// matching the INTEGER stacks.quantity column.
	MaxStackQuantity = math.MaxInt32
)

// Loot constants
const (
	// ChanceScale is the upper bound of a loot draw; a draw in [1, ChanceScale]
	// hits when it is at most chancePercent * 100.
	ChanceScale = 10000
	// ChanceMultiplier converts a percentage into draw units
	ChanceMultiplier = 100
)

// Economy constants
const (
	MaxTransactionQuantity = 10000
)

// Operation names recorded on OperationError and in metrics labels
const (
	OpAddStack       = "add_stack"
	OpRemoveStack    = "remove_stack"
	OpMintInstance   = "mint_instance"
	OpAddInstance    = "add_instance"
	OpRemoveInstance = "remove_instance"
)

// Transaction types for metrics and logs
const (
	TxTypeBuy   = "buy"
	TxTypeSell  = "sell"
	TxTypeGrant = "grant"
	TxTypeLoot  = "loot"
)
