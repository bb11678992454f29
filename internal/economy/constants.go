package economy

// ==================== Error Messages ====================

// Formatted error messages for items
const (
	ErrMsgItemNotFoundFmt    = "%w: item %d"
	ErrMsgMonsterNotFoundFmt = "%w: monster %d"
	ErrMsgItemNotSellableFmt = "%w: item %d"
	ErrMsgNotInInventoryFmt  = "%w: owner %s item %d"
)

// Formatted error messages for validation
const (
	ErrMsgInvalidRequestFmt     = "%w: %s"
	ErrMsgInvalidQuantityFmt    = "invalid quantity: %d: %w"
	ErrMsgQuantityExceedsMaxFmt = "quantity %d exceeds maximum allowed (%d): %w"
	ErrMsgUniqueQuantityFmt     = "unique item %d trades one instance at a time, got %d: %w"
	ErrMsgWorldIDOnStackedFmt   = "%w: item %d"
	ErrMsgPriceOverflowFmt      = "%w: %d x %d"
)

// Database operation error messages
const (
	ErrMsgGetItemFailed           = "failed to get item: %w"
	ErrMsgGetMonsterFailed        = "failed to get monster: %w"
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgFindHoldingFailed       = "failed to find holding: %w"
	ErrMsgResolveLootFailed       = "failed to resolve loot: %w"
	ErrMsgCreditLootFailed        = "failed to credit loot currency: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgBuyCalled          = "Buy called"
	LogMsgItemPurchased      = "Item purchased"
	LogMsgSellCalled         = "Sell called"
	LogMsgItemSold           = "Item sold"
	LogMsgSellPriceIgnored   = "Caller price ignored for sell, using catalog cost"
	LogMsgGrantBatchApplied  = "Grant batch applied"
	LogMsgGrantBatchRejected = "Grant batch rolled back"
	LogMsgLootAwarded        = "Loot awarded"
	LogMsgTradeFailed        = "Trade failed"
)
