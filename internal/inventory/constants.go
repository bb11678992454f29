package inventory

// Database operation error messages
const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgFindStackFailed         = "failed to find stack: %w"
	ErrMsgUpdateStackFailed       = "failed to update stack: %w"
	ErrMsgFindInstanceFailed      = "failed to find instance: %w"
	ErrMsgUpdateInstanceFailed    = "failed to update instance: %w"
	ErrMsgGetItemFailed           = "failed to get item: %w"
	ErrMsgListHoldingsFailed      = "failed to list holdings: %w"
)

// Formatted domain error messages
const (
	ErrMsgItemNotFoundFmt     = "%w: item %d"
	ErrMsgInstanceNotFoundFmt = "%w: %s"
	ErrMsgStackNotFoundFmt    = "%w: owner %s item %d"
	ErrMsgStackLimitFmt       = "%w: item %d holds %d, adding %d"
)

// Log messages
const (
	LogMsgStackChanged     = "Stack quantity changed"
	LogMsgStackDeleted     = "Stack emptied and deleted"
	LogMsgInstanceMinted   = "Item instance minted"
	LogMsgInstanceMoved    = "Item instance transferred"
	LogMsgInstanceRemoved  = "Item instance removed"
	LogMsgChangeFailed     = "Inventory change failed"
	LogMsgCapacityExceeded = "Holdings exceed slot capacity"
	LogMsgItemConsumed     = "Item consumed"
)
