package loot

// Error messages
const (
	ErrMsgGetItemFailed     = "failed to get item: %w"
	ErrMsgGetCurrencyFailed = "failed to get currency: %w"
	ErrMsgMintFailed        = "failed to mint loot instance: %w"
	ErrMsgItemNotFoundFmt   = "%w: item %d"
	ErrMsgCurrencyIDFmt     = "%w: currency %d"
	ErrMsgEntryFmt          = "%w: entry %d: %s"
)

// Drop table validation problems
const (
	ProblemChancePrecision = "chance_percent has more than two decimal places"
	ProblemChanceRange     = "chance_percent must be between 0 and 100"
	ProblemKind            = "kind must be CURRENCY or ITEM"
	ProblemReference       = "exactly one of currency_id or item_id must be set, matching kind"
	ProblemMinAmount       = "min_amount must be at least 1"
	ProblemMaxAmount       = "max_amount must not be less than min_amount"
)

// Drop kinds for metrics
const (
	DropStack    = "stack"
	DropInstance = "instance"
	DropCurrency = "currency"
)

// Log messages
const (
	LogMsgItemDropped     = "Loot item dropped"
	LogMsgCurrencyDropped = "Loot currency dropped"
	LogMsgTableResolved   = "Drop table resolved"
)
