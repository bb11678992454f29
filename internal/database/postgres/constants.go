package postgres

// Error message formats
const (
	ErrMsgBeginTxFailed        = "failed to begin transaction: %w"
	ErrMsgCommitFailed         = "failed to commit transaction: %w"
	ErrMsgGetItemFailed        = "failed to get item: %w"
	ErrMsgListItemsFailed      = "failed to list items: %w"
	ErrMsgUpsertItemFailed     = "failed to upsert item %s: %w"
	ErrMsgGetCurrencyFailed    = "failed to get currency: %w"
	ErrMsgListCurrenciesFailed = "failed to list currencies: %w"
	ErrMsgUpsertCurrencyFailed = "failed to upsert currency %s: %w"
	ErrMsgGetMonsterFailed     = "failed to get monster: %w"
	ErrMsgUpsertMonsterFailed  = "failed to upsert monster %s: %w"
	ErrMsgGetDropsFailed       = "failed to get drop table of monster %d: %w"
	ErrMsgReplaceDropsFailed   = "failed to replace drop table of monster %d: %w"
	ErrMsgParseChanceFailed    = "failed to parse chance %q: %w"
	ErrMsgFindStackFailed      = "failed to find stack: %w"
	ErrMsgUpdateStackFailed    = "failed to update stack: %w"
	ErrMsgListStacksFailed     = "failed to list stacks: %w"
	ErrMsgFindInstanceFailed   = "failed to find instance: %w"
	ErrMsgInsertInstanceFailed = "failed to insert instance: %w"
	ErrMsgUpdateInstanceFailed = "failed to update instance: %w"
	ErrMsgListInstancesFailed  = "failed to list instances: %w"
	ErrMsgDuplicateWorldIDFmt  = "duplicate world id %s"
	ErrMsgFindWalletFailed     = "failed to find wallet: %w"
	ErrMsgUpsertWalletFailed   = "failed to upsert wallet: %w"
	ErrMsgMarshalStatsFailed   = "failed to marshal stats: %w"
	ErrMsgUnmarshalStatsFailed = "failed to unmarshal stats: %w"
	ErrMsgInstanceNotFoundFmt  = "%w: %s"
	ErrMsgMonsterNotFoundFmt   = "%w: %d"
)

// pgUniqueViolation is the SQLSTATE for unique_violation
const pgUniqueViolation = "23505"
