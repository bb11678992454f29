package catalog

// Schema names
const (
	CatalogSchemaName = "configs/schemas/catalog.schema.json"
)

// Error messages
const (
	ErrMsgReadConfigFileFailed = "failed to read catalog file: %w"
	ErrMsgSchemaValidation     = "schema validation failed for %s: %w"
	ErrMsgRegisterSchemaFailed = "failed to register catalog schema: %w"
	ErrMsgParseConfigFailed    = "failed to parse catalog: %w"
	ErrMsgConfigNil            = "config is nil"
	ErrMsgNoItemsDefined       = "no items defined"
	ErrMsgUpsertCurrencyFailed = "failed to upsert currency %s: %w"
	ErrMsgUpsertItemFailed     = "failed to upsert item %s: %w"
	ErrMsgUpsertMonsterFailed  = "failed to upsert monster %s: %w"
	ErrMsgReplaceDropsFailed   = "failed to replace drop table of %s: %w"
	ErrMsgGetItemFailed        = "failed to get item: %w"
	ErrMsgGetCurrencyFailed    = "failed to get currency: %w"
	ErrMsgGetMonsterFailed     = "failed to get monster: %w"
	ErrFmtDuplicateCode        = "%w: duplicate %s code '%s'"
	ErrFmtInvalidDef           = "%w: %s '%s': %s"
	ErrFmtUnknownReference     = "%w: monster '%s' drop %d references unknown %s '%s'"
	ErrFmtInvalidDropTable     = "monster '%s': %w"
	ErrFmtUnknownItemType      = "%w: item '%s' has unknown type '%s'"
)

// Definition kinds used in error messages
const (
	DefCurrency = "currency"
	DefItem     = "item"
	DefMonster  = "monster"
)

// Log messages
const (
	LogMsgCatalogLoaded = "Catalog loaded"
	LogMsgSyncCompleted = "Catalog sync completed"
	LogMsgSyncedMonster = "Synced monster drop table"
	LogMsgUsingEmbedded = "No catalog path given, using embedded catalog"
	LogMsgCachePurged   = "Catalog cache purged"
)
