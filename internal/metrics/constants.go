package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Ledger metric names
const (
	MetricNameLedgerOperations = "ledger_operations_total"
	MetricNameWalletOperations = "wallet_operations_total"
)

// Business metric names
const (
	MetricNameTrades      = "trades_total"
	MetricNameItemsSold   = "items_sold_total"
	MetricNameItemsBought = "items_bought_total"
	MetricNameMoneyEarned = "money_earned_total"
	MetricNameMoneySpent  = "money_spent_total"
	MetricNameGrants      = "grant_batches_total"
)

// Loot metric names
const (
	MetricNameLootRolls = "loot_rolls_total"
	MetricNameLootDrops = "loot_drops_total"
)

// Catalog metric names
const (
	MetricNameCatalogCacheLookups = "catalog_cache_lookups_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Ledger metric help text
const (
	HelpTextLedgerOperations = "Inventory ledger mutations by operation and result"
	HelpTextWalletOperations = "Wallet ledger mutations by operation and result"
)

// Business metric help text
const (
	HelpTextTrades      = "Buy and sell transactions by type and result"
	HelpTextItemsSold   = "Total number of items sold"
	HelpTextItemsBought = "Total number of items bought"
	HelpTextMoneyEarned = "Total currency credited by sales and loot"
	HelpTextMoneySpent  = "Total currency debited by purchases"
	HelpTextGrants      = "Grant batches applied by source and result"
)

// Loot metric help text
const (
	HelpTextLootRolls = "Drop table entry rolls by result"
	HelpTextLootDrops = "Loot drops by kind"
)

// Catalog metric help text
const (
	HelpTextCatalogCacheLookups = "Catalog cache lookups by result"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelOperation = "operation"
	LabelResult    = "result"
	LabelType      = "type"
	LabelItem      = "item"
	LabelCurrency  = "currency"
	LabelSource    = "source"
	LabelKind      = "kind"
)

// Label values
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultHit     = "hit"
	ResultMiss    = "miss"
)

// HTTPLatencyBuckets are the histogram buckets for request latency, in seconds
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
