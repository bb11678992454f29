package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Ledger Metrics
var (
	LedgerOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLedgerOperations,
			Help: HelpTextLedgerOperations,
		},
		[]string{LabelOperation, LabelResult},
	)

	WalletOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWalletOperations,
			Help: HelpTextWalletOperations,
		},
		[]string{LabelOperation, LabelResult},
	)
)

// Business Metrics
var (
	Trades = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTrades,
			Help: HelpTextTrades,
		},
		[]string{LabelType, LabelResult},
	)

	ItemsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsSold,
			Help: HelpTextItemsSold,
		},
		[]string{LabelItem},
	)

	ItemsBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsBought,
			Help: HelpTextItemsBought,
		},
		[]string{LabelItem},
	)

	MoneyEarned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMoneyEarned,
			Help: HelpTextMoneyEarned,
		},
		[]string{LabelCurrency},
	)

	MoneySpent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMoneySpent,
			Help: HelpTextMoneySpent,
		},
		[]string{LabelCurrency},
	)

	GrantBatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGrants,
			Help: HelpTextGrants,
		},
		[]string{LabelSource, LabelResult},
	)
)

// Loot Metrics
var (
	LootRolls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLootRolls,
			Help: HelpTextLootRolls,
		},
		[]string{LabelResult},
	)

	LootDrops = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLootDrops,
			Help: HelpTextLootDrops,
		},
		[]string{LabelKind},
	)
)

// Catalog Metrics
var (
	CatalogCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCatalogCacheLookups,
			Help: HelpTextCatalogCacheLookups,
		},
		[]string{LabelResult},
	)
)

// Result returns the result label for err
func Result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
