package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ledger operation metrics, incremented by the HTTP handlers.
var (
	AccountsOpened = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledgerbank_accounts_opened_total",
		Help: "Total number of accounts opened",
	})

	TransactionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgerbank_transactions_total",
			Help: "Total number of ledger transactions by type",
		},
		[]string{"type"},
	)

	TransactionAmount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ledgerbank_transaction_amount",
		Help:    "Transaction amounts",
		Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
	})

	LedgerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgerbank_ledger_errors_total",
			Help: "Total number of rejected ledger operations by reason",
		},
		[]string{"reason"},
	)

	LogsExported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledgerbank_logs_exported_total",
		Help: "Total number of transaction-log exports",
	})
)
