// Package analytics computes chart-ready aggregates over ledger snapshots.
// Every function here is pure: no I/O, no mutation of its input, and fail-soft
// on empty ledgers (empty in, empty out; zero denominators yield zero).
package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// DatePoint is one step of a time series.
type DatePoint struct {
	Date  time.Time       `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// GroupSum is one bucket of a categorical aggregate.
type GroupSum struct {
	Key string          `json:"key"`
	Sum decimal.Decimal `json:"sum"`
}

// CashflowPoint is one day of the income/spending/net series.
type CashflowPoint struct {
	Date     time.Time       `json:"date"`
	Income   decimal.Decimal `json:"income"`
	Spending decimal.Decimal `json:"spending"`
	Net      decimal.Decimal `json:"net"`
}
