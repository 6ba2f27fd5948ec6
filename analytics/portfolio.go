package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fintrack/id"
	"github.com/rustyeddy/fintrack/ledger"
)

// LatestValuePerAsset returns the most recent snapshot value per asset,
// where most recent means the maximum date. Two snapshots of the same asset
// on the same date are resolved in favor of the later-appended record, which
// is the one with the later-minted ID.
func LatestValuePerAsset(investments []ledger.InvestmentRecord) map[string]decimal.Decimal {
	latest := make(map[string]ledger.InvestmentRecord)
	for _, v := range investments {
		cur, seen := latest[v.Asset]
		if !seen || v.Date.After(cur.Date) || (v.Date.Equal(cur.Date) && !id.Less(v.ID, cur.ID)) {
			latest[v.Asset] = v
		}
	}

	out := make(map[string]decimal.Decimal, len(latest))
	for asset, rec := range latest {
		out[asset] = rec.Value
	}
	return out
}

// PortfolioValueOverTime sums every snapshot recorded on each day, dates
// ascending. This is a cross-sectional sum of that day's records, not a
// running balance: days with no snapshot for an asset do not carry its last
// known value forward. That matches the historical behavior this series has
// always had, so it is kept literally.
func PortfolioValueOverTime(investments []ledger.InvestmentRecord) []DatePoint {
	sums := make(map[time.Time]decimal.Decimal, len(investments))
	for _, v := range investments {
		sums[v.Date] = sums[v.Date].Add(v.Value)
	}
	return sortedSeries(sums)
}

// FlaggedInvestment pairs a snapshot with a session-scoped withdrawn mark.
// The mark comes from the caller's current selection and is never persisted.
type FlaggedInvestment struct {
	ledger.InvestmentRecord
	Withdrawn bool `json:"withdrawn"`
}

// MarkWithdrawn flags every snapshot whose asset is in the given selection.
func MarkWithdrawn(investments []ledger.InvestmentRecord, assets []string) []FlaggedInvestment {
	selected := make(map[string]bool, len(assets))
	for _, a := range assets {
		selected[a] = true
	}

	out := make([]FlaggedInvestment, 0, len(investments))
	for _, v := range investments {
		out = append(out, FlaggedInvestment{InvestmentRecord: v, Withdrawn: selected[v.Asset]})
	}
	return out
}
