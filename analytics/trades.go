package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fintrack/ledger"
)

// ProfitByDate sums profit/loss per day, dates ascending.
func ProfitByDate(trades []ledger.TradeRecord) []DatePoint {
	sums := make(map[time.Time]decimal.Decimal, len(trades))
	for _, t := range trades {
		sums[t.Date] = sums[t.Date].Add(t.ProfitLoss)
	}
	return sortedSeries(sums)
}

// ProfitByPair sums profit/loss per instrument, sorted descending by sum for
// display. Equal sums fall back to pair name so the order is deterministic.
func ProfitByPair(trades []ledger.TradeRecord) []GroupSum {
	sums := make(map[string]decimal.Decimal, len(trades))
	for _, t := range trades {
		sums[t.Pair] = sums[t.Pair].Add(t.ProfitLoss)
	}

	out := make([]GroupSum, 0, len(sums))
	for k, v := range sums {
		out = append(out, GroupSum{Key: k, Sum: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Sum.Cmp(out[j].Sum); c != 0 {
			return c > 0
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// WinLossCounts counts winning (profit/loss > 0) and losing (< 0) trades.
// Break-even trades land in neither bucket.
func WinLossCounts(trades []ledger.TradeRecord) (wins, losses int) {
	for _, t := range trades {
		switch t.ProfitLoss.Sign() {
		case 1:
			wins++
		case -1:
			losses++
		}
	}
	return wins, losses
}

// WinRate is wins over total trades as a percentage rounded to 2 decimals.
// The denominator counts every trade, break-even included. An empty ledger
// yields 0, not an error.
func WinRate(trades []ledger.TradeRecord) float64 {
	if len(trades) == 0 {
		return 0
	}
	wins, _ := WinLossCounts(trades)
	rate := float64(wins) / float64(len(trades)) * 100
	return math.Round(rate*100) / 100
}

// Extrema returns the best and worst trade by profit/loss. Ties are broken by
// the first occurrence in ledger order. ok is false for an empty ledger.
func Extrema(trades []ledger.TradeRecord) (best, worst ledger.TradeRecord, ok bool) {
	if len(trades) == 0 {
		return best, worst, false
	}
	best, worst = trades[0], trades[0]
	for _, t := range trades[1:] {
		if t.ProfitLoss.GreaterThan(best.ProfitLoss) {
			best = t
		}
		if t.ProfitLoss.LessThan(worst.ProfitLoss) {
			worst = t
		}
	}
	return best, worst, true
}

func sortedSeries(sums map[time.Time]decimal.Decimal) []DatePoint {
	out := make([]DatePoint, 0, len(sums))
	for k, v := range sums {
		out = append(out, DatePoint{Date: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
