package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fintrack/ledger"
)

// Cashflow folds budget entries into a per-day income/spending/net series,
// dates ascending. Net is income minus spending for that day.
func Cashflow(entries []ledger.BudgetRecord) []CashflowPoint {
	type daily struct{ income, spending decimal.Decimal }
	days := make(map[time.Time]daily, len(entries))
	for _, e := range entries {
		dd := days[e.Date]
		switch e.Type {
		case ledger.Income:
			dd.income = dd.income.Add(e.Amount)
		case ledger.Spending:
			dd.spending = dd.spending.Add(e.Amount)
		}
		days[e.Date] = dd
	}

	out := make([]CashflowPoint, 0, len(days))
	for date, dd := range days {
		out = append(out, CashflowPoint{
			Date:     date,
			Income:   dd.income,
			Spending: dd.spending,
			Net:      dd.income.Sub(dd.spending),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// SpendingByCategory totals Spending entries per category. Income entries are
// excluded entirely.
func SpendingByCategory(entries []ledger.BudgetRecord) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, e := range entries {
		if e.Type != ledger.Spending {
			continue
		}
		out[e.Category] = out[e.Category].Add(e.Amount)
	}
	return out
}
