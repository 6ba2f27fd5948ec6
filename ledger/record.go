// Package ledger defines the three record kinds tracked by fintrack (trades,
// budget entries, investment valuations) and the append-only stores that
// persist them. A ledger is an ordered sequence of records of one kind:
// created on first append, grown by append only, never compacted. Duplicates
// are allowed; append order is the only ordering guarantee.
package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fintrack/id"
)

// DateFormat is the ISO-8601 day format used everywhere dates are stored.
const DateFormat = "2006-01-02"

// ParseDate parses an ISO-8601 day string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want %s): %w", s, DateFormat, err)
	}
	return t, nil
}

// Domain names one of the three ledgers.
type Domain string

const (
	DomainTrades      Domain = "trades"
	DomainBudget      Domain = "budget"
	DomainInvestments Domain = "investments"
)

// Domains lists every ledger domain in canonical order.
var Domains = []Domain{DomainTrades, DomainBudget, DomainInvestments}

// ParseDomain maps a user-supplied name to a Domain.
func ParseDomain(s string) (Domain, error) {
	switch Domain(s) {
	case DomainTrades, DomainBudget, DomainInvestments:
		return Domain(s), nil
	}
	return "", fmt.Errorf("unknown domain %q (want trades, budget or investments)", s)
}

// Position is the side of a trade.
type Position string

const (
	Buy  Position = "Buy"
	Sell Position = "Sell"
)

// EntryType is the direction of a budget entry. The direction is carried
// here, never by the sign of the amount.
type EntryType string

const (
	Income   EntryType = "Income"
	Spending EntryType = "Spending"
)

// BudgetCategories is the closed set of budget entry categories.
var BudgetCategories = []string{
	"Food", "Transport", "Entertainment", "Utilities",
	"Shopping", "Health", "Salary", "Other",
}

// AssetCategories is the closed set of investment categories.
var AssetCategories = []string{"Crypto", "Stock", "Gold", "Cash", "Savings", "Other"}

// ValidationError rejects a record before it reaches a store. The original
// input is left untouched so the caller can surface it for correction.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

// TradeRecord is one row of the trading journal. ProfitLoss is derived from
// Entry/Exit/Position at write time and is never accepted from the outside.
type TradeRecord struct {
	Date       time.Time
	Pair       string
	Position   Position
	Entry      decimal.Decimal
	Exit       decimal.Decimal
	RSI        int
	MA         decimal.Decimal
	News       string
	ProfitLoss decimal.Decimal
	Notes      string
	ID         string
}

// Derive validates the trade and recomputes its derived fields: ProfitLoss is
// (Exit-Entry) for a Buy and (Entry-Exit) for a Sell, rounded to 2 decimals.
// A missing ID is minted here.
func (t TradeRecord) Derive() (TradeRecord, error) {
	if t.Pair == "" {
		return t, &ValidationError{Field: "pair", Msg: "must not be empty"}
	}
	if t.Position != Buy && t.Position != Sell {
		return t, &ValidationError{Field: "position", Msg: fmt.Sprintf("%q is not Buy or Sell", t.Position)}
	}
	if t.RSI < 0 || t.RSI > 100 {
		return t, &ValidationError{Field: "rsi", Msg: fmt.Sprintf("%d is outside 0-100", t.RSI)}
	}

	pl := t.Exit.Sub(t.Entry)
	if t.Position == Sell {
		pl = t.Entry.Sub(t.Exit)
	}
	t.ProfitLoss = pl.Round(2)

	if t.ID == "" {
		t.ID = id.New()
	}
	return t, nil
}

// BudgetRecord is one income or spending entry.
type BudgetRecord struct {
	Date     time.Time
	Type     EntryType
	Category string
	Amount   decimal.Decimal
	Notes    string
	ID       string
}

// Derive validates the entry. Amounts must be non-negative; sign is carried
// by Type.
func (b BudgetRecord) Derive() (BudgetRecord, error) {
	if b.Type != Income && b.Type != Spending {
		return b, &ValidationError{Field: "type", Msg: fmt.Sprintf("%q is not Income or Spending", b.Type)}
	}
	if !inSet(b.Category, BudgetCategories) {
		return b, &ValidationError{Field: "category", Msg: fmt.Sprintf("unknown category %q", b.Category)}
	}
	if b.Amount.IsNegative() {
		return b, &ValidationError{Field: "amount", Msg: "must not be negative"}
	}
	if b.ID == "" {
		b.ID = id.New()
	}
	return b, nil
}

// InvestmentRecord is a point-in-time valuation of one asset, not a delta.
// The latest value of an asset is the value of its chronologically last
// record.
type InvestmentRecord struct {
	Date     time.Time
	Asset    string
	Category string
	Value    decimal.Decimal
	Notes    string
	ID       string
}

// Derive validates the valuation snapshot.
func (v InvestmentRecord) Derive() (InvestmentRecord, error) {
	if v.Asset == "" {
		return v, &ValidationError{Field: "asset", Msg: "must not be empty"}
	}
	if !inSet(v.Category, AssetCategories) {
		return v, &ValidationError{Field: "category", Msg: fmt.Sprintf("unknown category %q", v.Category)}
	}
	if v.Value.IsNegative() {
		return v, &ValidationError{Field: "value", Msg: "must not be negative"}
	}
	if v.ID == "" {
		v.ID = id.New()
	}
	return v, nil
}

func inSet(s string, set []string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
