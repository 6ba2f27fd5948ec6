package ledger

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Canonical field orders. These are the CSV headers and the SQLite column
// orders; stored ledgers stay self-describing through them. New fields are
// appended at the end, never reordered, which is why ID sits last.
var (
	TradeFields      = []string{"Date", "Pair", "Position", "Entry", "Exit", "RSI", "MA", "News", "ProfitLoss", "Notes", "ID"}
	BudgetFields     = []string{"Date", "Type", "Category", "Amount", "Notes", "ID"}
	InvestmentFields = []string{"Date", "Asset", "Category", "Value", "Notes", "ID"}
)

// CorruptError reports unreadable or malformed stored data. Callers treat it
// as a recoverable warning for the affected ledger, never as fatal.
type CorruptError struct {
	Domain Domain
	Path   string
	Err    error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt %s ledger at %s: %v", e.Domain, e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// schema binds one record kind to its ledger file name, canonical field
// order and row codec. The store machinery is written once against schema
// and specialized per kind below.
type schema[T any] struct {
	domain Domain
	file   string
	fields []string
	encode func(T) []string
	decode func([]string) (T, error)
}

var tradeSchema = schema[TradeRecord]{
	domain: DomainTrades,
	file:   "trading_journal.csv",
	fields: TradeFields,
	encode: func(t TradeRecord) []string {
		return []string{
			t.Date.Format(DateFormat),
			t.Pair,
			string(t.Position),
			t.Entry.String(),
			t.Exit.String(),
			strconv.Itoa(t.RSI),
			t.MA.String(),
			t.News,
			t.ProfitLoss.String(),
			t.Notes,
			t.ID,
		}
	},
	decode: func(row []string) (TradeRecord, error) {
		var t TradeRecord
		if len(row) < 10 {
			return t, fmt.Errorf("want at least 10 fields, got %d", len(row))
		}
		var err error
		if t.Date, err = ParseDate(row[0]); err != nil {
			return t, err
		}
		t.Pair = row[1]
		t.Position = Position(row[2])
		if t.Entry, err = decimal.NewFromString(row[3]); err != nil {
			return t, fmt.Errorf("entry: %w", err)
		}
		if t.Exit, err = decimal.NewFromString(row[4]); err != nil {
			return t, fmt.Errorf("exit: %w", err)
		}
		if t.RSI, err = strconv.Atoi(row[5]); err != nil {
			return t, fmt.Errorf("rsi: %w", err)
		}
		if t.MA, err = decimal.NewFromString(row[6]); err != nil {
			return t, fmt.Errorf("ma: %w", err)
		}
		t.News = row[7]
		if t.ProfitLoss, err = decimal.NewFromString(row[8]); err != nil {
			return t, fmt.Errorf("profit/loss: %w", err)
		}
		t.Notes = row[9]
		if len(row) > 10 {
			t.ID = row[10]
		}
		return t, nil
	},
}

var budgetSchema = schema[BudgetRecord]{
	domain: DomainBudget,
	file:   "budget.csv",
	fields: BudgetFields,
	encode: func(b BudgetRecord) []string {
		return []string{
			b.Date.Format(DateFormat),
			string(b.Type),
			b.Category,
			b.Amount.String(),
			b.Notes,
			b.ID,
		}
	},
	decode: func(row []string) (BudgetRecord, error) {
		var b BudgetRecord
		if len(row) < 5 {
			return b, fmt.Errorf("want at least 5 fields, got %d", len(row))
		}
		var err error
		if b.Date, err = ParseDate(row[0]); err != nil {
			return b, err
		}
		b.Type = EntryType(row[1])
		b.Category = row[2]
		if b.Amount, err = decimal.NewFromString(row[3]); err != nil {
			return b, fmt.Errorf("amount: %w", err)
		}
		b.Notes = row[4]
		if len(row) > 5 {
			b.ID = row[5]
		}
		return b, nil
	},
}

var investmentSchema = schema[InvestmentRecord]{
	domain: DomainInvestments,
	file:   "investments.csv",
	fields: InvestmentFields,
	encode: func(v InvestmentRecord) []string {
		return []string{
			v.Date.Format(DateFormat),
			v.Asset,
			v.Category,
			v.Value.String(),
			v.Notes,
			v.ID,
		}
	},
	decode: func(row []string) (InvestmentRecord, error) {
		var v InvestmentRecord
		if len(row) < 5 {
			return v, fmt.Errorf("want at least 5 fields, got %d", len(row))
		}
		var err error
		if v.Date, err = ParseDate(row[0]); err != nil {
			return v, err
		}
		v.Asset = row[1]
		v.Category = row[2]
		if v.Value, err = decimal.NewFromString(row[3]); err != nil {
			return v, fmt.Errorf("value: %w", err)
		}
		v.Notes = row[4]
		if len(row) > 5 {
			v.ID = row[5]
		}
		return v, nil
	},
}
