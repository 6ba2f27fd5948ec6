// Package report renders the periodic text artifacts: the monthly summary
// written on the first day of each month and the ad-hoc plain-text ledger
// exports.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fintrack/analytics"
	"github.com/rustyeddy/fintrack/ledger"
	"github.com/rustyeddy/fintrack/logger"
)

// State tracks whether the current period's report has been produced yet.
type State int

const (
	Pending State = iota
	Generated
)

// Generator writes the monthly summary. It remembers only the label of the
// last month it reported, so when the calendar rolls into a new month the
// state returns to Pending and a long-running process keeps producing one
// report per month. It holds no cross-restart state: a rerun for an
// already-reported month overwrites the same file, which is idempotent by
// overwrite rather than by skip.
type Generator struct {
	store     ledger.Store
	dir       string
	currency  string
	lastMonth string // YYYY-MM label of the last report written by MaybeGenerate
	now       func() time.Time
}

// NewGenerator returns a Pending generator writing into dir. currency is the
// prefix used for money lines, e.g. "Rp".
func NewGenerator(store ledger.Store, dir, currency string) *Generator {
	return &Generator{store: store, dir: dir, currency: currency, now: time.Now}
}

// State reports whether the current period's report exists yet. The current
// period is the previous calendar month, which is what a day-1 tick writes.
func (g *Generator) State() State {
	year, month := previousMonth(g.now())
	if g.lastMonth == monthLabel(year, month) {
		return Generated
	}
	return Pending
}

// MaybeGenerate produces last month's report if today is the first calendar
// day of a month and that month has not been reported in this run yet. It
// returns the written path and whether a report was produced.
func (g *Generator) MaybeGenerate() (string, bool, error) {
	today := g.now()
	if today.Day() != 1 {
		return "", false, nil
	}
	year, month := previousMonth(today)
	if g.lastMonth == monthLabel(year, month) {
		return "", false, nil
	}

	path, summary, err := g.Generate(year, month)
	if err != nil {
		return "", false, err
	}
	g.lastMonth = summary.Month
	for _, w := range summary.Warnings {
		logger.Warn("monthly report", logger.Pair("warning", w))
	}
	return path, true, nil
}

// Generate builds and writes the report for the given month unconditionally,
// overwriting any previous file for that month.
func (g *Generator) Generate(year int, month time.Month) (string, Summary, error) {
	summary := g.Build(year, month)

	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", summary, fmt.Errorf("create reports dir: %w", err)
	}
	path := filepath.Join(g.dir, fmt.Sprintf("report-%s.txt", summary.Month))
	if err := os.WriteFile(path, []byte(summary.Render(g.currency)), 0o644); err != nil {
		return "", summary, fmt.Errorf("write report: %w", err)
	}

	logger.Info("monthly report written",
		logger.Pair("month", summary.Month),
		logger.Pair("path", path))
	return path, summary, nil
}

// Summary is the derived monthly report. Immutable once written for a given
// year-month, except for the deliberate overwrite on rerun.
type Summary struct {
	Month    string
	Profit   decimal.Decimal
	WinRate  float64
	Income   decimal.Decimal
	Spending decimal.Decimal
	Invested decimal.Decimal
	Warnings []string
}

// Build pulls all three ledgers, filters them to the given month and runs the
// relevant aggregates. A ledger that is absent or unreadable contributes
// zeros and a warning; the other sections are unaffected.
func (g *Generator) Build(year int, month time.Month) Summary {
	s := Summary{Month: monthLabel(year, month)}

	trades, err := g.store.Trades()
	switch {
	case err != nil:
		s.Warnings = append(s.Warnings, warning(ledger.DomainTrades, err))
	case len(trades) == 0:
		s.Warnings = append(s.Warnings, "trading journal data not found for monthly report")
	default:
		monthTrades := filterMonth(trades, year, month, func(t ledger.TradeRecord) time.Time { return t.Date })
		for _, t := range monthTrades {
			s.Profit = s.Profit.Add(t.ProfitLoss)
		}
		s.WinRate = analytics.WinRate(monthTrades)
	}

	entries, err := g.store.BudgetEntries()
	switch {
	case err != nil:
		s.Warnings = append(s.Warnings, warning(ledger.DomainBudget, err))
	case len(entries) == 0:
		s.Warnings = append(s.Warnings, "budget data not found for monthly report")
	default:
		monthEntries := filterMonth(entries, year, month, func(b ledger.BudgetRecord) time.Time { return b.Date })
		for _, e := range monthEntries {
			switch e.Type {
			case ledger.Income:
				s.Income = s.Income.Add(e.Amount)
			case ledger.Spending:
				s.Spending = s.Spending.Add(e.Amount)
			}
		}
	}

	investments, err := g.store.Investments()
	switch {
	case err != nil:
		s.Warnings = append(s.Warnings, warning(ledger.DomainInvestments, err))
	case len(investments) == 0:
		s.Warnings = append(s.Warnings, "investments data not found for monthly report")
	default:
		monthInvs := filterMonth(investments, year, month, func(v ledger.InvestmentRecord) time.Time { return v.Date })
		for _, v := range monthInvs {
			s.Invested = s.Invested.Add(v.Value)
		}
	}

	return s
}

// Render produces the fixed report body.
func (s Summary) Render(currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Monthly Report: %s\n", s.Month)
	fmt.Fprintf(&b, "Total Profit/Loss: %s\n", money(currency, s.Profit))
	fmt.Fprintf(&b, "Win Rate: %.2f%%\n", s.WinRate)
	fmt.Fprintf(&b, "Total Income: %s\n", money(currency, s.Income))
	fmt.Fprintf(&b, "Total Spending: %s\n", money(currency, s.Spending))
	fmt.Fprintf(&b, "Total Investment Value Added: %s\n", money(currency, s.Invested))
	return b.String()
}

// money renders "Rp 1,234.56" style currency values, always 2 decimals.
func money(currency string, v decimal.Decimal) string {
	return fmt.Sprintf("%s %s", currency, humanize.FormatFloat("#,###.##", v.InexactFloat64()))
}

func monthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// Period resolves a YYYY-MM label to its year and month. An empty label means
// the previous calendar month, matching what the day-1 tick reports.
func Period(label string) (int, time.Month, error) {
	if label == "" {
		year, month := previousMonth(time.Now())
		return year, month, nil
	}
	t, err := time.Parse("2006-01", label)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q (want YYYY-MM): %w", label, err)
	}
	return t.Year(), t.Month(), nil
}

// previousMonth returns the year and month preceding t's month.
func previousMonth(t time.Time) (int, time.Month) {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	prev := firstOfMonth.AddDate(0, 0, -1)
	return prev.Year(), prev.Month()
}

func filterMonth[T any](records []T, year int, month time.Month, when func(T) time.Time) []T {
	var out []T
	for _, r := range records {
		d := when(r)
		if d.Year() == year && d.Month() == month {
			out = append(out, r)
		}
	}
	return out
}

func warning(domain ledger.Domain, err error) string {
	var cerr *ledger.CorruptError
	if errors.As(err, &cerr) {
		return fmt.Sprintf("%s ledger unreadable, section skipped: %v", domain, cerr.Err)
	}
	return fmt.Sprintf("%s ledger: %v", domain, err)
}
