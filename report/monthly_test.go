package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fintrack/ledger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) time.Time {
	t, err := time.Parse(ledger.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func seededStore(t *testing.T) ledger.Store {
	t.Helper()
	s, err := ledger.NewCSV(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.AppendTrade(ledger.TradeRecord{
		Date: day("2024-04-10"), Pair: "XAU/USD", Position: ledger.Buy,
		Entry: d("100"), Exit: d("110"), RSI: 60,
	}))
	require.NoError(t, s.AppendTrade(ledger.TradeRecord{
		Date: day("2024-04-12"), Pair: "EUR/USD", Position: ledger.Sell,
		Entry: d("50"), Exit: d("40"), RSI: 45,
	}))
	// Outside the reported month; must not count.
	require.NoError(t, s.AppendTrade(ledger.TradeRecord{
		Date: day("2024-05-02"), Pair: "EUR/USD", Position: ledger.Buy,
		Entry: d("10"), Exit: d("5"), RSI: 50,
	}))

	require.NoError(t, s.AppendInvestment(ledger.InvestmentRecord{
		Date: day("2024-04-20"), Asset: "BTC", Category: "Crypto", Value: d("1000"),
	}))
	return s
}

func TestBuildMissingBudgetLedger(t *testing.T) {
	t.Parallel()

	gen := NewGenerator(seededStore(t), t.TempDir(), "Rp")
	summary := gen.Build(2024, time.April)

	assert.True(t, summary.Profit.Equal(d("20")), "profit = %s", summary.Profit)
	assert.Equal(t, 100.0, summary.WinRate)
	assert.True(t, summary.Income.IsZero())
	assert.True(t, summary.Spending.IsZero())
	assert.True(t, summary.Invested.Equal(d("1000")))

	require.Len(t, summary.Warnings, 1)
	assert.Contains(t, summary.Warnings[0], "budget")
}

func TestBuildEmptyStore(t *testing.T) {
	t.Parallel()

	store, err := ledger.NewCSV(t.TempDir())
	require.NoError(t, err)
	gen := NewGenerator(store, t.TempDir(), "Rp")

	summary := gen.Build(2024, time.April)
	assert.True(t, summary.Profit.IsZero())
	assert.Zero(t, summary.WinRate)
	assert.Len(t, summary.Warnings, 3)
}

func TestGenerateWritesFixedBody(t *testing.T) {
	t.Parallel()

	store, err := ledger.NewCSV(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.AppendBudget(ledger.BudgetRecord{
		Date: day("2024-04-05"), Type: ledger.Income, Category: "Salary", Amount: d("2500.50"),
	}))
	require.NoError(t, store.AppendBudget(ledger.BudgetRecord{
		Date: day("2024-04-08"), Type: ledger.Spending, Category: "Food", Amount: d("1200"),
	}))

	dir := t.TempDir()
	gen := NewGenerator(store, dir, "Rp")
	path, _, err := gen.Generate(2024, time.April)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report-2024-04.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Monthly Report: 2024-04", lines[0])
	assert.Equal(t, "Total Profit/Loss: Rp 0.00", lines[1])
	assert.Equal(t, "Win Rate: 0.00%", lines[2])
	assert.Equal(t, "Total Income: Rp 2,500.50", lines[3])
	assert.Equal(t, "Total Spending: Rp 1,200.00", lines[4])
	assert.Equal(t, "Total Investment Value Added: Rp 0.00", lines[5])
}

func TestGenerateOverwrites(t *testing.T) {
	t.Parallel()

	store, err := ledger.NewCSV(t.TempDir())
	require.NoError(t, err)
	dir := t.TempDir()
	gen := NewGenerator(store, dir, "Rp")

	path, _, err := gen.Generate(2024, time.April)
	require.NoError(t, err)

	require.NoError(t, store.AppendBudget(ledger.BudgetRecord{
		Date: day("2024-04-05"), Type: ledger.Income, Category: "Salary", Amount: d("100"),
	}))
	again, _, err := gen.Generate(2024, time.April)
	require.NoError(t, err)
	assert.Equal(t, path, again)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Total Income: Rp 100.00")
}

func TestMaybeGenerateOnlyOnDayOne(t *testing.T) {
	t.Parallel()

	store, err := ledger.NewCSV(t.TempDir())
	require.NoError(t, err)
	gen := NewGenerator(store, t.TempDir(), "Rp")
	gen.now = func() time.Time { return time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC) }

	path, generated, err := gen.MaybeGenerate()
	require.NoError(t, err)
	assert.False(t, generated)
	assert.Empty(t, path)
	assert.Equal(t, Pending, gen.State())
}

func TestMaybeGenerateDayOneReportsPreviousMonth(t *testing.T) {
	t.Parallel()

	store, err := ledger.NewCSV(t.TempDir())
	require.NoError(t, err)
	dir := t.TempDir()
	gen := NewGenerator(store, dir, "Rp")
	gen.now = func() time.Time { return time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC) }

	path, generated, err := gen.MaybeGenerate()
	require.NoError(t, err)
	assert.True(t, generated)
	// Year boundary: January 1st reports December of the previous year.
	assert.Equal(t, filepath.Join(dir, "report-2023-12.txt"), path)
	assert.Equal(t, Generated, gen.State())

	// Second tick in the same run is a no-op.
	_, generated, err = gen.MaybeGenerate()
	require.NoError(t, err)
	assert.False(t, generated)
}

func TestMaybeGenerateRollsOverToNextMonth(t *testing.T) {
	t.Parallel()

	store, err := ledger.NewCSV(t.TempDir())
	require.NoError(t, err)
	dir := t.TempDir()
	gen := NewGenerator(store, dir, "Rp")

	gen.now = func() time.Time { return time.Date(2024, 5, 1, 0, 5, 0, 0, time.UTC) }
	path, generated, err := gen.MaybeGenerate()
	require.NoError(t, err)
	assert.True(t, generated)
	assert.Equal(t, filepath.Join(dir, "report-2024-04.txt"), path)
	assert.Equal(t, Generated, gen.State())

	// A month later the same process must report May, not stay suppressed.
	gen.now = func() time.Time { return time.Date(2024, 6, 1, 0, 5, 0, 0, time.UTC) }
	assert.Equal(t, Pending, gen.State())

	path, generated, err = gen.MaybeGenerate()
	require.NoError(t, err)
	assert.True(t, generated)
	assert.Equal(t, filepath.Join(dir, "report-2024-05.txt"), path)
	assert.Equal(t, Generated, gen.State())

	// And June 1's second tick is still a no-op.
	_, generated, err = gen.MaybeGenerate()
	require.NoError(t, err)
	assert.False(t, generated)
}

func TestPeriod(t *testing.T) {
	t.Parallel()

	year, month, err := Period("2024-04")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.April, month)

	_, _, err = Period("April 2024")
	assert.Error(t, err)

	year, month, err = Period("")
	require.NoError(t, err)
	wantYear, wantMonth := previousMonth(time.Now())
	assert.Equal(t, wantYear, year)
	assert.Equal(t, wantMonth, month)
}
