package report

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fintrack/ledger"
)

func TestExportTradingJournal(t *testing.T) {
	t.Parallel()

	store, err := ledger.NewCSV(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.AppendTrade(ledger.TradeRecord{
		Date: day("2024-05-06"), Pair: "BTC/USD", Position: ledger.Buy,
		Entry: d("64000"), Exit: d("65000"), RSI: 70,
	}))

	dir := t.TempDir()
	exp := NewExporter(store, dir)
	exp.now = func() time.Time { return time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC) }

	path, err := exp.Export(ledger.DomainTrades)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "trading_journal_2024-05.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)
	assert.Contains(t, body, "Trading Journal Report (2024-05)")
	assert.Contains(t, body, "BTC/USD")
	assert.Contains(t, body, "1000") // derived profit
}

func TestExportOverwritesWithinSameMonth(t *testing.T) {
	t.Parallel()

	store, err := ledger.NewCSV(t.TempDir())
	require.NoError(t, err)
	dir := t.TempDir()
	exp := NewExporter(store, dir)
	exp.now = func() time.Time { return time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC) }

	first, err := exp.Export(ledger.DomainBudget)
	require.NoError(t, err)

	require.NoError(t, store.AppendBudget(ledger.BudgetRecord{
		Date: day("2024-05-19"), Type: ledger.Spending, Category: "Food", Amount: d("42"),
	}))
	second, err := exp.Export(ledger.DomainBudget)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	data, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Food")
}

func TestExportEmptyLedgerStillWrites(t *testing.T) {
	t.Parallel()

	store, err := ledger.NewCSV(t.TempDir())
	require.NoError(t, err)
	exp := NewExporter(store, t.TempDir())

	path, err := exp.Export(ledger.DomainInvestments)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := fmt.Sprintf("Investment Report (%s)", time.Now().Format("2006-01"))
	assert.Contains(t, string(data), want)
}

func TestExportUnknownDomain(t *testing.T) {
	t.Parallel()

	store, err := ledger.NewCSV(t.TempDir())
	require.NoError(t, err)
	exp := NewExporter(store, t.TempDir())

	_, err = exp.Export(ledger.Domain("stocks"))
	assert.Error(t, err)
}
