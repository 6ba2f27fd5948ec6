package ledger

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCSV(t *testing.T) *CSVStore {
	t.Helper()
	s, err := NewCSV(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestCSVStoreEmptyLedgerIsNotAnError(t *testing.T) {
	t.Parallel()

	s := newTestCSV(t)

	trades, err := s.Trades()
	assert.NoError(t, err)
	assert.Empty(t, trades)

	entries, err := s.BudgetEntries()
	assert.NoError(t, err)
	assert.Empty(t, entries)

	invs, err := s.Investments()
	assert.NoError(t, err)
	assert.Empty(t, invs)
}

func TestCSVStoreAppendReadRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestCSV(t)

	first := TradeRecord{
		Date:     day("2024-05-01"),
		Pair:     "XAU/USD",
		Position: Buy,
		Entry:    d("2300.50"),
		Exit:     d("2310.25"),
		RSI:      62,
		MA:       d("2295.10"),
		News:     "NFP friday",
		Notes:    "held through lunch",
	}
	second := TradeRecord{
		Date:     day("2024-05-02"),
		Pair:     "EUR/USD",
		Position: Sell,
		Entry:    d("1.0850"),
		Exit:     d("1.0820"),
		RSI:      41,
		MA:       d("1.0860"),
	}

	require.NoError(t, s.AppendTrade(first))
	require.NoError(t, s.AppendTrade(second))

	got, err := s.Trades()
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Prior record unchanged and in order, new one after it.
	assert.Equal(t, "XAU/USD", got[0].Pair)
	assert.Equal(t, "NFP friday", got[0].News)
	assert.Equal(t, "held through lunch", got[0].Notes)
	assert.True(t, got[0].ProfitLoss.Equal(d("9.75")))
	assert.Equal(t, "EUR/USD", got[1].Pair)
	assert.True(t, got[1].ProfitLoss.Equal(d("0.003").Round(2)))
	assert.True(t, got[0].Date.Before(got[1].Date))
	assert.NotEmpty(t, got[0].ID)
	assert.Less(t, got[0].ID, got[1].ID)
}

func TestCSVStoreHeaderAndFieldOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := NewCSV(dir)
	require.NoError(t, err)

	require.NoError(t, s.AppendBudget(BudgetRecord{
		Date:     day("2024-05-03"),
		Type:     Income,
		Category: "Salary",
		Amount:   d("2500"),
		Notes:    "may payroll",
	}))

	data, err := os.ReadFile(filepath.Join(dir, "budget.csv"))
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(string(data)))
	header, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, BudgetFields, header)

	row, err := r.Read()
	require.NoError(t, err)
	require.Len(t, row, len(BudgetFields))
	assert.Equal(t, "2024-05-03", row[0])
	assert.Equal(t, "Income", row[1])
	assert.Equal(t, "Salary", row[2])
	assert.Equal(t, "2500", row[3])
	assert.Equal(t, "may payroll", row[4])
	assert.NotEmpty(t, row[5]) // minted ID sits last
}

func TestCSVStoreQuotedFieldsSurvive(t *testing.T) {
	t.Parallel()

	s := newTestCSV(t)

	require.NoError(t, s.AppendInvestment(InvestmentRecord{
		Date:     day("2024-05-04"),
		Asset:    "BTC",
		Category: "Crypto",
		Value:    d("1000"),
		Notes:    `bought the dip, again, "diamond hands"`,
	}))

	got, err := s.Investments()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, `bought the dip, again, "diamond hands"`, got[0].Notes)
}

func TestCSVStoreRejectsInvalidBeforeWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := NewCSV(dir)
	require.NoError(t, err)

	err = s.AppendBudget(BudgetRecord{Date: day("2024-05-05"), Type: Spending, Category: "Food", Amount: d("-5")})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	// Nothing must have been written.
	_, statErr := os.Stat(filepath.Join(dir, "budget.csv"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCSVStoreCorruptLedger(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := NewCSV(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "trading_journal.csv")
	bad := strings.Join(TradeFields, ",") + "\nnot-a-date,EUR/USD,Buy,1,2,50,1,,1,,x\n"
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	_, err = s.Trades()
	var cerr *CorruptError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, DomainTrades, cerr.Domain)
	assert.Equal(t, path, cerr.Path)
}

func TestCSVStoreReadsLedgerWithoutIDColumn(t *testing.T) {
	t.Parallel()

	// Ledgers written before the ID column was appended must still load.
	dir := t.TempDir()
	s, err := NewCSV(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "investments.csv")
	old := "Date,Asset,Category,Value,Notes\n2024-01-01,BTC,Crypto,1000,hodl\n"
	require.NoError(t, os.WriteFile(path, []byte(old), 0o644))

	got, err := s.Investments()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "BTC", got[0].Asset)
	assert.Empty(t, got[0].ID)
}
