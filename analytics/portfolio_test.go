package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fintrack/ledger"
)

func snapshot(date, asset, value, id string) ledger.InvestmentRecord {
	return ledger.InvestmentRecord{Date: day(date), Asset: asset, Category: "Crypto", Value: d(value), ID: id}
}

func TestLatestValuePerAssetTakesLaterDate(t *testing.T) {
	t.Parallel()

	investments := []ledger.InvestmentRecord{
		snapshot("2024-01-01", "BTC", "1000", "01A"),
		snapshot("2024-01-05", "BTC", "1200", "01B"),
		snapshot("2024-01-03", "ETH", "400", "01C"),
	}

	latest := LatestValuePerAsset(investments)
	require.Len(t, latest, 2)
	assert.True(t, latest["BTC"].Equal(d("1200")))
	assert.True(t, latest["ETH"].Equal(d("400")))
}

func TestLatestValuePerAssetSameDateLaterAppendWins(t *testing.T) {
	t.Parallel()

	investments := []ledger.InvestmentRecord{
		snapshot("2024-01-05", "BTC", "1100", "01A"),
		snapshot("2024-01-05", "BTC", "1150", "01B"), // appended later
	}

	latest := LatestValuePerAsset(investments)
	assert.True(t, latest["BTC"].Equal(d("1150")))
}

func TestLatestValuePerAssetEmpty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, LatestValuePerAsset(nil))
}

func TestPortfolioValueOverTimeIsCrossSectional(t *testing.T) {
	t.Parallel()

	investments := []ledger.InvestmentRecord{
		snapshot("2024-01-01", "BTC", "1000", "01A"),
		snapshot("2024-01-01", "ETH", "500", "01B"),
		// BTC alone on the 5th: the series must NOT carry ETH's 500 forward.
		snapshot("2024-01-05", "BTC", "1200", "01C"),
	}

	series := PortfolioValueOverTime(investments)
	require.Len(t, series, 2)
	assert.Equal(t, day("2024-01-01"), series[0].Date)
	assert.True(t, series[0].Value.Equal(d("1500")))
	assert.Equal(t, day("2024-01-05"), series[1].Date)
	assert.True(t, series[1].Value.Equal(d("1200")))
}

func TestMarkWithdrawn(t *testing.T) {
	t.Parallel()

	investments := []ledger.InvestmentRecord{
		snapshot("2024-01-01", "BTC", "1000", "01A"),
		snapshot("2024-01-02", "ETH", "500", "01B"),
		snapshot("2024-01-03", "BTC", "1100", "01C"),
	}

	flagged := MarkWithdrawn(investments, []string{"BTC"})
	require.Len(t, flagged, 3)
	assert.True(t, flagged[0].Withdrawn)
	assert.False(t, flagged[1].Withdrawn)
	assert.True(t, flagged[2].Withdrawn)

	// The underlying records are untouched.
	assert.Equal(t, "BTC", investments[0].Asset)
}
