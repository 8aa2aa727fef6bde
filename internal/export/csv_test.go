package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CarrySentinel/internal/model"
)

func TestWriteCSV(t *testing.T) {
	signals := []model.TradingSignal{
		{
			Pair:       model.CurrencyPair{Base: model.NZD, Quote: model.JPY},
			Direction:  model.DirectionLong,
			Category:   model.CategoryPrimary,
			RateDiff:   "3.75%",
			Trend:      model.TrendBullish,
			Confidence: model.ConfidenceHigh,
			Rationale:  "Carry, aligned with trend",
			Guidance:   model.Guidance{Entry: "a", Stop: "b", Target: "c"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, signals))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{"NZD/JPY", "LONG", "PRIMARY", "3.75%", "BULLISH", "HIGH",
		"Carry, aligned with trend", "a", "b", "c"}, rows[1])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "Pair,Signal,Category,Rate Diff,Price Trend,Confidence,Rationale,Entry,Stop,Target\n", buf.String())
}
