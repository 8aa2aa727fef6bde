package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniverse(t *testing.T) {
	assert.Len(t, Universe, 28)
	seen := map[CurrencyPair]bool{}
	for _, p := range Universe {
		assert.False(t, seen[p], "duplicate %s", p)
		seen[p] = true
		assert.NotEqual(t, p.Base, p.Quote)
		_, err := ParseCurrency(string(p.Base))
		assert.NoError(t, err)
		_, err = ParseCurrency(string(p.Quote))
		assert.NoError(t, err)
	}
}

func TestParsePair(t *testing.T) {
	p, err := ParsePair("usd/jpy")
	require.NoError(t, err)
	assert.Equal(t, CurrencyPair{USD, JPY}, p)
	assert.Equal(t, "USD/JPY", p.String())
	assert.Equal(t, "USDJPY", p.Symbol())

	_, err = ParsePair("JPY/USD")
	assert.ErrorIs(t, err, ErrUnknownPair)
	_, err = ParsePair("USDJPY")
	assert.ErrorIs(t, err, ErrUnknownPair)
	_, err = ParsePair("USD/XYZ")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestRateMapDiff(t *testing.T) {
	r := RateMap{USD: 5.5, JPY: 0.1}
	d, ok := r.Diff(CurrencyPair{USD, JPY})
	require.True(t, ok)
	assert.InDelta(t, 5.4, d, 1e-9)

	_, ok = r.Diff(CurrencyPair{EUR, USD})
	assert.False(t, ok)
	assert.Equal(t, []Currency{USD, JPY}, r.Sorted())
}

func TestParseConfidence(t *testing.T) {
	for s, want := range map[string]Confidence{"High": ConfidenceHigh, "MEDIUM": ConfidenceMedium, " low ": ConfidenceLow} {
		got, err := ParseConfidence(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseConfidence("extreme")
	assert.ErrorIs(t, err, ErrInvalidConfidence)
	assert.True(t, ConfidenceHigh > ConfidenceMedium && ConfidenceMedium > ConfidenceLow)
}

func TestWatchlist(t *testing.T) {
	w := NewWatchlist()
	for _, c := range Categories {
		assert.True(t, w.Has(c))
		assert.NotNil(t, w.Entries(c))
	}
	e := WatchlistEntry{Pair: CurrencyPair{USD, JPY}}
	assert.True(t, w.Add(CategoryPrimary, e))
	assert.False(t, w.Add(CategoryPrimary, e))
	assert.True(t, w.Add(CategoryRange, e))
	assert.Equal(t, 2, w.Len())
}

func TestWatchlistEntriesIsCopy(t *testing.T) {
	w := NewWatchlist()
	require.True(t, w.Add(CategoryPrimary, WatchlistEntry{Pair: CurrencyPair{USD, JPY}, Diff: 5.4}))

	got := w.Entries(CategoryPrimary)
	got[0].Diff = 0
	_ = append(got[:0], WatchlistEntry{Pair: CurrencyPair{AUD, JPY}})

	entries := w.Entries(CategoryPrimary)
	require.Len(t, entries, 1)
	assert.Equal(t, CurrencyPair{USD, JPY}, entries[0].Pair)
	assert.Equal(t, 5.4, entries[0].Diff)
}

func TestTrendLookup(t *testing.T) {
	miss := Unavailable("timeout")
	assert.False(t, miss.OK())
	assert.Equal(t, TrendUnknown, miss.Trend())
	assert.Equal(t, "timeout", miss.Reason())

	hit := Found(PriceTrendInfo{Trend: TrendBearish})
	assert.True(t, hit.OK())
	assert.Equal(t, TrendBearish, hit.Trend())
}

func TestDirectionActionable(t *testing.T) {
	assert.True(t, DirectionLong.Actionable())
	assert.True(t, DirectionShort.Actionable())
	assert.True(t, DirectionRange.Actionable())
	assert.False(t, DirectionAvoid.Actionable())
	assert.False(t, DirectionWait.Actionable())
}
