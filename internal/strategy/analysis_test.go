package strategy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CarrySentinel/internal/model"
)

func newTestAnalyzer(lookup PriceLookup) *Analyzer {
	return NewAnalyzer(DefaultRegimePolicy, NewScanner(lookup, DefaultScannerConfig()), NewGenerator(DefaultPerCategoryCap))
}

func TestAnalyzer_Run(t *testing.T) {
	lookup := newTrendTable(map[string]model.Trend{"USD/JPY": model.TrendBullish})
	snap := model.MarketSnapshot{VIX: model.Volatility(15.5), Broad: aboveMA, FetchedAt: time.Now()}

	a := newTestAnalyzer(lookup).Run(context.Background(), model.RateMap{model.USD: 5.50, model.JPY: 0.10}, snap)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, model.RegimeRiskOn, a.Regime)
	require.Len(t, a.Signals, 1)
	assert.Equal(t, "USD/JPY", a.Signals[0].Pair.String())
	assert.Equal(t, model.DirectionLong, a.Signals[0].Direction)
	assert.Equal(t, model.ConfidenceHigh, a.Signals[0].Confidence)
	assert.Len(t, a.HighConfidence(3), 1)
}

func TestAnalyzer_EmptyRates(t *testing.T) {
	a := newTestAnalyzer(newTrendTable(nil)).Run(context.Background(), model.RateMap{}, model.MarketSnapshot{})

	assert.Equal(t, model.RegimeUnknown, a.Regime)
	for _, c := range model.Categories {
		assert.True(t, a.Watchlist.Has(c))
	}
	assert.Equal(t, 0, a.Watchlist.Len())
	assert.NotNil(t, a.Signals)
	assert.Empty(t, a.Signals)
}

func TestAnalyzer_RegimeHeldForScan(t *testing.T) {
	rates := model.RateMap{model.EUR: 3.0, model.USD: 5.5}
	snap := model.MarketSnapshot{VIX: model.Volatility(31)}

	a := newTestAnalyzer(newTrendTable(nil)).Run(context.Background(), rates, snap)
	assert.Equal(t, model.RegimeRiskOff, a.Regime)
	for _, c := range a.Watchlist.Categories() {
		for _, e := range a.Watchlist.Entries(c) {
			assert.Contains(t, []model.Rule{model.RuleSafeHaven, model.RuleSafeHavenReversal, model.RuleCarryUnwind, model.RuleLowDifferential}, e.Rule)
		}
	}
}
