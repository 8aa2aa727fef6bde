package notifier

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"CarrySentinel/internal/model"
	"CarrySentinel/internal/strategy"
)

var audjpy = model.CurrencyPair{Base: model.AUD, Quote: model.JPY}

func signal(pair model.CurrencyPair, conf model.Confidence) model.TradingSignal {
	return model.TradingSignal{
		Pair: pair, Direction: model.DirectionLong, Category: model.CategoryPrimary,
		Diff: 4.25, RateDiff: "4.25%", Trend: model.TrendBullish, Confidence: conf,
		Rationale: "Positive carry <aligned> with trend",
		Guidance:  model.Guidance{Entry: "Buy pullbacks", Stop: "Below swing low", Target: "Hold for carry"},
	}
}

func TestFormatSignalReport(t *testing.T) {
	a := &strategy.Analysis{
		Regime:    model.RegimeRiskOn,
		Snapshot:  model.MarketSnapshot{VIX: model.Volatility(14.5), Broad: &model.BroadTrend{Current: 5100, MovingAverage: 5000, AboveMA: true}},
		Signals:   []model.TradingSignal{signal(audjpy, model.ConfidenceHigh), signal(audjpy, model.ConfidenceLow)},
		CreatedAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	out := FormatSignalReport(a, a.Signals[:1])

	assert.Contains(t, out, "2025-03-01 08:00")
	assert.Contains(t, out, "RISK_ON")
	assert.Contains(t, out, "VIX: 14.50")
	assert.Contains(t, out, "above MA 5000.00")
	assert.Contains(t, out, "Signals: 2 total | 1 high confidence")
	assert.Contains(t, out, "LONG AUD/JPY</b> +4.25% [HIGH] BULLISH")
	assert.Contains(t, out, "&lt;aligned&gt;")
	assert.Equal(t, 1, strings.Count(out, "🟢"))
}

func TestFormatSignalReport_Empty(t *testing.T) {
	a := &strategy.Analysis{Regime: model.RegimeUnknown}
	out := FormatSignalReport(a, nil)
	assert.Contains(t, out, "VIX: n/a")
	assert.Contains(t, out, "S&amp;P 500: n/a")
	assert.Contains(t, out, "No signals meet the current filters.")
}

func TestFormatDetail(t *testing.T) {
	var signals []model.TradingSignal
	for i := 0; i < 5; i++ {
		signals = append(signals, signal(audjpy, model.ConfidenceHigh))
	}
	signals = append([]model.TradingSignal{signal(audjpy, model.ConfidenceMedium)}, signals...)

	prices := map[model.CurrencyPair]model.PriceTrendInfo{
		audjpy: {Pair: audjpy, High: 98.5, Low: 94.25, RSI: 61.2},
	}
	out := FormatDetail(signals, prices)

	assert.Contains(t, out, "<b>3. AUD/JPY LONG</b>")
	assert.NotContains(t, out, "<b>4.")
	assert.Contains(t, out, "Entry: Buy pullbacks")
	assert.Contains(t, out, "Recent range: 94.2500 - 98.5000 | RSI(14): 61.2")
	assert.Contains(t, out, "Risk management")

	assert.Contains(t, FormatDetail(signals[:1], nil), "No high-confidence signals")
}

func TestFormatWatchlist(t *testing.T) {
	w := model.NewWatchlist()
	for i := 0; i < 7; i++ {
		pair := model.Universe[i]
		w.Add(model.CategoryRange, model.WatchlistEntry{
			Pair: pair, Diff: 0.1, Direction: model.DirectionRange, Confidence: model.ConfidenceLow, Trend: model.TrendUnknown,
		})
	}
	out := FormatWatchlist(w)

	assert.Contains(t, out, "Range Trading Candidates</b> (7)")
	assert.NotContains(t, out, "Primary Carry Trades")
	assert.Equal(t, 5, strings.Count(out, "• "))
	assert.Contains(t, out, "and 2 more")

	assert.Contains(t, FormatWatchlist(model.NewWatchlist()), "No pairs classified.")
}

func TestFormatRates(t *testing.T) {
	out := FormatRates(model.RateMap{model.USD: 4.5, model.JPY: 0.5}, time.Time{})
	assert.Contains(t, out, "<pre>USD 4.50%\nJPY 0.50%\n</pre>")
	assert.NotContains(t, out, "Updated")

	assert.Contains(t, FormatRates(nil, time.Time{}), "No rates stored")
}

func TestFormatRegime(t *testing.T) {
	out := FormatRegime(model.RegimeRiskOff, model.MarketSnapshot{VIX: model.Volatility(31)})
	assert.Contains(t, out, fmt.Sprintf("<b>%s</b> (%s)", model.RegimeRiskOff, model.RegimeRiskOff.Description()))
	assert.Contains(t, out, "VIX: 31.00")
}
