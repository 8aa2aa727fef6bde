package collector

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"CarrySentinel/internal/calculator"
	"CarrySentinel/internal/metrics"
	"CarrySentinel/internal/model"
)

const (
	defaultBroadWindow = 30
	vixDays            = 5
	rsiPeriod          = 14
)

// Collector turns raw bars into market snapshots and per-pair trend observations.
type Collector struct {
	Fetcher     Fetcher
	BroadWindow int
	Metrics     *metrics.Recorder
}

// NewCollector creates a new Collector. rec may be nil.
func NewCollector(fetcher Fetcher, broadWindow int, rec *metrics.Recorder) *Collector {
	if broadWindow <= 0 {
		broadWindow = defaultBroadWindow
	}
	return &Collector{Fetcher: fetcher, BroadWindow: broadWindow, Metrics: rec}
}

func (c *Collector) fetch(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	start := time.Now()
	bars, err := c.Fetcher.FetchDailyBars(ctx, symbol, days)
	c.Metrics.RecordFetch(c.Fetcher.Name(), time.Since(start).Seconds())
	return bars, err
}

// Snapshot reads VIX and the broad-market trend. Either reading degrades to nil on failure.
func (c *Collector) Snapshot(ctx context.Context) model.MarketSnapshot {
	snap := model.MarketSnapshot{FetchedAt: time.Now()}

	if vix, err := c.vix(ctx); err != nil {
		log.Warn().Err(err).Msg("VIX unavailable")
	} else {
		snap.VIX = &vix
		c.Metrics.RecordVIX(vix)
	}

	if broad, err := c.broad(ctx); err != nil {
		log.Warn().Err(err).Msg("broad market trend unavailable")
	} else {
		snap.Broad = broad
	}

	return snap
}

func (c *Collector) vix(ctx context.Context) (float64, error) {
	bars, err := c.fetch(ctx, SymbolVIX, vixDays)
	if err != nil {
		return 0, fmt.Errorf("fetch VIX: %w", err)
	}
	if len(bars) == 0 {
		return 0, fmt.Errorf("fetch VIX: no bars")
	}
	return math.Round(bars[len(bars)-1].Close*100) / 100, nil
}

func (c *Collector) broad(ctx context.Context) (*model.BroadTrend, error) {
	// Calendar days; a window of trading closes needs roughly half again as many.
	bars, err := c.fetch(ctx, SymbolBroadMarket, c.BroadWindow*3/2+5)
	if err != nil {
		return nil, fmt.Errorf("fetch broad market: %w", err)
	}
	closes := calculator.Closes(bars)
	ma, err := calculator.CalculateTrailingMean(closes, c.BroadWindow)
	if err != nil {
		return nil, fmt.Errorf("broad market MA: %w", err)
	}
	current := closes[len(closes)-1]
	bt := &model.BroadTrend{
		Current:       current,
		MovingAverage: ma,
		AboveMA:       current > ma,
		Trend:         model.TrendBearish,
	}
	if bt.AboveMA {
		bt.Trend = model.TrendBullish
	}
	return bt, nil
}

// Lookup fetches the pair's daily closes over lookback and derives its trend.
// Any failure yields an unavailable lookup rather than an error.
func (c *Collector) Lookup(ctx context.Context, pair model.CurrencyPair, lookback time.Duration) model.TrendLookup {
	days := int(lookback.Hours() / 24)
	if days < 2 {
		days = 2
	}

	bars, err := c.fetch(ctx, pair.Symbol(), days)
	if err != nil {
		c.Metrics.RecordLookup("miss")
		log.Debug().Err(err).Str("pair", pair.String()).Msg("price lookup failed")
		return model.Unavailable(err.Error())
	}
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	closes := calculator.Closes(bars)
	if len(closes) < 2 {
		c.Metrics.RecordLookup("miss")
		return model.Unavailable(fmt.Sprintf("insufficient price history for %s", pair))
	}

	info := model.PriceTrendInfo{
		Pair:         pair,
		CurrentPrice: closes[len(closes)-1],
		Trend:        calculator.CalculateTrend(closes),
		Closes:       closes,
	}
	if h, l, err := calculator.CalculateRange(bars, 0); err == nil {
		info.High, info.Low = h, l
	}
	if rsi, err := calculator.CalculateRSI(closes, rsiPeriod); err != nil {
		info.RSI = 50
	} else {
		info.RSI = rsi
	}

	c.Metrics.RecordLookup("hit")
	return model.Found(info)
}
