package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// BroadTrend describes the broad equity market (S&P 500) against its moving average.
type BroadTrend struct {
	Current       float64
	MovingAverage float64
	AboveMA       bool
	Trend         Trend
}

// MarketSnapshot holds the per-run market readings the regime is derived from.
// Nil fields mean the reading was unavailable.
type MarketSnapshot struct {
	VIX       *float64
	Broad     *BroadTrend
	FetchedAt time.Time
}

// Volatility returns a pointer to v, for building snapshots from literals.
func Volatility(v float64) *float64 {
	return &v
}
