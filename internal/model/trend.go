package model

// Trend is the direction of a price series over the lookback window.
type Trend string

const (
	TrendBullish Trend = "BULLISH"
	TrendBearish Trend = "BEARISH"
	TrendUnknown Trend = "UNKNOWN"
)

func (t Trend) String() string { return string(t) }

// PriceTrendInfo is one pair's recent price observation.
type PriceTrendInfo struct {
	Pair         CurrencyPair
	CurrentPrice float64
	Trend        Trend
	Closes       []float64 // oldest first, bounded by the lookback
	High         float64
	Low          float64
	RSI          float64
}

// TrendLookup is the outcome of a price-trend lookup: either found or unavailable.
type TrendLookup struct {
	info   PriceTrendInfo
	found  bool
	reason string
}

// Found wraps a successful lookup.
func Found(info PriceTrendInfo) TrendLookup {
	return TrendLookup{info: info, found: true}
}

// Unavailable records a failed or skipped lookup.
func Unavailable(reason string) TrendLookup {
	return TrendLookup{reason: reason}
}

func (l TrendLookup) OK() bool { return l.found }

// Info returns the observation; it is the zero value when the lookup is unavailable.
func (l TrendLookup) Info() PriceTrendInfo { return l.info }

// Reason explains why the lookup is unavailable.
func (l TrendLookup) Reason() string { return l.reason }

// Trend returns the observed trend, or TrendUnknown.
func (l TrendLookup) Trend() Trend {
	if !l.found || l.info.Trend == "" {
		return TrendUnknown
	}
	return l.info.Trend
}
