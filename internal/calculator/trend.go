package calculator

import "CarrySentinel/internal/model"

// CalculateTrend compares the last close with the first close of the window:
// strictly higher is bullish, anything else bearish.
func CalculateTrend(closes []float64) model.Trend {
	if len(closes) < 2 {
		return model.TrendUnknown
	}
	if closes[len(closes)-1] > closes[0] {
		return model.TrendBullish
	}
	return model.TrendBearish
}
