package strategy

import (
	"fmt"

	"CarrySentinel/internal/model"
)

// FilterByConfidence keeps the signals at or above min, preserving order.
// An unknown tier is a usage error.
func FilterByConfidence(signals []model.TradingSignal, min model.Confidence) ([]model.TradingSignal, error) {
	if !min.Valid() {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidConfidence, int(min))
	}
	out := make([]model.TradingSignal, 0, len(signals))
	for _, s := range signals {
		if s.Confidence >= min {
			out = append(out, s)
		}
	}
	return out, nil
}

// Limit truncates signals to at most n entries; n <= 0 means no limit.
func Limit(signals []model.TradingSignal, n int) []model.TradingSignal {
	if n <= 0 || len(signals) <= n {
		return signals
	}
	return signals[:n]
}

// CountConfidence counts the signals with exactly confidence c.
func CountConfidence(signals []model.TradingSignal, c model.Confidence) int {
	n := 0
	for _, s := range signals {
		if s.Confidence == c {
			n++
		}
	}
	return n
}
