package calculator

import (
	"errors"

	"CarrySentinel/internal/model"
)

var ErrInsufficientData = errors.New("not enough data")

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, ErrInsufficientData
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// CalculateTrailingMean averages up to the last window prices, using all of
// them when fewer are available.
func CalculateTrailingMean(prices []float64, window int) (float64, error) {
	if len(prices) == 0 {
		return 0, ErrInsufficientData
	}
	if window <= 0 || window > len(prices) {
		window = len(prices)
	}
	return CalculateSMA(prices, window)
}

// Closes extracts close prices from bars, oldest first.
func Closes(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
