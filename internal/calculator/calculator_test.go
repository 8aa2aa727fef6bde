package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CarrySentinel/internal/model"
)

func TestCalculateSMA(t *testing.T) {
	v, err := CalculateSMA([]float64{1, 2, 3, 4}, 2)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, v, 1e-9)

	_, err = CalculateSMA([]float64{1}, 2)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = CalculateSMA([]float64{1}, 0)
	assert.Error(t, err)
}

func TestCalculateTrailingMean_ShortSeries(t *testing.T) {
	v, err := CalculateTrailingMean([]float64{10, 20, 30}, 200)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, v, 1e-9)

	_, err = CalculateTrailingMean(nil, 30)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestCalculateTrend(t *testing.T) {
	tests := []struct {
		closes []float64
		want   model.Trend
	}{
		{[]float64{1.0, 1.1}, model.TrendBullish},
		{[]float64{1.1, 1.0}, model.TrendBearish},
		{[]float64{1.0, 1.2, 1.0}, model.TrendBearish},
		{[]float64{1.0}, model.TrendUnknown},
		{nil, model.TrendUnknown},
	}
	for _, tt := range tests {
		if got := CalculateTrend(tt.closes); got != tt.want {
			t.Errorf("CalculateTrend(%v) = %s, want %s", tt.closes, got, tt.want)
		}
	}
}

func TestCalculateRange(t *testing.T) {
	bars := []model.OHLCV{
		{High: 1.10, Low: 1.00, Close: 1.05},
		{High: 1.20, Low: 1.05, Close: 1.15},
		{Close: 1.30},
	}
	h, l, err := CalculateRange(bars, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.30, h, 1e-9)
	assert.InDelta(t, 1.00, l, 1e-9)

	h, l, err = CalculateRange(bars, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.30, h, 1e-9)
	assert.InDelta(t, 1.05, l, 1e-9)

	_, _, err = CalculateRange(nil, 5)
	assert.Error(t, err)
}

func TestCalculatePosition(t *testing.T) {
	pos, err := CalculatePosition(1.5, 2, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, pos, 1e-9)

	pos, _ = CalculatePosition(3, 2, 1)
	assert.Equal(t, 1.0, pos)

	pos, _ = CalculatePosition(1, 1, 1)
	assert.Equal(t, 0.5, pos)

	_, err = CalculatePosition(1, 1, 2)
	assert.Error(t, err)
}

func TestCalculateRSI(t *testing.T) {
	rising := make([]float64, 20)
	for i := range rising {
		rising[i] = float64(i + 1)
	}
	rsi, err := CalculateRSI(rising, 14)
	require.NoError(t, err)
	assert.Equal(t, 100.0, rsi)

	rsi, err = CalculateRSI([]float64{1, 2}, 14)
	require.NoError(t, err)
	assert.Equal(t, 50.0, rsi)

	falling := make([]float64, 20)
	for i := range falling {
		falling[i] = float64(20 - i)
	}
	rsi, err = CalculateRSI(falling, 14)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, rsi, 1e-9)
}
