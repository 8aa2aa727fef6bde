package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CarrySentinel/internal/cache"
	"CarrySentinel/internal/model"
)

func TestGuard_TripsBreaker(t *testing.T) {
	m := &MockFetcher{Errs: map[string]error{"EURUSD": errors.New("down")}}
	g := NewGuard(m, GuardConfig{MaxFailures: 2, BreakerCooldown: time.Minute})

	for i := 0; i < 2; i++ {
		_, err := g.FetchDailyBars(context.Background(), "EURUSD", 5)
		assert.EqualError(t, err, "down")
	}
	assert.Equal(t, gobreaker.StateOpen, g.State())

	_, err := g.FetchDailyBars(context.Background(), "EURUSD", 5)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Len(t, m.Calls(), 2)
}

func TestGuard_PassesThrough(t *testing.T) {
	m := &MockFetcher{Bars: map[string][]model.OHLCV{"EURUSD": BarsFromCloses(1.1, 1.2)}}
	g := NewGuard(m, GuardConfig{RequestsPerSec: 100, Burst: 2})

	bars, err := g.FetchDailyBars(context.Background(), "EURUSD", 5)
	require.NoError(t, err)
	assert.Len(t, bars, 2)

	price, err := g.FetchCurrentPrice(context.Background(), "EURUSD")
	require.NoError(t, err)
	assert.Equal(t, 1.2, price)
	assert.Equal(t, "mock", g.Name())
}

func TestGuard_CancelledContext(t *testing.T) {
	m := &MockFetcher{Price: 1}
	g := NewGuard(m, GuardConfig{RequestsPerSec: 0.001, Burst: 1})

	_, err := g.FetchDailyBars(context.Background(), "EURUSD", 5)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.FetchDailyBars(ctx, "EURUSD", 5)
	assert.ErrorContains(t, err, "rate limit")
}

func TestCachedFetcher(t *testing.T) {
	m := &MockFetcher{Bars: map[string][]model.OHLCV{"AUDJPY": BarsFromCloses(95, 96)}}
	f := NewCachedFetcher(m, cache.NewTTLCache(), time.Hour, nil)

	for i := 0; i < 3; i++ {
		bars, err := f.FetchDailyBars(context.Background(), "AUDJPY", 30)
		require.NoError(t, err)
		require.Len(t, bars, 2)
		assert.Equal(t, 96.0, bars[1].Close)
	}
	assert.Equal(t, []string{"AUDJPY"}, m.Calls())

	// different window is a different key
	_, err := f.FetchDailyBars(context.Background(), "AUDJPY", 5)
	require.NoError(t, err)
	assert.Len(t, m.Calls(), 2)
}

func TestCachedFetcher_ErrorsNotCached(t *testing.T) {
	m := &MockFetcher{Errs: map[string]error{"AUDJPY": errors.New("down")}}
	c := cache.NewTTLCache()
	f := NewCachedFetcher(m, c, time.Hour, nil)

	_, err := f.FetchDailyBars(context.Background(), "AUDJPY", 30)
	assert.Error(t, err)
	assert.Equal(t, 0, c.Len())
}
