package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"CarrySentinel/internal/cache"
	"CarrySentinel/internal/metrics"
	"CarrySentinel/internal/model"
)

// CachedFetcher serves daily bars from a BytesCache, falling through to next on a miss.
// Cache errors are logged and treated as misses.
type CachedFetcher struct {
	next    Fetcher
	cache   cache.BytesCache
	ttl     time.Duration
	metrics *metrics.Recorder
}

// NewCachedFetcher wraps next. rec may be nil.
func NewCachedFetcher(next Fetcher, c cache.BytesCache, ttl time.Duration, rec *metrics.Recorder) *CachedFetcher {
	return &CachedFetcher{next: next, cache: c, ttl: ttl, metrics: rec}
}

func (f *CachedFetcher) Name() string { return f.next.Name() }

func (f *CachedFetcher) key(symbol string, days int) string {
	return fmt.Sprintf("bars:%s:%s:%d", f.next.Name(), symbol, days)
}

func (f *CachedFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	key := f.key(symbol, days)

	raw, ok, err := f.cache.GetBytes(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}
	if ok {
		var bars []model.OHLCV
		if err := json.Unmarshal(raw, &bars); err == nil {
			f.metrics.RecordLookup("cached")
			return bars, nil
		}
		log.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	}

	bars, err := f.next.FetchDailyBars(ctx, symbol, days)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(bars); err == nil {
		if err := f.cache.SetBytes(ctx, key, raw, f.ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	return bars, nil
}

// FetchCurrentPrice is not cached.
func (f *CachedFetcher) FetchCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	return f.next.FetchCurrentPrice(ctx, symbol)
}
