package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"CarrySentinel/internal/cache"
	"CarrySentinel/internal/collector"
	"CarrySentinel/internal/config"
	"CarrySentinel/internal/metrics"
	"CarrySentinel/internal/strategy"
)

// buildMarket assembles fetcher -> guard -> cache -> collector. The returned
// cleanup closes any remote cache connection.
func buildMarket(ctx context.Context, c *config.Config, rec *metrics.Recorder) (*collector.Collector, func()) {
	var fetcher collector.Fetcher
	if c.DataSource.BaseURL != "" {
		fetcher = collector.NewVsTraderFetcher(c.DataSource.BaseURL, c.DataSource.APIKey, c.Proxy, c.DataSource.Timeout)
	} else {
		fetcher = collector.NewYahooFetcher(c.Proxy, c.DataSource.Timeout)
	}
	log.Info().Str("source", fetcher.Name()).Msg("data source selected")

	fetcher = collector.NewGuard(fetcher, collector.GuardConfig{
		RequestsPerSec:  c.Market.RequestsPerSec,
		Burst:           c.Market.Burst,
		MaxFailures:     c.Market.BreakerFailures,
		BreakerCooldown: c.Market.BreakerCooldown,
	})

	cleanup := func() {}
	switch c.Cache.Backend {
	case "redis":
		rc := cache.NewRedisCache(cache.RedisConfig{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
			Prefix:   "carrysentinel:",
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rc.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, falling back to in-memory cache")
			rc.Close()
			fetcher = collector.NewCachedFetcher(fetcher, cache.NewTTLCache(), c.Market.CacheTTL, rec)
		} else {
			fetcher = collector.NewCachedFetcher(fetcher, rc, c.Market.CacheTTL, rec)
			cleanup = func() { rc.Close() }
		}
	case "memory":
		fetcher = collector.NewCachedFetcher(fetcher, cache.NewTTLCache(), c.Market.CacheTTL, rec)
	}

	return collector.NewCollector(fetcher, c.Market.BroadMarketWindow, rec), cleanup
}

// buildAnalyzer wires the regime policy, scanner and generator from config.
// A nil lookup scans without price trends.
func buildAnalyzer(c *config.Config, lookup strategy.PriceLookup) *strategy.Analyzer {
	return strategy.NewAnalyzer(
		c.RegimePolicy(),
		strategy.NewScanner(lookup, c.ScannerConfig()),
		strategy.NewGenerator(c.Strategy.PerCategoryCap),
	)
}
