package strategy

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"CarrySentinel/internal/model"
)

// PriceLookup supplies the recent price trend of a pair. Failures are
// reported as model.Unavailable, never as errors.
type PriceLookup interface {
	Lookup(ctx context.Context, pair model.CurrencyPair, lookback time.Duration) model.TrendLookup
}

// PriceLookupFunc adapts a function to PriceLookup.
type PriceLookupFunc func(ctx context.Context, pair model.CurrencyPair, lookback time.Duration) model.TrendLookup

func (f PriceLookupFunc) Lookup(ctx context.Context, pair model.CurrencyPair, lookback time.Duration) model.TrendLookup {
	return f(ctx, pair, lookback)
}

// ScannerConfig controls lookup volume and post-processing.
type ScannerConfig struct {
	// MinLookupDiff is the smallest |diff| for which the price trend is fetched.
	// Zero fetches every pair with both rates.
	MinLookupDiff float64
	// Lookback is the price window handed to the lookup.
	Lookback time.Duration
	// SortByConfidence ranks each category after the scan.
	SortByConfidence bool
}

// DefaultScannerConfig looks up pairs with |diff| >= 0.5 over one month and ranks the result.
func DefaultScannerConfig() ScannerConfig {
	return ScannerConfig{
		MinLookupDiff:    0.5,
		Lookback:         30 * 24 * time.Hour,
		SortByConfidence: true,
	}
}

// Scanner classifies the pair universe into a watchlist.
type Scanner struct {
	lookup PriceLookup
	cfg    ScannerConfig
}

// NewScanner creates a Scanner. A nil lookup treats every trend as unknown.
func NewScanner(lookup PriceLookup, cfg ScannerConfig) *Scanner {
	if cfg.MinLookupDiff < 0 {
		cfg.MinLookupDiff = 0
	}
	return &Scanner{lookup: lookup, cfg: cfg}
}

// Scan walks the universe in order and classifies every pair whose two legs
// have a rate. It never fails: missing rates exclude a pair, failed lookups
// degrade its trend to UNKNOWN.
func (s *Scanner) Scan(ctx context.Context, rates model.RateMap, regime model.Regime) *model.Watchlist {
	w := model.NewWatchlist()
	lookups := 0

	for _, pair := range model.Universe {
		diff, ok := rates.Diff(pair)
		if !ok {
			continue
		}

		trend := model.TrendUnknown
		if s.shouldLookup(diff) {
			lookups++
			res := s.lookup.Lookup(ctx, pair, s.cfg.Lookback)
			if res.OK() {
				trend = res.Trend()
			} else {
				log.Debug().Str("pair", pair.String()).Str("reason", res.Reason()).Msg("price trend unavailable")
			}
		}

		if r, ok := matchRegimeRule(regime, diff, trend); ok {
			w.Add(r.Category, r.entry(pair, diff, trend))
		}
		if rangeRule.When(diff, trend) {
			w.Add(rangeRule.Category, rangeRule.entry(pair, diff, trend))
		}
	}

	if s.cfg.SortByConfidence {
		for _, c := range w.Categories() {
			w.Set(c, RankEntries(w.Entries(c)))
		}
	}

	log.Debug().Str("regime", regime.String()).Int("lookups", lookups).Int("entries", w.Len()).Msg("scan complete")
	return w
}

func (s *Scanner) shouldLookup(diff float64) bool {
	return s.lookup != nil && math.Abs(diff) >= s.cfg.MinLookupDiff
}

// RankEntries returns a copy of entries stably sorted by confidence
// (highest first), then absolute differential (largest first).
func RankEntries(entries []model.WatchlistEntry) []model.WatchlistEntry {
	ranked := make([]model.WatchlistEntry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranksBefore(ranked[i], ranked[j])
	})
	return ranked
}

func ranksBefore(a, b model.WatchlistEntry) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	return a.AbsDiff > b.AbsDiff
}
