package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"CarrySentinel/internal/model"
)

// GuardConfig bounds the request rate to a source and trips a breaker on repeated failures.
type GuardConfig struct {
	RequestsPerSec  float64
	Burst           int
	MaxFailures     uint32
	BreakerCooldown time.Duration
}

// Guard wraps a Fetcher with a token-bucket limiter and a circuit breaker.
type Guard struct {
	next    Fetcher
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// NewGuard creates a Guard around next. Non-positive rates disable limiting.
func NewGuard(next Fetcher, cfg GuardConfig) *Guard {
	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	settings := gobreaker.Settings{
		Name:    next.Name(),
		Timeout: cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("source", name).Str("from", from.String()).Str("to", to.String()).
				Msg("market data circuit breaker state change")
		},
	}

	return &Guard{
		next:    next,
		limiter: rate.NewLimiter(limit, burst),
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (g *Guard) Name() string { return g.next.Name() }

// State reports the breaker state.
func (g *Guard) State() gobreaker.State { return g.breaker.State() }

func (g *Guard) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	res, err := g.breaker.Execute(func() (interface{}, error) {
		return g.next.FetchDailyBars(ctx, symbol, days)
	})
	if err != nil {
		return nil, err
	}
	return res.([]model.OHLCV), nil
}

func (g *Guard) FetchCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit: %w", err)
	}
	res, err := g.breaker.Execute(func() (interface{}, error) {
		return g.next.FetchCurrentPrice(ctx, symbol)
	})
	if err != nil {
		return 0, err
	}
	return res.(float64), nil
}
