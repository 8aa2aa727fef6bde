package strategy

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"CarrySentinel/internal/model"
)

// Analysis is the result of one classification run.
type Analysis struct {
	ID        string
	Regime    model.Regime
	Snapshot  model.MarketSnapshot
	Rates     model.RateMap
	Watchlist *model.Watchlist
	Signals   []model.TradingSignal
	CreatedAt time.Time
}

// HighConfidence returns up to n HIGH signals, in signal order.
func (a *Analysis) HighConfidence(n int) []model.TradingSignal {
	high, _ := FilterByConfidence(a.Signals, model.ConfidenceHigh)
	return Limit(high, n)
}

// Analyzer runs the classifier, scanner and generator in sequence.
type Analyzer struct {
	Policy    RegimePolicy
	Scanner   *Scanner
	Generator *Generator
}

// NewAnalyzer wires the three stages.
func NewAnalyzer(policy RegimePolicy, scanner *Scanner, generator *Generator) *Analyzer {
	return &Analyzer{Policy: policy, Scanner: scanner, Generator: generator}
}

// Run classifies the regime once, scans with it held constant and generates signals.
// An empty rate map yields an empty watchlist and no signals.
func (a *Analyzer) Run(ctx context.Context, rates model.RateMap, snap model.MarketSnapshot) *Analysis {
	regime := a.Policy.Classify(snap.VIX, snap.Broad)
	w := a.Scanner.Scan(ctx, rates, regime)
	signals := a.Generator.Generate(w, regime)

	log.Info().
		Str("regime", regime.String()).
		Int("currencies", len(rates)).
		Int("watchlist", w.Len()).
		Int("signals", len(signals)).
		Msg("analysis complete")

	return &Analysis{
		ID:        uuid.NewString(),
		Regime:    regime,
		Snapshot:  snap,
		Rates:     rates,
		Watchlist: w,
		Signals:   signals,
		CreatedAt: time.Now(),
	}
}
