package strategy

import (
	"fmt"

	"CarrySentinel/internal/model"
)

// DefaultPerCategoryCap is how many leading entries each category may contribute.
const DefaultPerCategoryCap = 3

var guidanceByCategory = map[model.Category]model.Guidance{
	model.CategoryPrimary: {
		Entry:  "Buy pullback to 20-day EMA",
		Stop:   "Below recent swing low",
		Target: "Previous resistance + 2R",
	},
	model.CategorySecondary: {
		Entry:  "Break of key level with volume",
		Stop:   "Beyond consolidation range",
		Target: "Measured move + 1.5R",
	},
	model.CategoryRange: {
		Entry:  "Range boundaries with reversal confirmation",
		Stop:   "Beyond range extremes",
		Target: "Opposite range boundary",
	},
	model.CategoryMonitor: {
		Entry:  "No entry until the regime turns directional",
		Stop:   "n/a",
		Target: "n/a",
	},
	model.CategoryAvoid: {
		Entry:  "No entry, carry unwind risk",
		Stop:   "n/a",
		Target: "n/a",
	},
}

// GuidanceFor returns the execution plan for a category.
func GuidanceFor(c model.Category) (model.Guidance, bool) {
	g, ok := guidanceByCategory[c]
	return g, ok
}

// Generator flattens a watchlist into actionable signals.
type Generator struct {
	PerCategoryCap int
}

// NewGenerator creates a Generator; a non-positive cap uses DefaultPerCategoryCap.
func NewGenerator(perCategoryCap int) *Generator {
	if perCategoryCap <= 0 {
		perCategoryCap = DefaultPerCategoryCap
	}
	return &Generator{PerCategoryCap: perCategoryCap}
}

// Generate takes at most PerCategoryCap leading entries of each category, in
// category order, and drops AVOID and WAIT entries. It does not re-sort.
func (g *Generator) Generate(w *model.Watchlist, regime model.Regime) []model.TradingSignal {
	signals := []model.TradingSignal{}
	if w == nil {
		return signals
	}
	for _, c := range w.Categories() {
		entries := w.Entries(c)
		if len(entries) > g.PerCategoryCap {
			entries = entries[:g.PerCategoryCap]
		}
		for _, e := range entries {
			if !e.Direction.Actionable() {
				continue
			}
			signals = append(signals, model.TradingSignal{
				Pair:       e.Pair,
				Direction:  e.Direction,
				Category:   c,
				Diff:       e.Diff,
				RateDiff:   fmt.Sprintf("%.2f%%", e.Diff),
				Trend:      e.Trend,
				Confidence: e.Confidence,
				Rationale:  e.Rationale,
				Guidance:   guidance(c, regime),
			})
		}
	}
	return signals
}

// guidance widens stops while risk is off.
func guidance(c model.Category, regime model.Regime) model.Guidance {
	g := guidanceByCategory[c]
	if regime == model.RegimeRiskOff && g.Stop != "n/a" {
		g.Stop += " (widen for elevated volatility)"
	}
	return g
}
