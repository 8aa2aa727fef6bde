package strategy

import (
	"math"

	"CarrySentinel/internal/model"
)

// rule is one row of the categorization table.
type rule struct {
	ID         model.Rule
	Regime     model.Regime // empty matches every regime
	When       func(diff float64, trend model.Trend) bool
	Category   model.Category
	Direction  func(diff float64) model.Direction
	Confidence model.Confidence
	Rationale  string
}

func always(d model.Direction) func(float64) model.Direction {
	return func(float64) model.Direction { return d }
}

// regimeRules are evaluated top to bottom; the first match wins for a pair.
var regimeRules = []rule{
	{
		ID:     model.RuleCarryAligned,
		Regime: model.RegimeRiskOn,
		When: func(diff float64, trend model.Trend) bool {
			return diff > 1.0 && trend == model.TrendBullish
		},
		Category:   model.CategoryPrimary,
		Direction:  always(model.DirectionLong),
		Confidence: model.ConfidenceHigh,
		Rationale:  "Strong carry + bullish trend alignment",
	},
	{
		ID:     model.RuleNegativeCarryBearish,
		Regime: model.RegimeRiskOn,
		When: func(diff float64, trend model.Trend) bool {
			return diff < -1.0 && trend == model.TrendBearish
		},
		Category:   model.CategorySecondary,
		Direction:  always(model.DirectionShort),
		Confidence: model.ConfidenceMedium,
		Rationale:  "Negative carry + bearish trend",
	},
	{
		ID:         model.RuleModerateCarry,
		Regime:     model.RegimeRiskOn,
		When:       func(diff float64, _ model.Trend) bool { return diff > 0.5 },
		Category:   model.CategorySecondary,
		Direction:  always(model.DirectionLong),
		Confidence: model.ConfidenceMedium,
		Rationale:  "Positive carry without trend confirmation",
	},
	{
		ID:     model.RuleSafeHavenReversal,
		Regime: model.RegimeRiskOff,
		When: func(diff float64, trend model.Trend) bool {
			return diff < -1.0 && trend == model.TrendBullish
		},
		Category:   model.CategorySecondary,
		Direction:  always(model.DirectionLong),
		Confidence: model.ConfidenceMedium,
		Rationale:  "Safe haven + bullish reversal potential",
	},
	{
		ID:       model.RuleSafeHaven,
		Regime:   model.RegimeRiskOff,
		When:     func(diff float64, _ model.Trend) bool { return diff < -1.0 },
		Category: model.CategoryPrimary,
		Direction: func(diff float64) model.Direction {
			if diff > 0 {
				return model.DirectionShort
			}
			return model.DirectionLong
		},
		Confidence: model.ConfidenceHigh,
		Rationale:  "Low-yield safe haven favoured while risk is off",
	},
	{
		ID:         model.RuleCarryUnwind,
		Regime:     model.RegimeRiskOff,
		When:       func(diff float64, _ model.Trend) bool { return diff > 2.0 },
		Category:   model.CategoryAvoid,
		Direction:  always(model.DirectionAvoid),
		Confidence: model.ConfidenceLow,
		Rationale:  "High carry trade unwinding risk",
	},
	{
		ID:         model.RuleNeutralMonitor,
		Regime:     model.RegimeNeutral,
		When:       func(diff float64, _ model.Trend) bool { return math.Abs(diff) > 1.0 },
		Category:   model.CategoryMonitor,
		Direction:  always(model.DirectionWait),
		Confidence: model.ConfidenceLow,
		Rationale:  "Meaningful differential, wait for a directional regime",
	},
}

// rangeRule applies in every regime, independently of regimeRules.
var rangeRule = rule{
	ID:         model.RuleLowDifferential,
	When:       func(diff float64, _ model.Trend) bool { return math.Abs(diff) < 0.5 },
	Category:   model.CategoryRange,
	Direction:  always(model.DirectionRange),
	Confidence: model.ConfidenceMedium,
	Rationale:  "Low carry influence, technical trading",
}

func (r rule) entry(pair model.CurrencyPair, diff float64, trend model.Trend) model.WatchlistEntry {
	return model.WatchlistEntry{
		Pair:       pair,
		Diff:       diff,
		AbsDiff:    math.Abs(diff),
		Trend:      trend,
		Direction:  r.Direction(diff),
		Rule:       r.ID,
		Rationale:  r.Rationale,
		Confidence: r.Confidence,
	}
}

// matchRegimeRule returns the first regime rule matching the pair, if any.
func matchRegimeRule(regime model.Regime, diff float64, trend model.Trend) (rule, bool) {
	for _, r := range regimeRules {
		if r.Regime != regime {
			continue
		}
		if r.When(diff, trend) {
			return r, true
		}
	}
	return rule{}, false
}
