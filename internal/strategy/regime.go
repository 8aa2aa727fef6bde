package strategy

import (
	"math"

	"CarrySentinel/internal/model"
)

// RegimePolicy holds the VIX thresholds used to classify the market regime.
type RegimePolicy struct {
	RiskOnBelow  float64
	RiskOffAbove float64
	// RequireTrendConfirmation grants RISK_ON only when the broad market
	// trades above its moving average.
	RequireTrendConfirmation bool
}

// DefaultRegimePolicy: VIX < 20 with the S&P 500 above its average is risk-on,
// VIX > 25 is risk-off, everything in between is neutral.
var DefaultRegimePolicy = RegimePolicy{
	RiskOnBelow:              20.0,
	RiskOffAbove:             25.0,
	RequireTrendConfirmation: true,
}

// ClassifyRegime classifies with DefaultRegimePolicy.
func ClassifyRegime(volatility *float64, broad *model.BroadTrend) model.Regime {
	return DefaultRegimePolicy.Classify(volatility, broad)
}

// Classify maps a volatility reading and optional broad-market trend to a regime.
// A nil or NaN volatility is UNKNOWN. Both thresholds are strict.
func (p RegimePolicy) Classify(volatility *float64, broad *model.BroadTrend) model.Regime {
	if volatility == nil || math.IsNaN(*volatility) {
		return model.RegimeUnknown
	}
	vix := *volatility
	switch {
	case vix < p.RiskOnBelow:
		if p.RequireTrendConfirmation && (broad == nil || !broad.AboveMA) {
			return model.RegimeNeutral
		}
		return model.RegimeRiskOn
	case vix > p.RiskOffAbove:
		return model.RegimeRiskOff
	default:
		return model.RegimeNeutral
	}
}
