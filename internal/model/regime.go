package model

// Regime is the coarse market risk appetite for one analysis run.
type Regime string

const (
	RegimeRiskOn  Regime = "RISK_ON"
	RegimeRiskOff Regime = "RISK_OFF"
	RegimeNeutral Regime = "NEUTRAL"
	RegimeUnknown Regime = "UNKNOWN"
)

func (r Regime) String() string { return string(r) }

// Description is the short human-readable summary shown next to the regime.
func (r Regime) Description() string {
	switch r {
	case RegimeRiskOn:
		return "Low fear - risk-on environment"
	case RegimeRiskOff:
		return "High fear - risk-off environment"
	case RegimeNeutral:
		return "Neutral - mixed signals"
	default:
		return "Market data unavailable"
	}
}
