package model

// Guidance is the execution plan attached to a signal.
type Guidance struct {
	Entry  string
	Stop   string
	Target string
}

// TradingSignal is the display-ready unit handed to presentation and export.
type TradingSignal struct {
	Pair       CurrencyPair
	Direction  Direction
	Category   Category
	Diff       float64
	RateDiff   string // formatted, e.g. "5.40%"
	Trend      Trend
	Confidence Confidence
	Rationale  string
	Guidance
}
