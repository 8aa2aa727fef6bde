package recorder

import (
	"CarrySentinel/internal/model"
	"CarrySentinel/internal/strategy"
)

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordAnalysis(a *strategy.Analysis) error
	RecordRates(rates model.RateMap, source string) error
	Close() error
}
