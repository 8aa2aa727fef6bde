package recorder

import (
	"CarrySentinel/internal/model"
	"CarrySentinel/internal/strategy"
)

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordAnalysis(_ *strategy.Analysis) error { return nil }
func (n *NoopRecorder) RecordRates(_ model.RateMap, _ string) error { return nil }
func (n *NoopRecorder) Close() error { return nil }
