package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordLookup("hit")
	r.RecordLookup("hit")
	r.RecordLookup("miss")
	r.RecordRun("RISK_ON", map[string]int{"HIGH": 2, "MEDIUM": 1})
	r.RecordVIX(17.5)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.lookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.lookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("RISK_ON")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.signals.WithLabelValues("HIGH")))
	assert.Equal(t, 17.5, testutil.ToFloat64(r.vix))
}

func TestRecorder_NilSafe(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.RecordLookup("hit")
		r.RecordFetch("yahoo", 0.1)
		r.RecordRun("NEUTRAL", nil)
		r.RecordVIX(20)
	})
}
