package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes market-data and analysis metrics to Prometheus.
type Recorder struct {
	lookups      *prometheus.CounterVec
	fetchLatency *prometheus.HistogramVec
	runs         *prometheus.CounterVec
	signals      *prometheus.GaugeVec
	vix          prometheus.Gauge
}

// New registers the collectors with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		lookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carrysentinel_price_lookups_total",
				Help: "Price-trend lookups by outcome",
			},
			[]string{"outcome"},
		),
		fetchLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "carrysentinel_fetch_duration_seconds",
				Help:    "Market data fetch duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		runs: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carrysentinel_analysis_runs_total",
				Help: "Analysis runs by regime",
			},
			[]string{"regime"},
		),
		signals: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "carrysentinel_signals",
				Help: "Signals produced by the last analysis, by confidence",
			},
			[]string{"confidence"},
		),
		vix: f.NewGauge(prometheus.GaugeOpts{
			Name: "carrysentinel_vix",
			Help: "Last observed VIX level",
		}),
	}
}

// RecordLookup counts a price lookup outcome: hit, miss or cached.
func (r *Recorder) RecordLookup(outcome string) {
	if r == nil {
		return
	}
	r.lookups.WithLabelValues(outcome).Inc()
}

// RecordFetch observes a fetch duration.
func (r *Recorder) RecordFetch(source string, seconds float64) {
	if r == nil {
		return
	}
	r.fetchLatency.WithLabelValues(source).Observe(seconds)
}

// RecordRun counts a run and sets the per-confidence signal gauges.
func (r *Recorder) RecordRun(regime string, byConfidence map[string]int) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(regime).Inc()
	for conf, n := range byConfidence {
		r.signals.WithLabelValues(conf).Set(float64(n))
	}
}

// RecordVIX sets the VIX gauge.
func (r *Recorder) RecordVIX(v float64) {
	if r == nil {
		return
	}
	r.vix.Set(v)
}
