package lookup

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess  = "success"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

// Metrics records lookup outcomes. A nil *Metrics records nothing.
type Metrics struct {
	lookups  *prometheus.CounterVec
	duration prometheus.Histogram
	forms    prometheus.Histogram
}

// NewMetrics creates the lookup collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		lookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "conjugation",
			Name:      "lookups_total",
			Help:      "Verb lookups by outcome.",
		}, []string{"outcome"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "conjugation",
			Name:      "lookup_duration_seconds",
			Help:      "Time spent resolving and aggregating a verb.",
			Buckets:   prometheus.DefBuckets,
		}),
		forms: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "conjugation",
			Name:      "lookup_forms",
			Help:      "Number of form records fetched per successful lookup.",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 8),
		}),
	}
}

func (m *Metrics) observe(outcome string, seconds float64, forms int) {
	if m == nil {
		return
	}

	m.lookups.WithLabelValues(outcome).Inc()
	m.duration.Observe(seconds)
	if outcome == outcomeSuccess {
		m.forms.Observe(float64(forms))
	}
}
