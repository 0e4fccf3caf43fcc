package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	ObservationsStored prometheus.Counter
	AlertsTriggered    prometheus.Counter
	CycleDuration      prometheus.Histogram
	PairFailures       *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ObservationsStored: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "observations_stored_total",
			Help:      "The total number of price observations appended to history",
		}),
		AlertsTriggered: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_triggered_total",
			Help:      "The total number of price alerts triggered",
		}),
		CycleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_cycle_duration_seconds",
			Help:      "Time taken by one complete fetch cycle",
			Buckets:   prometheus.DefBuckets,
		}),
		PairFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pair_failures_total",
			Help:      "The total number of per-pair quote failures",
		}, []string{"reason"}),
	}
}

// RecordSummary updates the counters from one fetch cycle summary.
func (m *Metrics) RecordSummary(observations, triggered int, failures map[string]int, seconds float64) {
	m.ObservationsStored.Add(float64(observations))
	m.AlertsTriggered.Add(float64(triggered))
	m.CycleDuration.Observe(seconds)
	for reason, count := range failures {
		m.PairFailures.WithLabelValues(reason).Add(float64(count))
	}
}
