// Package metrics exposes optional Prometheus instrumentation for the
// alignment engine. Callers who never call Register incur no
// collection overhead beyond a handful of nil checks.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the core's Prometheus collectors, labeled by method
// and (where relevant) outcome.
type Metrics struct {
	alignTotal        *prometheus.CounterVec
	alignDuration     *prometheus.HistogramVec
	alignConfidence   *prometheus.HistogramVec
	degradationsTotal *prometheus.CounterVec
	errorSinkTotal    *prometheus.CounterVec
}

// Register builds and registers a Metrics against reg and always
// returns a usable, non-nil Metrics. Opting out means never calling
// Register: every observation method is a no-op on a nil *Metrics.
func Register(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		alignTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "syncalign",
			Name:      "align_total",
			Help:      "Total alignment calls, by method and outcome.",
		}, []string{"method", "outcome"}),
		alignDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "syncalign",
			Name:      "align_duration_seconds",
			Help:      "Alignment call latency, by method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		alignConfidence: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "syncalign",
			Name:      "align_confidence",
			Help:      "Calibrated confidence of successful alignments, by method.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}, []string{"method"}),
		degradationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "syncalign",
			Name:      "degradations_total",
			Help:      "Graceful-degradation invocations, by trigger and level.",
		}, []string{"trigger", "level"}),
		errorSinkTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "syncalign",
			Name:      "errors_total",
			Help:      "Error-sink records, by kind and severity.",
		}, []string{"kind", "severity"}),
	}
}

// ObserveAlign records one alignment call's outcome, latency, and (if
// successful) confidence. m may be nil, in which case this is a no-op —
// callers that never opted into metrics should not have to nil-check.
func (m *Metrics) ObserveAlign(method, outcome string, seconds, confidence float64, success bool) {
	if m == nil {
		return
	}
	m.alignTotal.WithLabelValues(method, outcome).Inc()
	m.alignDuration.WithLabelValues(method).Observe(seconds)
	if success {
		m.alignConfidence.WithLabelValues(method).Observe(confidence)
	}
}

// ObserveDegradation records one degradation invocation.
func (m *Metrics) ObserveDegradation(trigger, level string) {
	if m == nil {
		return
	}
	m.degradationsTotal.WithLabelValues(trigger, level).Inc()
}

// ObserveError records one error-sink write.
func (m *Metrics) ObserveError(kind, severity string) {
	if m == nil {
		return
	}
	m.errorSinkTotal.WithLabelValues(kind, severity).Inc()
}
