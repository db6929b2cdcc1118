// Package metrics provides Prometheus metrics for the HTTP server and the
// clinical checks:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//   - clinical_evaluations_total: Counter with evaluator label
//   - clinical_alerts_total: Counter with evaluator and severity labels
//   - reference_table_entries: Gauge with table label
//   - rate_limiter_buckets_total: Gauge of tracked clients
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import (
	"github.com/giygas/clinpharm-api/clinical"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	ClinicalEvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinical_evaluations_total",
			Help: "Total clinical checks evaluated",
		},
		[]string{"evaluator"},
	)

	ClinicalAlertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinical_alerts_total",
			Help: "Total alerts raised by clinical checks",
		},
		[]string{"evaluator", "severity"},
	)

	ReferenceTableEntries = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reference_table_entries",
			Help: "Number of entries per published reference table",
		},
		[]string{"table"},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen in last ~5 minutes)",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(ClinicalEvaluationsTotal)
	prometheus.MustRegister(ClinicalAlertsTotal)
	prometheus.MustRegister(ReferenceTableEntries)
	prometheus.MustRegister(RateLimiterBucketsTotal)
}

// RecordEvaluation counts one run of evaluator and the alerts it raised
func RecordEvaluation(evaluator string, alerts ...clinical.Alert) {
	ClinicalEvaluationsTotal.WithLabelValues(evaluator).Inc()
	for _, alert := range alerts {
		ClinicalAlertsTotal.WithLabelValues(evaluator, alert.Severity.String()).Inc()
	}
}

// SetReferenceCounts publishes the entry count of every reference table
func SetReferenceCounts(counts map[string]int) {
	for table, n := range counts {
		ReferenceTableEntries.WithLabelValues(table).Set(float64(n))
	}
}
