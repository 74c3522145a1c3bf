package metrics

import (
	"time"

	"loci-hq/lrol/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Result label values for documents_validated_total.
const (
	ResultValid        = "valid"
	ResultParseError   = "parse_error"
	ResultInvalidModel = "invalid"
)

// ValidationMetrics tracks document validation.
//
// Metrics:
//   - lrol_validator_documents_validated_total: Validated documents by result
//   - lrol_validator_parse_failures_total: Documents rejected by the parser
//   - lrol_validator_analyzer_errors_total: Analyzer errors by kind
//   - lrol_validator_validation_duration_seconds: Parse plus analysis duration
type ValidationMetrics struct {
	documentsTotal     *prometheus.CounterVec
	parseFailuresTotal prometheus.Counter
	analyzerErrors     *prometheus.CounterVec
	duration           prometheus.Histogram
}

// NewValidationMetrics creates and registers validation metrics with the provided registry.
func NewValidationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ValidationMetrics {
	vm := &ValidationMetrics{
		documentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "documents_validated_total",
				Help:      "Total number of validated rule documents",
			},
			[]string{"result"},
		),

		parseFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_failures_total",
				Help:      "Total number of documents rejected by the parser",
			},
		),

		analyzerErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "analyzer_errors_total",
				Help:      "Total number of analyzer errors by kind",
			},
			[]string{"kind"},
		),

		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validation_duration_seconds",
				Help:      "Duration of parsing and analyzing one document in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
			},
		),
	}

	registry.MustRegister(
		vm.documentsTotal,
		vm.parseFailuresTotal,
		vm.analyzerErrors,
		vm.duration,
	)

	return vm
}

// RecordDocument records one validated document. kinds lists the kind of
// every analyzer error, duplicates included.
func (vm *ValidationMetrics) RecordDocument(result string, kinds []string, duration time.Duration) {
	vm.documentsTotal.WithLabelValues(result).Inc()
	if result == ResultParseError {
		vm.parseFailuresTotal.Inc()
	}
	for _, kind := range kinds {
		vm.analyzerErrors.WithLabelValues(kind).Inc()
	}
	vm.duration.Observe(duration.Seconds())
}
