package metrics

import (
	"loci-hq/lrol/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Result label values for watch_reloads_total.
const (
	ReloadSuccess = "success"
	ReloadFailure = "failure"
)

// WatchMetrics tracks the watch loop and history retention.
//
// Metrics:
//   - lrol_validator_watch_reloads_total: Re-validations triggered by file changes
//   - lrol_validator_history_pruned_total: Validation runs removed by retention
type WatchMetrics struct {
	reloadsTotal *prometheus.CounterVec
	prunedTotal  prometheus.Counter
}

// NewWatchMetrics creates and registers watch metrics with the provided registry.
func NewWatchMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *WatchMetrics {
	wm := &WatchMetrics{
		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "watch_reloads_total",
				Help:      "Total number of re-validations triggered by file changes",
			},
			[]string{"result"},
		),

		prunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "history_pruned_total",
				Help:      "Total number of validation runs removed by retention",
			},
		),
	}

	registry.MustRegister(wm.reloadsTotal, wm.prunedTotal)

	return wm
}

// RecordReload records one watch-triggered re-validation.
func (wm *WatchMetrics) RecordReload(result string) {
	wm.reloadsTotal.WithLabelValues(result).Inc()
}

// RecordPruned adds n to the pruned run counter.
func (wm *WatchMetrics) RecordPruned(n int64) {
	if n > 0 {
		wm.prunedTotal.Add(float64(n))
	}
}
