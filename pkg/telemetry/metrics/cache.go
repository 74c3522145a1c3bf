package metrics

import (
	"loci-hq/lrol/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// CacheMetrics tracks the validation report cache.
//
// Metrics:
//   - lrol_validator_cache_hits_total: Reports served from the cache
//   - lrol_validator_cache_misses_total: Lookups that needed a full validation
//   - lrol_validator_cache_entries: Current number of cached reports
type CacheMetrics struct {
	hitsTotal   prometheus.Counter
	missesTotal prometheus.Counter
	entries     prometheus.Gauge
}

// NewCacheMetrics creates and registers cache metrics with the provided registry.
func NewCacheMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CacheMetrics {
	cm := &CacheMetrics{
		hitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cache_hits_total",
				Help:      "Total number of report cache hits",
			},
		),

		missesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cache_misses_total",
				Help:      "Total number of report cache misses",
			},
		),

		entries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cache_entries",
				Help:      "Current number of cached reports",
			},
		),
	}

	registry.MustRegister(
		cm.hitsTotal,
		cm.missesTotal,
		cm.entries,
	)

	return cm
}

// RecordLookup records a cache hit or miss.
func (cm *CacheMetrics) RecordLookup(hit bool) {
	if hit {
		cm.hitsTotal.Inc()
		return
	}
	cm.missesTotal.Inc()
}

// UpdateSize sets the current number of cached reports.
func (cm *CacheMetrics) UpdateSize(size int) {
	cm.entries.Set(float64(size))
}
