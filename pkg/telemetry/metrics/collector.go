package metrics

import (
	"time"

	"loci-hq/lrol/pkg/config"
	"loci-hq/lrol/pkg/lrol/validator"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns the Prometheus registry of the lrol tools and records
// validation, cache, watch and retention metrics. It implements
// validator.Recorder.
//
// When the config has metrics disabled every Record method is a no-op, so
// callers can hold a Collector unconditionally.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	validationMetrics *ValidationMetrics
	cacheMetrics      *CacheMetrics
	watchMetrics      *WatchMetrics
}

var _ validator.Recorder = (*Collector)(nil)

// NewCollector creates a collector with the specified configuration and
// Prometheus registry. A nil registry gets a fresh private one.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true, Namespace: "lrol", Subsystem: "validator"}
//	collector := metrics.NewCollector(cfg, nil)
//	v := validator.New(validator.WithRecorder(collector))
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	return &Collector{
		config:            cfg,
		registry:          registry,
		validationMetrics: NewValidationMetrics(cfg, registry),
		cacheMetrics:      NewCacheMetrics(cfg, registry),
		watchMetrics:      NewWatchMetrics(cfg, registry),
	}
}

// RecordValidation records a validated document.
func (c *Collector) RecordValidation(report *validator.Report, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	result := ResultValid
	switch {
	case report.ParserError != nil:
		result = ResultParseError
	case !report.IsValid():
		result = ResultInvalidModel
	}

	kinds := make([]string, 0, len(report.AnalyzerErrors))
	for _, e := range report.AnalyzerErrors {
		kinds = append(kinds, string(e.Kind))
	}

	c.validationMetrics.RecordDocument(result, kinds, duration)
}

// RecordCacheLookup records a report cache hit or miss.
func (c *Collector) RecordCacheLookup(hit bool) {
	if !c.config.Enabled {
		return
	}
	c.cacheMetrics.RecordLookup(hit)
}

// UpdateCacheSize sets the number of cached reports.
func (c *Collector) UpdateCacheSize(size int) {
	if !c.config.Enabled {
		return
	}
	c.cacheMetrics.UpdateSize(size)
}

// RecordWatchReload records a watch-triggered re-validation; success is
// false when any file in the batch was invalid or unreadable.
func (c *Collector) RecordWatchReload(success bool) {
	if !c.config.Enabled {
		return
	}
	result := ReloadSuccess
	if !success {
		result = ReloadFailure
	}
	c.watchMetrics.RecordReload(result)
}

// RecordHistoryPruned records validation runs removed by retention.
func (c *Collector) RecordHistoryPruned(n int64) {
	if !c.config.Enabled {
		return
	}
	c.watchMetrics.RecordPruned(n)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
