// Package metrics provides Prometheus metrics for the lrol tools.
//
// # Metrics
//
// All names are prefixed with the configured namespace and subsystem
// (lrol_validator_ by default):
//
//   - documents_validated_total{result}: valid, parse_error or invalid
//   - parse_failures_total
//   - analyzer_errors_total{kind}: one increment per reported error
//   - validation_duration_seconds: histogram of parse plus analysis time
//   - cache_hits_total, cache_misses_total, cache_entries
//   - watch_reloads_total{result}: success or failure
//   - history_pruned_total
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	v := validator.New(validator.WithRecorder(collector))
//
//	srv := collector.NewServer(cfg.Telemetry.Metrics.ListenAddress, cfg.Telemetry.Metrics.Path)
//	go srv.ListenAndServe()
//
// The collector uses a private registry, so several collectors can coexist in
// tests.
package metrics
