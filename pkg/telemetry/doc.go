// Package telemetry groups the observability packages used by lrol.
//
//   - logging: structured slog logging with file rotation and redaction
//   - metrics: Prometheus counters and histograms for validation runs
//   - tracing: OpenTelemetry spans exported over OTLP gRPC
//   - health: liveness and readiness endpoints for lrol watch
package telemetry
