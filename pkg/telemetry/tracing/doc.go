// Package tracing provides OpenTelemetry tracing for validation runs.
//
// When telemetry.tracing.enabled is false, New returns a noop tracer and
// spans cost next to nothing. When enabled, spans are exported over OTLP
// gRPC to telemetry.tracing.endpoint.
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, "lrol.validate_run")
//	defer span.End()
//
// # Sampling
//
// Three strategies are supported:
//   - always: sample every trace
//   - never: sample nothing
//   - ratio: sample telemetry.tracing.sample_ratio of traces by trace ID
//
// All strategies are wrapped in ParentBased so child spans follow their
// parent's decision.
package tracing
