package tracing

import (
	"context"
	"errors"
	"testing"

	"loci-hq/lrol/pkg/config"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestTracer(t *testing.T, sampler string, ratio float64) (*Tracer, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tr, err := newWithExporter(&config.TracingConfig{
		Enabled:     true,
		Sampler:     sampler,
		SampleRatio: ratio,
		ServiceName: "lrol-test",
	}, exporter)
	if err != nil {
		t.Fatalf("newWithExporter() error = %v", err)
	}
	return tr, exporter
}

func TestNew(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("New(nil) should return an error")
	}

	tr, err := New(&config.TracingConfig{Enabled: false, ServiceName: "lrol"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if tr.Enabled() {
		t.Error("disabled config should produce a disabled tracer")
	}

	ctx, span := tr.Start(context.Background(), "noop")
	span.End()
	if id := TraceID(ctx); id != "" {
		t.Errorf("noop span should have no trace ID, got %q", id)
	}
	if err := tr.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNew_InvalidSampler(t *testing.T) {
	_, err := newWithExporter(&config.TracingConfig{
		Enabled: true,
		Sampler: "sometimes",
	}, tracetest.NewInMemoryExporter())
	if err == nil {
		t.Error("expected error for unknown sampler")
	}
}

func TestTracer_ExportsSpans(t *testing.T) {
	tr, exporter := newTestTracer(t, SamplerAlways, 0)
	if !tr.Enabled() {
		t.Fatal("tracer should be enabled")
	}

	ctx, parent := tr.Start(context.Background(), "lrol.validate_run")
	if TraceID(ctx) == "" {
		t.Error("sampled span should carry a trace ID")
	}
	_, child := tr.Start(ctx, "lrol.validate")
	child.End()
	SetRunAttributes(parent, RunAttributes{RunID: "run-1", Source: "dir", Files: 3, Invalid: 1})
	SetStatus(parent, errors.New("1 invalid file"))
	parent.End()

	if err := tr.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}

	run := spans[1]
	if run.Name != "lrol.validate_run" {
		t.Fatalf("second span = %q, want lrol.validate_run", run.Name)
	}
	if spans[0].Parent.SpanID() != run.SpanContext.SpanID() {
		t.Error("child span should be parented to the run span")
	}
	if run.Status.Code != codes.Error {
		t.Errorf("status = %v, want Error", run.Status.Code)
	}

	want := map[attribute.Key]attribute.Value{
		AttrRunID:   attribute.StringValue("run-1"),
		AttrFiles:   attribute.IntValue(3),
		AttrInvalid: attribute.IntValue(1),
	}
	got := map[attribute.Key]attribute.Value{}
	for _, kv := range run.Attributes {
		got[kv.Key] = kv.Value
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("attribute %s = %v, want %v", k, got[k].Emit(), v.Emit())
		}
	}
	if _, ok := got[AttrCommit]; ok {
		t.Error("empty commit should not be recorded")
	}
}

func TestTracer_NeverSampler(t *testing.T) {
	tr, exporter := newTestTracer(t, SamplerNever, 0)

	_, span := tr.Start(context.Background(), "dropped")
	span.End()
	if err := tr.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if n := len(exporter.GetSpans()); n != 0 {
		t.Errorf("never sampler exported %d spans", n)
	}
}

func TestSetStatus_OK(t *testing.T) {
	tr, exporter := newTestTracer(t, SamplerAlways, 0)

	_, span := tr.Start(context.Background(), "ok")
	SetStatus(span, nil)
	span.End()
	_ = tr.Shutdown(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 || spans[0].Status.Code != codes.Ok {
		t.Errorf("expected one span with Ok status, got %+v", spans)
	}
}
