package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys recorded on run-level spans. Per-document attributes
// (lrol.file, lrol.model_id, ...) are set by the validator.
const (
	AttrRunID   = "lrol.run_id"
	AttrSource  = "lrol.source"
	AttrCommit  = "lrol.commit"
	AttrFiles   = "lrol.files"
	AttrInvalid = "lrol.invalid"
)

// RunAttributes describes a batch validation run.
type RunAttributes struct {
	RunID   string
	Source  string
	Commit  string
	Files   int
	Invalid int
}

// SetRunAttributes records the outcome of a batch validation run.
func SetRunAttributes(span trace.Span, run RunAttributes) {
	attrs := []attribute.KeyValue{
		attribute.String(AttrRunID, run.RunID),
		attribute.String(AttrSource, run.Source),
		attribute.Int(AttrFiles, run.Files),
		attribute.Int(AttrInvalid, run.Invalid),
	}
	if run.Commit != "" {
		attrs = append(attrs, attribute.String(AttrCommit, run.Commit))
	}
	span.SetAttributes(attrs...)
}
