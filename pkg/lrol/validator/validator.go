package validator

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"loci-hq/lrol/pkg/lrol/analyzer"
	"loci-hq/lrol/pkg/lrol/ast"
	lerrors "loci-hq/lrol/pkg/lrol/errors"
	"loci-hq/lrol/pkg/lrol/parser"
)

// Recorder receives one observation per validated document and per cache
// lookup. The metrics collector implements it.
type Recorder interface {
	RecordValidation(report *Report, duration time.Duration)
	RecordCacheLookup(hit bool)
}

// Validator parses and analyzes rule documents.
type Validator struct {
	parser   *parser.Parser
	analyzer *analyzer.Analyzer
	workers  int
	cache    *Cache
	reader   FileReader
	tracer   trace.Tracer
	recorder Recorder
	logger   *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithParser replaces the default parser.
func WithParser(p *parser.Parser) Option {
	return func(v *Validator) { v.parser = p }
}

// WithAnalyzer replaces the default analyzer.
func WithAnalyzer(a *analyzer.Analyzer) Option {
	return func(v *Validator) { v.analyzer = a }
}

// WithWorkers bounds the number of files validated concurrently.
// Values below 1 select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(v *Validator) { v.workers = n }
}

// WithCache enables report caching by content digest.
func WithCache(c *Cache) Option {
	return func(v *Validator) { v.cache = c }
}

// WithFileReader replaces os.ReadFile in ValidateFile, e.g. with a rule
// loader that enforces size limits.
func WithFileReader(r FileReader) Option {
	return func(v *Validator) { v.reader = r }
}

// WithTracer sets the tracer used for lrol.validate spans.
func WithTracer(t trace.Tracer) Option {
	return func(v *Validator) { v.tracer = t }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(v *Validator) { v.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) { v.logger = l }
}

// New creates a validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		parser:   parser.NewParser(),
		analyzer: analyzer.New(),
		reader:   osReader{},
		tracer:   noop.NewTracerProvider().Tracer("lrol"),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.workers < 1 {
		v.workers = runtime.NumCPU()
	}
	return v
}

// Validate parses text and, when parsing succeeds, analyzes the model.
// source names the document in locations and the report; it may be empty.
func (v *Validator) Validate(ctx context.Context, text, source string) *Report {
	return v.validate(ctx, []byte(text), source)
}

func (v *Validator) validate(ctx context.Context, data []byte, source string) *Report {
	digest := Digest(data)
	if v.cache != nil {
		report, ok := v.cache.Get(digest, source)
		if v.recorder != nil {
			v.recorder.RecordCacheLookup(ok)
		}
		if ok {
			v.logger.Debug("validation cache hit", "file", source, "digest", digest[:12])
			return report
		}
	}

	_, span := v.tracer.Start(ctx, "lrol.validate", trace.WithAttributes(
		attribute.String("lrol.file", source),
		attribute.Int("lrol.size_bytes", len(data)),
	))
	defer span.End()

	start := time.Now()
	report := &Report{
		FilePath:       source,
		AnalyzerErrors: []*lerrors.AnalyzerError{},
		Digest:         digest,
	}

	model, err := v.parser.ParseBytes(data, source)
	if err != nil {
		report.ParserError = asParserError(err)
		span.SetStatus(codes.Error, "parse failed")
		span.SetAttributes(attribute.Bool("lrol.parse_failed", true))
	} else {
		result := v.analyzer.Analyze(model)
		report.Model = model
		report.Graph = result.Graph
		report.AnalyzerErrors = append(report.AnalyzerErrors, result.Errors.Errors...)

		span.SetAttributes(
			attribute.String("lrol.model_id", model.ModelID),
			attribute.Int("lrol.evaluations", len(model.Evaluations)),
			attribute.Int("lrol.analyzer_errors", len(report.AnalyzerErrors)),
		)
		if !report.IsValid() {
			span.SetStatus(codes.Error, "analysis failed")
		}
	}

	duration := time.Since(start)
	if v.recorder != nil {
		v.recorder.RecordValidation(report, duration)
	}
	if v.cache != nil {
		v.cache.Add(report)
	}

	v.logger.Debug("document validated",
		"file", source,
		"valid", report.IsValid(),
		"errors", report.ErrorCount(),
		"duration", duration,
	)

	return report
}

// asParserError converts a parse failure into a ParserError. The parser only
// returns *ParserError, but any other error is wrapped rather than dropped.
func asParserError(err error) *lerrors.ParserError {
	var perr *lerrors.ParserError
	if errors.As(err, &perr) {
		return perr
	}
	return lerrors.NewSyntaxError(ast.Location{}, err.Error())
}
