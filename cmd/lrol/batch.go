package main

import (
	"context"
	"fmt"
	"time"

	"loci-hq/lrol/pkg/history"
	"loci-hq/lrol/pkg/lrol/validator"
	"loci-hq/lrol/pkg/telemetry/logging"
	"loci-hq/lrol/pkg/telemetry/tracing"
)

// batch validates a set of rule files as one run: traced, logged and, when
// store is set, recorded to history.
type batch struct {
	validator *validator.Validator
	tracer    *tracing.Tracer
	store     history.Store
	logger    *logging.Logger
}

// batchResult is the outcome of one run.
type batchResult struct {
	Run     *history.Run
	Results []validator.FileResult
}

func (b *batch) run(ctx context.Context, source, commit string, paths []string) (*batchResult, error) {
	run := history.NewRun(source, commit, time.Now())

	ctx = logging.WithRunID(ctx, run.ID)
	if commit != "" {
		ctx = logging.WithCommit(ctx, commit)
	}
	ctx, span := b.tracer.Start(ctx, "lrol.run")
	defer span.End()

	results, err := b.validator.ValidateFiles(ctx, paths)
	stored := run.Complete(results, time.Now())
	tracing.SetRunAttributes(span, tracing.RunAttributes{
		RunID:   run.ID,
		Source:  source,
		Commit:  commit,
		Files:   run.Files,
		Invalid: run.Invalid,
	})
	if err != nil {
		tracing.SetStatus(span, err)
		return nil, err
	}

	if b.store != nil {
		if err := b.store.SaveRun(ctx, run, stored); err != nil {
			err = fmt.Errorf("failed to record run: %w", err)
			tracing.SetStatus(span, err)
			return nil, err
		}
	}
	tracing.SetStatus(span, nil)

	logger := b.logger
	if id := tracing.TraceID(ctx); id != "" {
		logger = logger.With("trace_id", id)
	}
	logger.InfoContext(ctx, "validation run completed",
		"source", source,
		"files", run.Files,
		"valid", run.Valid,
		"invalid", run.Invalid,
		"duration_ms", run.Duration.Milliseconds(),
		"recorded", b.store != nil,
	)
	return &batchResult{Run: run, Results: results}, nil
}
