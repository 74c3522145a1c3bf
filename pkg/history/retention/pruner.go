package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"loci-hq/lrol/pkg/config"
	"loci-hq/lrol/pkg/history"
)

// Config contains configuration for the history pruner.
type Config struct {
	// Days is the number of days to keep runs. 0 keeps runs forever.
	Days int

	// MaxRecords is the maximum number of runs to keep. 0 means unlimited.
	MaxRecords int64

	// Schedule is a cron expression for automatic pruning. Empty disables
	// the scheduler; Prune can still be called directly.
	Schedule string
}

// ConfigFrom builds a pruner configuration from the history retention section.
func ConfigFrom(cfg *config.RetentionConfig) *Config {
	return &Config{
		Days:       cfg.Days,
		MaxRecords: cfg.MaxRecords,
		Schedule:   cfg.Schedule,
	}
}

// Recorder observes pruning. *metrics.Collector satisfies it.
type Recorder interface {
	RecordHistoryPruned(n int64)
}

// Pruner enforces retention on stored validation runs.
type Pruner struct {
	store    history.Store
	config   *Config
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewPruner creates a pruner. recorder and logger may be nil.
func NewPruner(store history.Store, cfg *Config, recorder Recorder, logger *slog.Logger) *Pruner {
	if cfg == nil {
		cfg = &Config{Days: config.DefaultHistoryRetentionDays, Schedule: config.DefaultHistoryRetentionSchedule}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pruner{
		store:    store,
		config:   cfg,
		recorder: recorder,
		logger:   logger.With("component", "history.retention"),
		now:      time.Now,
	}
}

// Prune removes runs older than the retention period, then the oldest runs
// beyond MaxRecords. It returns the total number of runs removed.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var total int64

	if p.config.Days > 0 {
		cutoff := p.now().AddDate(0, 0, -p.config.Days)
		deleted, err := p.store.DeleteBefore(ctx, cutoff)
		if err != nil {
			return total, &RetentionError{Phase: "age", Cause: err}
		}
		total += deleted
		p.logger.Debug("pruned runs by age",
			"deleted_count", deleted,
			"cutoff", cutoff,
		)
	}

	if p.config.MaxRecords > 0 {
		deleted, err := p.pruneByCount(ctx)
		if err != nil {
			return total, &RetentionError{Phase: "count", Cause: err}
		}
		total += deleted
	}

	if p.recorder != nil && total > 0 {
		p.recorder.RecordHistoryPruned(total)
	}

	if total > 0 {
		p.logger.Info("history pruning completed",
			"total_deleted", total,
			"retention_days", p.config.Days,
			"max_records", p.config.MaxRecords,
		)
	}
	return total, nil
}

func (p *Pruner) pruneByCount(ctx context.Context) (int64, error) {
	count, err := p.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	if count <= p.config.MaxRecords {
		return 0, nil
	}

	excess := count - p.config.MaxRecords
	p.logger.Debug("run count exceeds limit, pruning oldest",
		"current_count", count,
		"max_records", p.config.MaxRecords,
		"to_delete", excess,
	)
	return p.store.DeleteOldest(ctx, excess)
}

// RetentionError reports a failed pruning phase.
type RetentionError struct {
	Phase string // "age" or "count"
	Cause error
}

// Error implements the error interface.
func (e *RetentionError) Error() string {
	return fmt.Sprintf("prune by %s failed: %v", e.Phase, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *RetentionError) Unwrap() error {
	return e.Cause
}
