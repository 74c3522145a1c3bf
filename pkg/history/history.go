package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"loci-hq/lrol/pkg/lrol/validator"
)

// ErrRunNotFound is returned by GetRun for an unknown ID.
var ErrRunNotFound = errors.New("run not found")

// Run summarizes one batch validation.
type Run struct {
	ID        string        `json:"id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Source    string        `json:"source"`
	Commit    string        `json:"commit,omitempty"`
	Files     int           `json:"files"`
	Valid     int           `json:"valid"`
	Invalid   int           `json:"invalid"`
}

// FileResult is the stored outcome of one file in a run.
type FileResult struct {
	RunID          string   `json:"run_id"`
	Path           string   `json:"path"`
	Valid          bool     `json:"valid"`
	Error          string   `json:"error,omitempty"`
	ParserError    string   `json:"parser_error,omitempty"`
	AnalyzerErrors []string `json:"analyzer_errors,omitempty"`
	ModelID        string   `json:"model_id,omitempty"`
	Digest         string   `json:"digest,omitempty"`
}

// Store persists validation runs.
type Store interface {
	// SaveRun stores a run and its file results atomically.
	SaveRun(ctx context.Context, run *Run, results []FileResult) error

	// GetRun returns the run with the given ID or ErrRunNotFound.
	GetRun(ctx context.Context, id string) (*Run, error)

	// ListRuns returns up to limit runs, newest first. limit <= 0 returns all.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)

	// FileResults returns the file results of a run sorted by path.
	FileResults(ctx context.Context, runID string) ([]FileResult, error)

	// DeleteBefore removes runs started before cutoff and returns how many.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Count returns the number of stored runs.
	Count(ctx context.Context) (int64, error)

	// DeleteOldest removes the n oldest runs and returns how many.
	DeleteOldest(ctx context.Context, n int64) (int64, error)

	// Close releases resources held by the store.
	Close() error
}

// NewRun starts a run record with a fresh ID.
func NewRun(source, commit string, startedAt time.Time) *Run {
	return &Run{
		ID:        uuid.NewString(),
		StartedAt: startedAt,
		Source:    source,
		Commit:    commit,
	}
}

// Complete fills the run counters and duration from batch results and
// converts them for storage.
func (r *Run) Complete(results []validator.FileResult, finished time.Time) []FileResult {
	r.Duration = finished.Sub(r.StartedAt)
	r.Files = len(results)
	r.Valid, r.Invalid = 0, 0

	out := make([]FileResult, 0, len(results))
	for _, res := range results {
		fr := FromValidation(r.ID, res)
		if fr.Valid {
			r.Valid++
		} else {
			r.Invalid++
		}
		out = append(out, fr)
	}
	return out
}

// FromValidation converts a batch result into a stored file result.
func FromValidation(runID string, res validator.FileResult) FileResult {
	fr := FileResult{
		RunID: runID,
		Path:  res.Path,
		Valid: res.Valid(),
	}

	var fve *validator.FileValidationError
	if res.Err != nil && (!errors.As(res.Err, &fve) || fve.Kind != validator.ValidationErrors) {
		fr.Error = res.Err.Error()
	}

	if report := res.Report; report != nil {
		fr.Digest = report.Digest
		if report.Model != nil {
			fr.ModelID = report.Model.ModelID
		}
		if report.ParserError != nil {
			fr.ParserError = report.ParserError.Error()
		}
		for _, ae := range report.AnalyzerErrors {
			fr.AnalyzerErrors = append(fr.AnalyzerErrors, ae.Error())
		}
	}
	return fr
}
