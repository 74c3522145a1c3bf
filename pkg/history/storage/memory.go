package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"loci-hq/lrol/pkg/history"
)

// MemoryStore keeps runs in memory. It backs history.backend "memory" and
// tests; nothing survives the process.
type MemoryStore struct {
	mu      sync.RWMutex
	runs    map[string]*history.Run
	results map[string][]history.FileResult
}

var _ history.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs:    make(map[string]*history.Run),
		results: make(map[string][]history.FileResult),
	}
}

// SaveRun implements history.Store.
func (s *MemoryStore) SaveRun(_ context.Context, run *history.Run, results []history.FileResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := *run
	s.runs[run.ID] = &r

	copied := make([]history.FileResult, len(results))
	for i, fr := range results {
		fr.RunID = run.ID
		fr.AnalyzerErrors = append([]string(nil), fr.AnalyzerErrors...)
		copied[i] = fr
	}
	sort.Slice(copied, func(i, j int) bool { return copied[i].Path < copied[j].Path })
	s.results[run.ID] = copied
	return nil
}

// GetRun implements history.Store.
func (s *MemoryStore) GetRun(_ context.Context, id string) (*history.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, history.ErrRunNotFound
	}
	r := *run
	return &r, nil
}

// ListRuns implements history.Store.
func (s *MemoryStore) ListRuns(_ context.Context, limit int) ([]*history.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := s.sortedLocked()
	// newest first
	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// FileResults implements history.Store.
func (s *MemoryStore) FileResults(_ context.Context, runID string) ([]history.FileResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.runs[runID]; !ok {
		return nil, history.ErrRunNotFound
	}
	return append([]history.FileResult(nil), s.results[runID]...), nil
}

// DeleteBefore implements history.Store.
func (s *MemoryStore) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, run := range s.runs {
		if run.StartedAt.Before(cutoff) {
			delete(s.runs, id)
			delete(s.results, id)
			deleted++
		}
	}
	return deleted, nil
}

// Count implements history.Store.
func (s *MemoryStore) Count(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.runs)), nil
}

// DeleteOldest implements history.Store.
func (s *MemoryStore) DeleteOldest(_ context.Context, n int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runs := s.sortedLocked()
	var deleted int64
	for _, run := range runs {
		if deleted >= n {
			break
		}
		delete(s.runs, run.ID)
		delete(s.results, run.ID)
		deleted++
	}
	return deleted, nil
}

// Close implements history.Store.
func (s *MemoryStore) Close() error {
	return nil
}

// sortedLocked returns copies of all runs, oldest first.
func (s *MemoryStore) sortedLocked() []*history.Run {
	runs := make([]*history.Run, 0, len(s.runs))
	for _, run := range s.runs {
		r := *run
		runs = append(runs, &r)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].StartedAt.Before(runs[j].StartedAt)
	})
	return runs
}
