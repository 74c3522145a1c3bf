package health

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// WatchState tracks the most recent rule directory validation performed by
// lrol watch. It doubles as a readiness check.
type WatchState struct {
	mu      sync.RWMutex
	loaded  bool
	lastRun time.Time
	files   int
	invalid int
	lastErr error
}

// NewWatchState returns a state that reports unready until the first run.
func NewWatchState() *WatchState {
	return &WatchState{}
}

// Record stores the outcome of a validation pass. err is a failure to read
// the rule directory, not an invalid rule file.
func (s *WatchState) Record(files, invalid int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.lastRun = time.Now()
	s.files = files
	s.invalid = invalid
	s.lastErr = err
}

// Snapshot returns the last recorded counts.
func (s *WatchState) Snapshot() (files, invalid int, at time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.files, s.invalid, s.lastRun
}

// Check implements CheckFunc. Invalid rule files do not make the watcher
// unready; only a failed directory scan does.
func (s *WatchState) Check(context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return fmt.Errorf("rules not loaded yet")
	}
	if s.lastErr != nil {
		return fmt.Errorf("last reload failed: %w", s.lastErr)
	}
	return nil
}
