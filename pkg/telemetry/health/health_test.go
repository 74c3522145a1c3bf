package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestReadiness(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]CheckFunc
		want   string
	}{
		{
			name:   "no checks",
			checks: nil,
			want:   StatusReady,
		},
		{
			name: "all healthy",
			checks: map[string]CheckFunc{
				"rules":   func(context.Context) error { return nil },
				"history": func(context.Context) error { return nil },
			},
			want: StatusReady,
		},
		{
			name: "one failing",
			checks: map[string]CheckFunc{
				"rules":   func(context.Context) error { return nil },
				"history": func(context.Context) error { return errors.New("database is locked") },
			},
			want: StatusDegraded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(time.Second)
			for name, fn := range tt.checks {
				c.Register(name, fn)
			}
			status := c.Readiness(context.Background())
			if status.Status != tt.want {
				t.Errorf("status = %q, want %q", status.Status, tt.want)
			}
			if len(status.Checks) != len(tt.checks) {
				t.Errorf("got %d check results, want %d", len(status.Checks), len(tt.checks))
			}
		})
	}
}

func TestReadiness_Timeout(t *testing.T) {
	c := New(20 * time.Millisecond)
	c.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		time.Sleep(50 * time.Millisecond)
		return nil
	})

	status := c.Readiness(context.Background())
	res := status.Checks["slow"]
	if res.Status != StatusUnhealthy || res.Message != ErrCheckTimeout.Error() {
		t.Errorf("slow check = %+v, want timeout", res)
	}
}

func TestWatchState(t *testing.T) {
	s := NewWatchState()
	if err := s.Check(context.Background()); err == nil {
		t.Error("state should be unready before the first run")
	}

	s.Record(4, 1, nil)
	if err := s.Check(context.Background()); err != nil {
		t.Errorf("invalid files should not fail the check: %v", err)
	}
	files, invalid, at := s.Snapshot()
	if files != 4 || invalid != 1 || at.IsZero() {
		t.Errorf("Snapshot() = %d, %d, %v", files, invalid, at)
	}

	s.Record(0, 0, errors.New("permission denied"))
	if err := s.Check(context.Background()); err == nil {
		t.Error("a failed scan should fail the check")
	}
}

func TestHandlers(t *testing.T) {
	c := New(time.Second)
	state := NewWatchState()
	c.Register("rules", state.Check)

	mux := http.NewServeMux()
	Mount(mux, c, "1.2.3", "abc123", "2026-01-01")

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	if rec := get("/healthz"); rec.Code != http.StatusOK {
		t.Errorf("/healthz = %d", rec.Code)
	}
	if rec := get("/readyz"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("/readyz before load = %d, want 503", rec.Code)
	}

	state.Record(2, 0, nil)
	rec := get("/readyz")
	if rec.Code != http.StatusOK {
		t.Errorf("/readyz after load = %d, want 200", rec.Code)
	}
	var status Status
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.Checks["rules"].Status != StatusOK {
		t.Errorf("rules check = %+v", status.Checks["rules"])
	}

	rec = get("/version")
	var info VersionInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.Version != "1.2.3" || info.Commit != "abc123" || info.GoVersion == "" {
		t.Errorf("version info = %+v", info)
	}

	post := httptest.NewRecorder()
	mux.ServeHTTP(post, httptest.NewRequest(http.MethodPost, "/healthz", nil))
	if post.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /healthz = %d, want 405", post.Code)
	}
}
