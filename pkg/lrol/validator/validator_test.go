package validator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	lerrors "loci-hq/lrol/pkg/lrol/errors"
)

const validDoc = `{
  "model_id": "M1",
  "name": "N",
  "threshold": 0.9,
  "evaluations": [
    {"name": "a", "type": "comparison", "left": "amt", "operator": ">", "right": 100, "weight": 3}
  ],
  "actions": [{"type": "flag", "reason": "r"}]
}`

const duplicateDoc = `{
  "model_id": "M1",
  "name": "N",
  "threshold": 0.9,
  "evaluations": [
    {"name": "a", "type": "comparison", "left": "amt", "operator": ">", "right": 100},
    {"name": "a", "type": "comparison", "left": "amt", "operator": "<", "right": 5}
  ],
  "actions": [{"type": "flag", "reason": "r"}]
}`

const brokenDoc = `{
  "model_id": "M1"
  "name": "N"
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantValid  bool
		wantParser bool
		wantErrors int
		wantInFmt  string
	}{
		{"valid", validDoc, true, false, 0, "No validation errors found."},
		{"analyzer errors", duplicateDoc, false, false, 1, "1. Duplicate evaluation name: a"},
		{"parser error", brokenDoc, false, true, 1, "Parser Error: Syntax error at line 3, column 3"},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := v.Validate(context.Background(), tt.text, "doc.json")

			if report.IsValid() != tt.wantValid {
				t.Errorf("IsValid() = %v, want %v", report.IsValid(), tt.wantValid)
			}
			if (report.ParserError != nil) != tt.wantParser {
				t.Errorf("ParserError = %v", report.ParserError)
			}
			if report.ErrorCount() != tt.wantErrors {
				t.Errorf("ErrorCount() = %d, want %d", report.ErrorCount(), tt.wantErrors)
			}
			if tt.wantParser && report.Model != nil {
				t.Error("Model must be nil when parsing fails")
			}

			out := report.FormatErrors()
			if !strings.HasPrefix(out, "File: doc.json\n") {
				t.Errorf("FormatErrors() missing file header:\n%s", out)
			}
			if !strings.Contains(out, tt.wantInFmt) {
				t.Errorf("FormatErrors() = %q, want it to contain %q", out, tt.wantInFmt)
			}
		})
	}
}

func TestFormatErrors_NoFile(t *testing.T) {
	report := New().Validate(context.Background(), validDoc, "")
	if got := report.FormatErrors(); got != "No validation errors found." {
		t.Errorf("FormatErrors() = %q", got)
	}
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	v := New()
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		report, err := v.ValidateFile(ctx, writeFile(t, dir, "ok.json", validDoc))
		if err != nil {
			t.Fatalf("ValidateFile() error = %v", err)
		}
		if report.Model == nil || report.Model.ModelID != "M1" {
			t.Errorf("Model = %+v", report.Model)
		}
		if report.Model.SourceFile != filepath.Join(dir, "ok.json") {
			t.Errorf("SourceFile = %q", report.Model.SourceFile)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		path := writeFile(t, dir, "dup.json", duplicateDoc)
		report, err := v.ValidateFile(ctx, path)

		var fve *FileValidationError
		if !errors.As(err, &fve) || fve.Kind != ValidationErrors {
			t.Fatalf("err = %v, want ValidationErrors", err)
		}
		if fve.Report != report || report.FilePath != path {
			t.Error("error must wrap the returned report")
		}
		if fve.Report.AnalyzerErrors[0].Kind != lerrors.KindDuplicateEvaluationName {
			t.Errorf("first error = %v", fve.Report.AnalyzerErrors[0])
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := v.ValidateFile(ctx, filepath.Join(dir, "missing.json"))
		var fve *FileValidationError
		if !errors.As(err, &fve) || fve.Kind != FileNotFound {
			t.Fatalf("err = %v, want FileNotFound", err)
		}
	})

	t.Run("read error", func(t *testing.T) {
		_, err := v.ValidateFile(ctx, dir)
		var fve *FileValidationError
		if !errors.As(err, &fve) || fve.Kind != FileReadError {
			t.Fatalf("err = %v, want FileReadError", err)
		}
	})

	t.Run("invalid utf8", func(t *testing.T) {
		_, err := v.ValidateFile(ctx, writeFile(t, dir, "bin.json", "{\xff}"))
		var fve *FileValidationError
		if !errors.As(err, &fve) || fve.Kind != InvalidUTF8 {
			t.Fatalf("err = %v, want InvalidUTF8", err)
		}
	})
}

func TestValidateDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", duplicateDoc)
	writeFile(t, dir, "a.json", validDoc)
	writeFile(t, dir, "c.json", brokenDoc)
	writeFile(t, dir, "notes.txt", "ignored")
	writeFile(t, dir, "upper.JSON", "ignored")
	if err := os.Mkdir(filepath.Join(dir, "nested.json"), 0o755); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, sub, "deep.json", validDoc)

	results, err := New(WithWorkers(2)).ValidateDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("ValidateDirectory() error = %v", err)
	}

	var names []string
	for _, r := range results {
		names = append(names, filepath.Base(r.Path))
	}
	if strings.Join(names, ",") != "a.json,b.json,c.json" {
		t.Fatalf("files = %v, want a, b, c", names)
	}

	if !results[0].Valid() {
		t.Errorf("a.json should be valid: %v", results[0].Err)
	}
	if results[1].Valid() || results[1].Report == nil {
		t.Error("b.json should be invalid with a report")
	}
	if results[2].Report == nil || results[2].Report.ParserError == nil {
		t.Error("c.json should carry a parser error")
	}
}

func TestValidateDirectory_Missing(t *testing.T) {
	_, err := New().ValidateDirectory(context.Background(), filepath.Join(t.TempDir(), "none"))
	if err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestValidateFiles_Cancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.json", validDoc)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(WithWorkers(1)).ValidateFiles(ctx, []string{path, path})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

type countingRecorder struct {
	mu      sync.Mutex
	reports []*Report
	hits    int
	misses  int
}

func (r *countingRecorder) RecordCacheLookup(hit bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if hit {
		r.hits++
	} else {
		r.misses++
	}
}

func (r *countingRecorder) RecordValidation(report *Report, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
}

func TestValidate_Cache(t *testing.T) {
	cache, err := NewCache(8)
	if err != nil {
		t.Fatal(err)
	}
	rec := &countingRecorder{}
	v := New(WithCache(cache), WithRecorder(rec))
	ctx := context.Background()

	first := v.Validate(ctx, duplicateDoc, "one.json")
	again := v.Validate(ctx, duplicateDoc, "one.json")

	if len(rec.reports) != 1 {
		t.Errorf("recorder saw %d validations, want 1 (second is cached)", len(rec.reports))
	}
	if rec.hits != 1 || rec.misses != 1 {
		t.Errorf("cache lookups: hits = %d, misses = %d, want 1 and 1", rec.hits, rec.misses)
	}
	if again != first {
		t.Error("unchanged content at the same path should return the cached report")
	}
	if first.Digest != Digest([]byte(duplicateDoc)) {
		t.Error("digest mismatch")
	}

	// Identical content under another path is validated again so every
	// location names that path.
	other := v.Validate(ctx, duplicateDoc, "two.json")
	if len(rec.reports) != 2 || cache.Len() != 2 {
		t.Errorf("recorded = %d, cache.Len() = %d, want 2 and 2", len(rec.reports), cache.Len())
	}
	if other.FilePath != "two.json" || other.Model.SourceFile != "two.json" {
		t.Errorf("paths = %q, %q, want two.json", other.FilePath, other.Model.SourceFile)
	}
	for _, e := range other.Model.Evaluations {
		if e.Location.File != "two.json" {
			t.Errorf("evaluation %s located in %q, want two.json", e.Name, e.Location.File)
		}
	}

	v.Validate(ctx, brokenDoc, "a.json")
	broken := v.Validate(ctx, brokenDoc, "b.json")
	if broken.ParserError == nil || broken.ParserError.Location.File != "b.json" {
		t.Errorf("parser error = %+v, want location in b.json", broken.ParserError)
	}

	cache.Purge()
	v.Validate(ctx, validDoc, "three.json")
	if cache.Len() != 1 || len(rec.reports) != 5 {
		t.Errorf("after purge: cache.Len() = %d, recorded = %d", cache.Len(), len(rec.reports))
	}
}
