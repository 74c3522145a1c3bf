package history

import (
	"errors"
	"testing"
	"time"

	"loci-hq/lrol/pkg/lrol/ast"
	lerrors "loci-hq/lrol/pkg/lrol/errors"
	"loci-hq/lrol/pkg/lrol/validator"
)

func TestRunComplete(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	run := NewRun("rules/", "abc123", start)
	if run.ID == "" {
		t.Fatal("NewRun() must assign an ID")
	}

	validReport := &validator.Report{
		FilePath: "rules/a.json",
		Model:    &ast.Model{ModelID: "kyc"},
		Digest:   "d1",
	}
	invalidReport := &validator.Report{
		FilePath: "rules/b.json",
		Model:    &ast.Model{ModelID: "aml"},
		AnalyzerErrors: []*lerrors.AnalyzerError{
			lerrors.NewDuplicateEvaluationName("check"),
		},
	}
	parseFailure := &validator.Report{
		FilePath:    "rules/c.json",
		ParserError: lerrors.NewMissingField("model_id", ast.Location{Line: 1, Column: 1}),
	}

	results := []validator.FileResult{
		{Path: "rules/a.json", Report: validReport},
		{Path: "rules/b.json", Report: invalidReport, Err: &validator.FileValidationError{
			Kind: validator.ValidationErrors, Path: "rules/b.json", Report: invalidReport,
		}},
		{Path: "rules/c.json", Report: parseFailure, Err: &validator.FileValidationError{
			Kind: validator.ValidationErrors, Path: "rules/c.json", Report: parseFailure,
		}},
		{Path: "rules/d.json", Err: &validator.FileValidationError{
			Kind: validator.FileReadError, Path: "rules/d.json", Err: errors.New("permission denied"),
		}},
	}

	stored := run.Complete(results, start.Add(2*time.Second))

	if run.Duration != 2*time.Second {
		t.Errorf("Duration = %v, want 2s", run.Duration)
	}
	if run.Files != 4 || run.Valid != 1 || run.Invalid != 3 {
		t.Errorf("counts = %d/%d/%d, want 4/1/3", run.Files, run.Valid, run.Invalid)
	}
	if len(stored) != 4 {
		t.Fatalf("Complete() returned %d results, want 4", len(stored))
	}

	a, b, c, d := stored[0], stored[1], stored[2], stored[3]
	if !a.Valid || a.ModelID != "kyc" || a.Digest != "d1" || a.RunID != run.ID {
		t.Errorf("a = %+v", a)
	}
	if b.Valid || b.Error != "" {
		t.Errorf("b: Valid = %v, Error = %q; diagnostics must not populate Error", b.Valid, b.Error)
	}
	if len(b.AnalyzerErrors) != 1 || b.AnalyzerErrors[0] != "Duplicate evaluation name: check" {
		t.Errorf("b.AnalyzerErrors = %v", b.AnalyzerErrors)
	}
	if c.ParserError != "Missing required field: model_id" {
		t.Errorf("c.ParserError = %q", c.ParserError)
	}
	if d.Valid || d.Error == "" {
		t.Errorf("d: Valid = %v, Error = %q; read failures must populate Error", d.Valid, d.Error)
	}
}

func TestNewRunUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewRun("x", "", time.Now()).ID
		if seen[id] {
			t.Fatalf("duplicate run ID %s", id)
		}
		seen[id] = true
	}
}
