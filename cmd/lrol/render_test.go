package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"loci-hq/lrol/pkg/cli"
	"loci-hq/lrol/pkg/lrol/ast"
	lerrors "loci-hq/lrol/pkg/lrol/errors"
	"loci-hq/lrol/pkg/lrol/insights"
	"loci-hq/lrol/pkg/lrol/validator"
)

func TestPrintBatchResults(t *testing.T) {
	var buf bytes.Buffer
	s := cli.NewStyles(&buf)

	results := []validator.FileResult{
		{Path: "rules/a.json", Report: &validator.Report{FilePath: "rules/a.json"}},
		{
			Path:   "rules/b.json",
			Report: &validator.Report{FilePath: "rules/b.json", ParserError: lerrors.NewMissingField("model_id", ast.Location{Line: 1, Column: 1})},
			Err:    errors.New("validation failed"),
		},
		{Path: "rules/c.json", Err: errors.New("permission denied")},
	}

	invalid := printBatchResults(&buf, s, results, false)
	if invalid != 2 {
		t.Errorf("invalid = %d, want 2", invalid)
	}

	out := buf.String()
	for _, want := range []string{
		"✓ rules/a.json",
		"✗ rules/b.json",
		"Missing required field: model_id",
		"✗ rules/c.json",
		"permission denied",
		"3 file(s) checked: 1 valid, 2 invalid",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintInsights(t *testing.T) {
	report := &insights.Report{
		Summary: insights.Summary{
			TotalEvaluations: 2,
			EvaluationTypes:  map[string]int{"comparison": 1, "logical": 1},
			DependencyCount:  1,
			ComplexityScore:  1.5,
		},
		Details: insights.Details{
			EvaluationDependencies: map[string][]string{"both": {"a", "b"}},
		},
		Warnings: []insights.Warning{
			{Severity: insights.SeverityMedium, Category: insights.CategoryBestPractice, Message: "unusual action", Context: "notify"},
		},
		Suggestions: []string{"Consider adding a description to improve rule documentation"},
	}

	tests := []struct {
		name    string
		verbose bool
		want    []string
		absent  []string
	}{
		{
			name:   "summary",
			want:   []string{"Analysis Summary:", "Total Evaluations: 2", "logical: 1", "Complexity Score: 1.50", "unusual action", "• Consider adding a description"},
			absent: []string{"Detailed Analysis:", "Context: notify"},
		},
		{
			name:    "verbose",
			verbose: true,
			want:    []string{"Detailed Analysis:", "both → a, b", "Context: notify"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printInsights(&buf, cli.NewStyles(&buf), report, tt.verbose)
			out := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, absent := range tt.absent {
				if strings.Contains(out, absent) {
					t.Errorf("output should not contain %q:\n%s", absent, out)
				}
			}
		})
	}
}
