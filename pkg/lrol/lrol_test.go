package lrol

import (
	"errors"
	"testing"

	lerrors "loci-hq/lrol/pkg/lrol/errors"
)

const testFile = "parser/testdata/valid/high_risk.json"

func TestParseAndValidate(t *testing.T) {
	model, err := ParseAndValidate(testFile)
	if err != nil {
		t.Fatalf("ParseAndValidate() failed: %v", err)
	}

	if model.ModelID != "M501" {
		t.Errorf("ModelID = %q, want %q", model.ModelID, "M501")
	}
	if len(model.Evaluations) != 4 {
		t.Errorf("len(Evaluations) = %d, want 4", len(model.Evaluations))
	}
}

func TestParseAndValidateBytes(t *testing.T) {
	doc := []byte(`{
  "model_id": "m1",
  "name": "Tiny",
  "threshold": 0.5,
  "evaluations": [
    {"name": "big", "type": "comparison", "left": "amount", "operator": ">", "right": 100, "weight": 2}
  ],
  "actions": [{"type": "send_alert", "reason": "big"}]
}`)

	model, err := ParseAndValidateBytes(doc, "memory://tiny")
	if err != nil {
		t.Fatalf("ParseAndValidateBytes() failed: %v", err)
	}
	if model.SourceFile != "memory://tiny" {
		t.Errorf("SourceFile = %q", model.SourceFile)
	}
}

func TestParseAndValidateBytes_AnalyzerErrors(t *testing.T) {
	doc := []byte(`{
  "model_id": "m1",
  "name": "Broken",
  "threshold": 1.5,
  "evaluations": [
    {"name": "a", "type": "logical", "operator": "AND", "operands": ["a"]}
  ],
  "actions": []
}`)

	_, err := ParseAndValidateBytes(doc, "memory://broken")
	var list *lerrors.AnalyzerErrorList
	if !errors.As(err, &list) {
		t.Fatalf("error = %v, want *AnalyzerErrorList", err)
	}
	if !list.HasKind(lerrors.KindInvalidThreshold) {
		t.Errorf("missing InvalidThreshold in %v", list)
	}
	if !list.HasKind(lerrors.KindCircularDependency) {
		t.Errorf("missing CircularDependency in %v", list)
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse("parser/testdata/invalid/missing_comma.json")
	var perr *lerrors.ParserError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParserError", err)
	}
	if perr.Location.Line != 8 {
		t.Errorf("Line = %d, want 8", perr.Location.Line)
	}
}

func BenchmarkParseAndValidate(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := ParseAndValidate(testFile); err != nil {
			b.Fatal(err)
		}
	}
}
