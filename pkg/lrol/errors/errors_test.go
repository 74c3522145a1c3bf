package errors

import (
	"strings"
	"testing"

	"loci-hq/lrol/pkg/lrol/ast"
)

func TestParserErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  *ParserError
		want string
	}{
		{
			name: "syntax",
			err:  NewSyntaxError(ast.Location{Line: 3, Column: 7}, "Expected ':'"),
			want: "Syntax error at line 3, column 7: Expected ':'",
		},
		{
			name: "missing field",
			err:  NewMissingField("left", ast.Location{Line: 1, Column: 1}),
			want: "Missing required field: left",
		},
		{
			name: "invalid value",
			err:  NewInvalidValue("threshold", "number", "string", ast.Location{}),
			want: "Invalid value for field threshold: expected number, found string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnalyzerErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  *AnalyzerError
		want string
	}{
		{"duplicate", NewDuplicateEvaluationName("eval1"), "Duplicate evaluation name: eval1"},
		{"missing operand", NewMissingOperandReference("e", "x"), "Missing operand reference in e: x"},
		{"cycle", NewCircularDependency("a", []string{"a", "b"}), "Circular dependency detected in a: a -> b"},
		{"datetime", NewInvalidDateTimeExpression("e", "left", "datetime(x)", "Invalid first argument"),
			"Invalid datetime in e (left): datetime(x) - Invalid first argument"},
		{"threshold", NewInvalidThreshold(1.5, "Threshold must be between 0 and 1"),
			"Invalid threshold 1.5: Threshold must be between 0 and 1"},
		{"schema", NewMissingRequiredSchemaField("model_id"), "Missing required schema field: model_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnalyzerErrorList(t *testing.T) {
	el := NewAnalyzerErrorList()
	if el.ToError() != nil {
		t.Fatal("empty list should convert to nil error")
	}

	el.Add(NewInvalidWeight("e", 9))
	el.Add(NewInvalidWeight("e", 9))
	el.Add(NewEmptyOperands("l"))

	if el.Count() != 3 {
		t.Errorf("Count() = %d, want 3", el.Count())
	}
	if !el.HasKind(KindEmptyOperands) {
		t.Error("expected EmptyOperands kind")
	}
	if got := len(el.ByKind(KindInvalidWeight)); got != 2 {
		t.Errorf("ByKind(InvalidWeight) = %d, want 2", got)
	}
	if counts := el.CountByKind(); counts[KindInvalidWeight] != 2 {
		t.Errorf("CountByKind()[InvalidWeight] = %d, want 2", counts[KindInvalidWeight])
	}
	if !strings.HasPrefix(el.Error(), "Found 3 error(s):") {
		t.Errorf("unexpected Error(): %q", el.Error())
	}
}

func TestExtractContext(t *testing.T) {
	source := "{\n  \"a\": 1,\n  \"b\" 2\n}"
	ctx := ExtractContext(source, ast.Location{Line: 3, Column: 7}, 1)

	if !strings.Contains(ctx, "-> 3 |   \"b\" 2") {
		t.Errorf("context missing error line:\n%s", ctx)
	}
	if !strings.Contains(ctx, "      ^") {
		t.Errorf("context missing caret:\n%s", ctx)
	}
	if ExtractContext(source, ast.Location{}, 1) != "" {
		t.Error("unknown location should yield empty context")
	}
}

func TestSuggestName(t *testing.T) {
	candidates := []string{"high_amount", "new_account", "risky_country"}

	if got := SuggestName("hgh_amount", candidates); got != "Did you mean 'high_amount'?" {
		t.Errorf("SuggestName() = %q", got)
	}
	if got := SuggestName("zzzzzzzzzz", candidates); got != "" {
		t.Errorf("SuggestName() = %q, want empty", got)
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"AND", "AND", 0},
	}
	for _, tt := range tests {
		if got := levenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
