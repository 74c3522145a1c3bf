package ast

import "strings"

// EvaluationType classifies an evaluation.
type EvaluationType string

const (
	EvaluationComparison  EvaluationType = "comparison"
	EvaluationLogical     EvaluationType = "logical"
	EvaluationAggregation EvaluationType = "aggregation"
	EvaluationTimeBased   EvaluationType = "time-based"
	EvaluationConditional EvaluationType = "conditional"
)

// EvaluationTypes lists every evaluation type in declaration order.
var EvaluationTypes = []EvaluationType{
	EvaluationComparison,
	EvaluationLogical,
	EvaluationAggregation,
	EvaluationTimeBased,
	EvaluationConditional,
}

// ParseEvaluationType matches s case-insensitively against the evaluation types.
func ParseEvaluationType(s string) (EvaluationType, bool) {
	lower := EvaluationType(strings.ToLower(s))
	for _, t := range EvaluationTypes {
		if t == lower {
			return t, true
		}
	}
	return EvaluationType(s), false
}

// AggregationKind names the aggregate function of an aggregation evaluation.
type AggregationKind string

const (
	AggregationSum   AggregationKind = "sum"
	AggregationCount AggregationKind = "count"
	AggregationAvg   AggregationKind = "avg"
	AggregationMin   AggregationKind = "min"
	AggregationMax   AggregationKind = "max"
)

// AggregationKinds lists the built-in aggregation kinds.
var AggregationKinds = []AggregationKind{
	AggregationSum,
	AggregationCount,
	AggregationAvg,
	AggregationMin,
	AggregationMax,
}

// Model is the root node of a rule document.
type Model struct {
	ModelID     string        `json:"model_id"`
	Name        string        `json:"name"`
	Description *string       `json:"description,omitempty"`
	Threshold   float64       `json:"threshold"`
	Evaluations []*Evaluation `json:"evaluations"`
	Actions     []*Action     `json:"actions"`
	Metadata    *Metadata     `json:"metadata,omitempty"`

	// Source tracking
	SourceFile string   `json:"-"`
	Location   Location `json:"-"`
}

// GetEvaluation returns the first evaluation with the given name, or nil.
func (m *Model) GetEvaluation(name string) *Evaluation {
	for _, e := range m.Evaluations {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// HasEvaluation returns true if an evaluation with the given name exists.
func (m *Model) HasEvaluation(name string) bool {
	return m.GetEvaluation(name) != nil
}

// EvaluationNames returns evaluation names in declaration order, duplicates included.
func (m *Model) EvaluationNames() []string {
	names := make([]string, 0, len(m.Evaluations))
	for _, e := range m.Evaluations {
		names = append(names, e.Name)
	}
	return names
}

// Evaluation is a named comparison or composition unit.
type Evaluation struct {
	Name        string           `json:"name"`
	Type        EvaluationType   `json:"type"`
	Left        *string          `json:"left,omitempty"`
	Operator    *string          `json:"operator,omitempty"`
	Right       *Value           `json:"right,omitempty"`
	Operands    []string         `json:"operands,omitempty"` // nil when the field is absent
	Weight      *int             `json:"weight,omitempty"`
	Aggregation *AggregationKind `json:"aggregation,omitempty"`

	Location Location `json:"-"`
}

// TextField is a free-text field of an evaluation that may carry @references
// or datetime expressions.
type TextField struct {
	Name string // "left" or "right"
	Text string
}

// TextFields returns left and string-typed right, in that order, when present.
func (e *Evaluation) TextFields() []TextField {
	var fields []TextField
	if e.Left != nil {
		fields = append(fields, TextField{Name: "left", Text: *e.Left})
	}
	if s, ok := e.Right.AsString(); ok {
		fields = append(fields, TextField{Name: "right", Text: s})
	}
	return fields
}

// IsLogical returns true for logical evaluations.
func (e *Evaluation) IsLogical() bool {
	return e.Type == EvaluationLogical
}

// Action is an effect triggered when the model threshold is met.
type Action struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`

	Location Location `json:"-"`
}

// Metadata carries optional authoring information.
type Metadata struct {
	CreatedBy   *string `json:"created_by,omitempty"`
	CreatedAt   *string `json:"created_at,omitempty"`
	LastUpdated *string `json:"last_updated,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// Ptr returns a pointer to v. Useful for building optional fields.
func Ptr[T any](v T) *T {
	return &v
}
