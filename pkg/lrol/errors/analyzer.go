package errors

import (
	"fmt"
	"strings"
)

// Kind identifies an analyzer error variant.
type Kind string

const (
	KindDuplicateEvaluationName    Kind = "DuplicateEvaluationName"
	KindMissingOperandReference    Kind = "MissingOperandReference"
	KindCircularDependency         Kind = "CircularDependency"
	KindInvalidWeight              Kind = "InvalidWeight"
	KindMissingRequiredField       Kind = "MissingRequiredField"
	KindInvalidLogicalOperator     Kind = "InvalidLogicalOperator"
	KindEmptyOperands              Kind = "EmptyOperands"
	KindInvalidStringReference     Kind = "InvalidStringReference"
	KindInvalidDateTimeExpression  Kind = "InvalidDateTimeExpression"
	KindInvalidThreshold           Kind = "InvalidThreshold"
	KindInvalidEvaluationType      Kind = "InvalidEvaluationType"
	KindInvalidComparisonOperator  Kind = "InvalidComparisonOperator"
	KindInvalidAggregationType     Kind = "InvalidAggregationType"
	KindInvalidWeightRange         Kind = "InvalidWeightRange"
	KindInvalidActionType          Kind = "InvalidActionType"
	KindMissingActionReason        Kind = "MissingActionReason"
	KindInvalidMetadataFormat      Kind = "InvalidMetadataFormat"
	KindMissingRequiredSchemaField Kind = "MissingRequiredSchemaField"
)

// AnalyzerError is a single semantic diagnostic. Which fields are set depends on Kind.
type AnalyzerError struct {
	Kind       Kind     `json:"kind"`
	Evaluation string   `json:"evaluation,omitempty"`  // Evaluation the error belongs to
	Field      string   `json:"field,omitempty"`       // Evaluation, schema, or metadata field name
	Reference  string   `json:"reference,omitempty"`   // Unresolved operand or @reference
	Operator   string   `json:"operator,omitempty"`    // Rejected operator
	Found      string   `json:"found,omitempty"`       // Rejected evaluation type or aggregation kind
	ActionType string   `json:"action_type,omitempty"` // Action the error belongs to
	Expression string   `json:"expression,omitempty"`  // Rejected datetime or duration text
	Reason     string   `json:"reason,omitempty"`
	Weight     *int     `json:"weight,omitempty"`
	Threshold  *float64 `json:"threshold,omitempty"`
	Chain      []string `json:"chain,omitempty"` // Circular dependency chain in traversal order

	Suggestion string `json:"suggestion,omitempty"`
}

// Error returns a one-line description of the error.
func (e *AnalyzerError) Error() string {
	switch e.Kind {
	case KindDuplicateEvaluationName:
		return fmt.Sprintf("Duplicate evaluation name: %s", e.Evaluation)
	case KindMissingOperandReference:
		return fmt.Sprintf("Missing operand reference in %s: %s", e.Evaluation, e.Reference)
	case KindCircularDependency:
		return fmt.Sprintf("Circular dependency detected in %s: %s", e.Evaluation, strings.Join(e.Chain, " -> "))
	case KindInvalidWeight:
		return fmt.Sprintf("Invalid weight %d in %s: must be between 1 and 5", derefInt(e.Weight), e.Evaluation)
	case KindMissingRequiredField:
		return fmt.Sprintf("Missing required field '%s' in %s", e.Field, e.Evaluation)
	case KindInvalidLogicalOperator:
		return fmt.Sprintf("Invalid logical operator '%s' in %s", e.Operator, e.Evaluation)
	case KindEmptyOperands:
		return fmt.Sprintf("Empty operands in %s", e.Evaluation)
	case KindInvalidStringReference:
		return fmt.Sprintf("Invalid reference '@%s' in %s (%s)", e.Reference, e.Evaluation, e.Field)
	case KindInvalidDateTimeExpression:
		return fmt.Sprintf("Invalid datetime in %s (%s): %s - %s", e.Evaluation, e.Field, e.Expression, e.Reason)
	case KindInvalidThreshold:
		return fmt.Sprintf("Invalid threshold %v: %s", derefFloat(e.Threshold), e.Reason)
	case KindInvalidEvaluationType:
		return fmt.Sprintf("Invalid evaluation type '%s' in %s", e.Found, e.Evaluation)
	case KindInvalidComparisonOperator:
		return fmt.Sprintf("Invalid comparison operator '%s' in %s", e.Operator, e.Evaluation)
	case KindInvalidAggregationType:
		return fmt.Sprintf("Invalid aggregation type '%s' in %s", e.Found, e.Evaluation)
	case KindInvalidWeightRange:
		return fmt.Sprintf("Weight %d out of range in %s: must be between 1 and 5", derefInt(e.Weight), e.Evaluation)
	case KindInvalidActionType:
		return fmt.Sprintf("Invalid action type '%s'", e.ActionType)
	case KindMissingActionReason:
		return fmt.Sprintf("Missing reason for action '%s'", e.ActionType)
	case KindInvalidMetadataFormat:
		return fmt.Sprintf("Invalid metadata field %s: %s", e.Field, e.Reason)
	case KindMissingRequiredSchemaField:
		return fmt.Sprintf("Missing required schema field: %s", e.Field)
	}
	return string(e.Kind)
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefFloat(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// NewDuplicateEvaluationName reports a repeated evaluation name.
func NewDuplicateEvaluationName(name string) *AnalyzerError {
	return &AnalyzerError{Kind: KindDuplicateEvaluationName, Evaluation: name}
}

// NewMissingOperandReference reports an operand that names no evaluation.
func NewMissingOperandReference(evaluation, operand string) *AnalyzerError {
	return &AnalyzerError{Kind: KindMissingOperandReference, Evaluation: evaluation, Reference: operand}
}

// NewCircularDependency reports a dependency cycle found starting at evaluation.
func NewCircularDependency(evaluation string, chain []string) *AnalyzerError {
	return &AnalyzerError{Kind: KindCircularDependency, Evaluation: evaluation, Chain: chain}
}

// NewInvalidWeight reports a weight outside [1,5] found by the structural pass.
func NewInvalidWeight(evaluation string, weight int) *AnalyzerError {
	return &AnalyzerError{Kind: KindInvalidWeight, Evaluation: evaluation, Weight: &weight}
}

// NewMissingRequiredField reports an absent type-specific evaluation field.
func NewMissingRequiredField(evaluation, field string) *AnalyzerError {
	return &AnalyzerError{Kind: KindMissingRequiredField, Evaluation: evaluation, Field: field}
}

// NewInvalidLogicalOperator reports a logical operator other than AND/OR.
func NewInvalidLogicalOperator(evaluation, operator string) *AnalyzerError {
	return &AnalyzerError{Kind: KindInvalidLogicalOperator, Evaluation: evaluation, Operator: operator}
}

// NewEmptyOperands reports a logical evaluation with an empty operand list.
func NewEmptyOperands(evaluation string) *AnalyzerError {
	return &AnalyzerError{Kind: KindEmptyOperands, Evaluation: evaluation}
}

// NewInvalidStringReference reports an @reference in a text field that names no evaluation.
func NewInvalidStringReference(evaluation, field, reference string) *AnalyzerError {
	return &AnalyzerError{Kind: KindInvalidStringReference, Evaluation: evaluation, Field: field, Reference: reference}
}

// NewInvalidDateTimeExpression reports a malformed datetime(...) expression.
func NewInvalidDateTimeExpression(evaluation, field, expression, reason string) *AnalyzerError {
	return &AnalyzerError{
		Kind:       KindInvalidDateTimeExpression,
		Evaluation: evaluation,
		Field:      field,
		Expression: expression,
		Reason:     reason,
	}
}

// NewInvalidThreshold reports a threshold outside [0,1].
func NewInvalidThreshold(value float64, reason string) *AnalyzerError {
	return &AnalyzerError{Kind: KindInvalidThreshold, Threshold: &value, Reason: reason}
}

// NewInvalidEvaluationType reports an evaluation type outside the vocabulary.
func NewInvalidEvaluationType(evaluation, found string) *AnalyzerError {
	return &AnalyzerError{Kind: KindInvalidEvaluationType, Evaluation: evaluation, Found: found}
}

// NewInvalidComparisonOperator reports a comparison operator outside the vocabulary.
func NewInvalidComparisonOperator(evaluation, operator string) *AnalyzerError {
	return &AnalyzerError{Kind: KindInvalidComparisonOperator, Evaluation: evaluation, Operator: operator}
}

// NewInvalidAggregationType reports an aggregation kind outside the vocabulary.
func NewInvalidAggregationType(evaluation, aggregation string) *AnalyzerError {
	return &AnalyzerError{Kind: KindInvalidAggregationType, Evaluation: evaluation, Found: aggregation}
}

// NewInvalidWeightRange reports a weight outside [1,5] found by the schema pass.
func NewInvalidWeightRange(evaluation string, weight int) *AnalyzerError {
	return &AnalyzerError{Kind: KindInvalidWeightRange, Evaluation: evaluation, Weight: &weight}
}

// NewInvalidActionType reports an action with a blank type.
func NewInvalidActionType(actionType string) *AnalyzerError {
	return &AnalyzerError{Kind: KindInvalidActionType, ActionType: actionType}
}

// NewMissingActionReason reports an action with a blank reason.
func NewMissingActionReason(actionType string) *AnalyzerError {
	return &AnalyzerError{Kind: KindMissingActionReason, ActionType: actionType}
}

// NewInvalidMetadataFormat reports a metadata field that failed format validation.
func NewInvalidMetadataFormat(field, reason string) *AnalyzerError {
	return &AnalyzerError{Kind: KindInvalidMetadataFormat, Field: field, Reason: reason}
}

// NewMissingRequiredSchemaField reports an empty required model field.
func NewMissingRequiredSchemaField(field string) *AnalyzerError {
	return &AnalyzerError{Kind: KindMissingRequiredSchemaField, Field: field}
}
