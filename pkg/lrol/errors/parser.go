package errors

import (
	"fmt"
	"strings"

	"loci-hq/lrol/pkg/lrol/ast"
)

// ParserErrorKind categorizes a parser error.
type ParserErrorKind string

const (
	InvalidSyntax ParserErrorKind = "invalid_syntax" // Malformed input at a position
	MissingField  ParserErrorKind = "missing_field"  // Required field absent from an object
	InvalidValue  ParserErrorKind = "invalid_value"  // Field present with the wrong value variant
)

// ParserError is the single fatal diagnostic of a failed parse.
type ParserError struct {
	Kind     ParserErrorKind `json:"kind"`
	Location ast.Location    `json:"location"`

	Message  string `json:"message,omitempty"`  // InvalidSyntax
	Field    string `json:"field,omitempty"`    // MissingField, InvalidValue
	Expected string `json:"expected,omitempty"` // InvalidValue
	Found    string `json:"found,omitempty"`    // InvalidValue

	Context    string `json:"-"`                    // Surrounding source lines (optional)
	Suggestion string `json:"suggestion,omitempty"` // Suggested fix (optional)
}

// NewSyntaxError creates an InvalidSyntax error at the given location.
func NewSyntaxError(loc ast.Location, message string) *ParserError {
	return &ParserError{Kind: InvalidSyntax, Location: loc, Message: message}
}

// NewMissingField creates a MissingField error for an object starting at loc.
func NewMissingField(field string, loc ast.Location) *ParserError {
	return &ParserError{Kind: MissingField, Location: loc, Field: field}
}

// NewInvalidValue creates an InvalidValue error for a field value at loc.
func NewInvalidValue(field, expected, found string, loc ast.Location) *ParserError {
	return &ParserError{Kind: InvalidValue, Location: loc, Field: field, Expected: expected, Found: found}
}

// Error returns the one-line diagnostic.
func (e *ParserError) Error() string {
	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("Missing required field: %s", e.Field)
	case InvalidValue:
		return fmt.Sprintf("Invalid value for field %s: expected %s, found %s", e.Field, e.Expected, e.Found)
	default:
		return fmt.Sprintf("Syntax error at line %d, column %d: %s", e.Location.Line, e.Location.Column, e.Message)
	}
}

// Detailed returns the diagnostic with location, source context, and suggestion.
func (e *ParserError) Detailed() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s\n", e.Kind, e.Error()))

	if e.Location.IsValid() {
		sb.WriteString(fmt.Sprintf("  --> %s\n", e.Location.String()))
	}

	if e.Context != "" {
		sb.WriteString("  |\n")
		sb.WriteString(e.Context)
		sb.WriteString("  |\n")
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  = suggestion: %s\n", e.Suggestion))
	}

	return sb.String()
}
