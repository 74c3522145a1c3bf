package errors

import (
	"fmt"
	"strings"
)

// AnalyzerErrorList accumulates analyzer errors across all passes.
type AnalyzerErrorList struct {
	Errors []*AnalyzerError
}

// NewAnalyzerErrorList creates a new empty error list.
func NewAnalyzerErrorList() *AnalyzerErrorList {
	return &AnalyzerErrorList{
		Errors: make([]*AnalyzerError, 0),
	}
}

// Add appends an error to the list.
func (el *AnalyzerErrorList) Add(err *AnalyzerError) {
	el.Errors = append(el.Errors, err)
}

// HasErrors returns true if the list contains any errors.
func (el *AnalyzerErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *AnalyzerErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
func (el *AnalyzerErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n", el.Count()))
	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ToError returns nil if the list is empty, otherwise the list itself.
func (el *AnalyzerErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByKind returns all errors of the given kind.
func (el *AnalyzerErrorList) ByKind(kind Kind) []*AnalyzerError {
	var result []*AnalyzerError
	for _, err := range el.Errors {
		if err.Kind == kind {
			result = append(result, err)
		}
	}
	return result
}

// HasKind returns true if the list contains at least one error of the given kind.
func (el *AnalyzerErrorList) HasKind(kind Kind) bool {
	for _, err := range el.Errors {
		if err.Kind == kind {
			return true
		}
	}
	return false
}

// CountByKind returns the number of errors per kind.
func (el *AnalyzerErrorList) CountByKind() map[Kind]int {
	counts := make(map[Kind]int)
	for _, err := range el.Errors {
		counts[err.Kind]++
	}
	return counts
}
