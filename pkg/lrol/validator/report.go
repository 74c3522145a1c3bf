package validator

import (
	"fmt"
	"strings"

	"loci-hq/lrol/pkg/lrol/analyzer"
	"loci-hq/lrol/pkg/lrol/ast"
	lerrors "loci-hq/lrol/pkg/lrol/errors"
)

// Report is the validation outcome for one document.
type Report struct {
	FilePath       string                   `json:"file_path,omitempty"`
	Model          *ast.Model               `json:"model,omitempty"`
	ParserError    *lerrors.ParserError     `json:"parser_error,omitempty"`
	AnalyzerErrors []*lerrors.AnalyzerError `json:"analyzer_errors"`

	// Graph is the dependency graph of Model; nil when parsing failed.
	Graph analyzer.Graph `json:"-"`
	// Digest is the SHA-256 of the validated content, hex encoded.
	Digest string `json:"digest,omitempty"`
}

// IsValid reports whether the document parsed and passed analysis.
func (r *Report) IsValid() bool {
	return r.ParserError == nil && len(r.AnalyzerErrors) == 0
}

// ErrorCount returns the total number of diagnostics.
func (r *Report) ErrorCount() int {
	n := len(r.AnalyzerErrors)
	if r.ParserError != nil {
		n++
	}
	return n
}

// Messages returns one line per diagnostic, parser error first.
func (r *Report) Messages() []string {
	msgs := make([]string, 0, r.ErrorCount())
	if r.ParserError != nil {
		msgs = append(msgs, r.ParserError.Error())
	}
	for _, e := range r.AnalyzerErrors {
		msgs = append(msgs, e.Error())
	}
	return msgs
}

// FormatErrors renders the report for humans:
//
//	File: rules/a.json
//	Parser Error: Syntax error at line 3, column 5: ...
//	Analyzer Errors:
//	1. Duplicate evaluation name: a
//
// A report without diagnostics ends with "No validation errors found.".
func (r *Report) FormatErrors() string {
	var sb strings.Builder

	if r.FilePath != "" {
		sb.WriteString(fmt.Sprintf("File: %s\n", r.FilePath))
	}
	if r.ParserError != nil {
		sb.WriteString(fmt.Sprintf("Parser Error: %s\n", r.ParserError.Error()))
	}
	if len(r.AnalyzerErrors) > 0 {
		sb.WriteString("Analyzer Errors:\n")
		for i, e := range r.AnalyzerErrors {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, e.Error()))
		}
	}
	if r.IsValid() {
		sb.WriteString("No validation errors found.")
	}

	return sb.String()
}
