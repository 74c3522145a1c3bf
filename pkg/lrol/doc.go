// Package lrol parses and validates documents written in the LROL rule
// language.
//
// An LROL document is a JSON object describing a risk model: a threshold, a
// list of named evaluations that compare fields or combine other evaluations,
// and the actions to take when the threshold is met.
//
// # Architecture
//
// The package is organized into subpackages:
//
// - ast: the document model and generic values with source locations
// - parser: position-tracking recursive descent over the JSON text
// - analyzer: semantic checks and the evaluation dependency graph
// - expr: @reference extraction and datetime() expressions
// - validator: parse plus analyze, for single files and directories
// - insights: quality reports (complexity, warnings, suggestions)
// - errors: parser and analyzer error types
//
// # Basic Usage
//
//	model, err := lrol.ParseAndValidate("rules/high_risk.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Model:", model.ModelID, "evaluations:", len(model.Evaluations))
//
// Parse errors stop at the first problem and carry a line and column.
// Analyzer errors are collected; Analyze returns them all as an
// *errors.AnalyzerErrorList.
package lrol
