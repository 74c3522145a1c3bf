// Package ast provides the document tree for the Loci Risk Orchestration
// Language (LROL).
//
// A rule document is a restricted JSON object describing a risk model: an
// identifier, a decision threshold, a list of named evaluations, and the
// actions to take once the threshold is met. The parser builds these types;
// the analyzer only reads them.
//
// # Core Types
//
// Model: Root node with model_id, name, threshold, evaluations, actions, metadata
//
// Evaluation: Named comparison, logical, aggregation, time-based, or conditional unit
//
// Action: Remediation or notification effect (type + reason)
//
// Value: Tagged union over string, number, bool, array, and object literals
//
// Location: Source location (file, line, column)
//
// # Basic Usage
//
//	model, err := parser.NewParser().Parse("rules/high_value.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, eval := range model.Evaluations {
//	    fmt.Println(eval.Name, eval.Type, eval.Dependencies())
//	}
package ast
