// Package insights produces a quality report for a parsed rule model.
//
// The report does not judge validity; that is the analyzer's job. It
// summarizes how a model is put together (evaluation counts, dependency
// depth, a complexity score) and flags patterns that tend to make rules hard
// to maintain.
//
//	report := insights.Analyze(model, "rules/high_risk.json")
//	for _, w := range report.Warnings {
//		fmt.Println(w.Severity, w.Message)
//	}
package insights
