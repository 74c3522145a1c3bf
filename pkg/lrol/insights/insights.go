package insights

import (
	"fmt"
	"slices"
	"strings"

	"loci-hq/lrol/pkg/lrol/analyzer"
	"loci-hq/lrol/pkg/lrol/ast"
	"loci-hq/lrol/pkg/lrol/expr"
)

// Severity ranks a warning.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Category groups warnings by concern.
type Category string

const (
	CategoryComplexity      Category = "complexity"
	CategoryPerformance     Category = "performance"
	CategoryMaintainability Category = "maintainability"
	CategoryBestPractice    Category = "best_practice"
)

// Score weights and thresholds.
const (
	evaluationScore = 1.0
	operandScore    = 0.5
	referenceScore  = 0.3
	dateTimeScore   = 0.5

	MaxEvaluations    = 10
	MaxChainDepth     = 3
	HeavyWeightCutoff = 4
)

// DefaultRecommendedActions are the action types the tooling expects.
var DefaultRecommendedActions = []string{"flag_transaction", "block_transaction", "send_alert"}

const (
	msgManyEvaluations = "High number of evaluations may impact maintainability"
	msgDeepChain       = "Deep dependency chain detected"
	msgAddDescription  = "Consider adding a description to improve rule documentation"
	msgNormalizeWeight = "Consider normalizing evaluation weights to improve rule balance"
)

// Report is the result of analyzing one model.
type Report struct {
	FilePath    string    `json:"file_path"`
	Summary     Summary   `json:"summary"`
	Details     Details   `json:"details"`
	Warnings    []Warning `json:"warnings"`
	Suggestions []string  `json:"suggestions"`
}

// Summary holds the headline numbers of a report.
type Summary struct {
	TotalEvaluations   int            `json:"total_evaluations"`
	EvaluationTypes    map[string]int `json:"evaluation_types"`
	MaxEvaluationDepth int            `json:"max_evaluation_depth"`
	DependencyCount    int            `json:"dependency_count"`
	ComplexityScore    float64        `json:"complexity_score"`
}

// Details holds per-evaluation data behind the summary.
type Details struct {
	EvaluationDependencies map[string][]string `json:"evaluation_dependencies"`
	DateTimeExpressions    []string            `json:"datetime_expressions"`
	ReferenceChains        [][]string          `json:"reference_chains"`
	LongestChain           []string            `json:"longest_chain,omitempty"`
	EvaluationWeights      map[string]int      `json:"evaluation_weights"`
}

// Warning is a maintainability finding.
type Warning struct {
	Severity Severity `json:"severity"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
	Context  string   `json:"context"`
}

// Option configures Analyze.
type Option func(*options)

type options struct {
	recommendedActions []string
}

// WithRecommendedActions replaces the recommended action types. An empty
// list keeps the defaults.
func WithRecommendedActions(actions ...string) Option {
	return func(o *options) {
		if len(actions) > 0 {
			o.recommendedActions = slices.Clone(actions)
		}
	}
}

// Analyze builds the insight report for model. path is copied into the
// report as is.
func Analyze(model *ast.Model, path string, opts ...Option) *Report {
	o := options{recommendedActions: DefaultRecommendedActions}
	for _, opt := range opts {
		opt(&o)
	}

	report := &Report{
		FilePath: path,
		Summary: Summary{
			TotalEvaluations: len(model.Evaluations),
			EvaluationTypes:  make(map[string]int),
		},
		Details: Details{
			EvaluationDependencies: make(map[string][]string),
			DateTimeExpressions:    []string{},
			ReferenceChains:        [][]string{},
			EvaluationWeights:      make(map[string]int),
		},
		Warnings:    []Warning{},
		Suggestions: []string{},
	}

	for _, eval := range model.Evaluations {
		report.Summary.EvaluationTypes[string(eval.Type)]++

		if eval.Weight != nil {
			report.Details.EvaluationWeights[eval.Name] = *eval.Weight
		}
		if deps := analyzer.Dependencies(eval); len(deps) > 0 {
			report.Details.EvaluationDependencies[eval.Name] = deps
			report.Summary.DependencyCount++
		}
		if refs := textReferences(eval); len(refs) > 0 {
			report.Details.ReferenceChains = append(report.Details.ReferenceChains, append([]string{eval.Name}, refs...))
		}
		if dt, ok := findDateTime(eval); ok {
			report.Details.DateTimeExpressions = append(report.Details.DateTimeExpressions, dt)
		}
	}

	chain := analyzer.BuildGraph(model).LongestChain()
	report.Summary.MaxEvaluationDepth = len(chain)
	if len(chain) > 1 {
		report.Details.LongestChain = chain
	}
	report.Summary.ComplexityScore = ComplexityScore(model)

	report.Warnings = warnings(model, chain, o.recommendedActions)
	report.Suggestions = suggestions(model)
	return report
}

// ComplexityScore rates how much a reader must keep in mind to follow model.
// Each evaluation counts 1, each operand 0.5, each @reference in left or a
// string right 0.3, and each evaluation holding a datetime expression 0.5.
func ComplexityScore(model *ast.Model) float64 {
	score := float64(len(model.Evaluations)) * evaluationScore
	for _, eval := range model.Evaluations {
		score += float64(len(eval.Operands)) * operandScore
		score += float64(len(textReferences(eval))) * referenceScore
		if _, ok := findDateTime(eval); ok {
			score += dateTimeScore
		}
	}
	return score
}

// HasWarnings returns true if the report carries at least one warning.
func (r *Report) HasWarnings() bool {
	return len(r.Warnings) > 0
}

func textReferences(eval *ast.Evaluation) []string {
	var refs []string
	for _, f := range eval.TextFields() {
		refs = append(refs, expr.ExtractReferences(f.Text)...)
	}
	return refs
}

// findDateTime returns the first of left and string right that is a
// datetime expression.
func findDateTime(eval *ast.Evaluation) (string, bool) {
	for _, f := range eval.TextFields() {
		if expr.IsDateTimeExpression(f.Text) {
			return f.Text, true
		}
	}
	return "", false
}

func warnings(model *ast.Model, chain []string, recommended []string) []Warning {
	out := []Warning{}

	if n := len(model.Evaluations); n > MaxEvaluations {
		out = append(out, Warning{
			Severity: SeverityMedium,
			Category: CategoryComplexity,
			Message:  msgManyEvaluations,
			Context:  fmt.Sprintf("Total evaluations: %d", n),
		})
	}

	for _, action := range model.Actions {
		if slices.Contains(recommended, action.Type) {
			continue
		}
		out = append(out, Warning{
			Severity: SeverityMedium,
			Category: CategoryBestPractice,
			Message:  recommendedActionsMessage(recommended),
			Context:  fmt.Sprintf("Action type: '%s'", action.Type),
		})
	}

	if len(chain) > MaxChainDepth {
		out = append(out, Warning{
			Severity: SeverityMedium,
			Category: CategoryPerformance,
			Message:  msgDeepChain,
			Context:  "Longest chain: " + strings.Join(chain, " → "),
		})
	}
	return out
}

func recommendedActionsMessage(recommended []string) string {
	quoted := make([]string, len(recommended))
	for i, a := range recommended {
		quoted[i] = "'" + a + "'"
	}
	list := quoted[0]
	if n := len(quoted); n > 1 {
		list = strings.Join(quoted[:n-1], ", ") + " or " + quoted[n-1]
	}
	return "User defined action types are accepted, but we recommend one of the following action types: " + list
}

func suggestions(model *ast.Model) []string {
	out := []string{}
	if model.Description == nil {
		out = append(out, msgAddDescription)
	}
	for _, eval := range model.Evaluations {
		if eval.Weight != nil && *eval.Weight >= HeavyWeightCutoff {
			out = append(out, msgNormalizeWeight)
			break
		}
	}
	return out
}
