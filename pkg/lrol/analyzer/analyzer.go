package analyzer

import (
	"sort"

	"loci-hq/lrol/pkg/lrol/ast"
	lerrors "loci-hq/lrol/pkg/lrol/errors"
	"loci-hq/lrol/pkg/lrol/expr"
)

// Analyzer runs the semantic passes over a model.
type Analyzer struct {
	vocab          Vocabulary
	dedupeWeight   bool
	parseTimestamp func(string) error
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithVocabulary replaces the default vocabulary.
func WithVocabulary(v Vocabulary) Option {
	return func(a *Analyzer) {
		a.vocab = v
	}
}

// WithDedupedWeightCheck makes the structural pass report an out-of-range
// weight once instead of twice. The schema pass still reports its own
// InvalidWeightRange.
func WithDedupedWeightCheck(dedupe bool) Option {
	return func(a *Analyzer) {
		a.dedupeWeight = dedupe
	}
}

// WithTimestampParser overrides how metadata timestamps are recognized.
// The function returns nil for an acceptable timestamp.
func WithTimestampParser(fn func(string) error) Option {
	return func(a *Analyzer) {
		a.parseTimestamp = fn
	}
}

// New creates an analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		vocab: DefaultVocabulary(),
		parseTimestamp: func(s string) error {
			_, err := expr.ParseTimestamp(s)
			return err
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Vocabulary returns the analyzer's vocabulary.
func (a *Analyzer) Vocabulary() Vocabulary {
	return a.vocab
}

// Result is the outcome of one Analyze call.
type Result struct {
	Errors *lerrors.AnalyzerErrorList
	Graph  Graph
}

// OK returns true if no errors were found.
func (r *Result) OK() bool {
	return !r.Errors.HasErrors()
}

// Err returns nil when analysis found nothing, otherwise the error list.
func (r *Result) Err() error {
	return r.Errors.ToError()
}

// run holds the working state of one Analyze call.
type run struct {
	*Analyzer
	model  *ast.Model
	errors *lerrors.AnalyzerErrorList
	names  map[string]bool
}

// Analyze validates model and returns every problem found.
func (a *Analyzer) Analyze(model *ast.Model) *Result {
	r := &run{
		Analyzer: a,
		model:    model,
		errors:   lerrors.NewAnalyzerErrorList(),
		names:    make(map[string]bool, len(model.Evaluations)),
	}

	r.checkSchema()
	r.checkUniqueness()
	for _, eval := range model.Evaluations {
		r.checkEvaluation(eval)
	}

	graph := BuildGraph(model)
	if start, chain, found := graph.FindCycle(); found {
		r.errors.Add(lerrors.NewCircularDependency(start, chain))
	}

	return &Result{Errors: r.errors, Graph: graph}
}

// checkUniqueness records every evaluation name and reports each repeat.
func (r *run) checkUniqueness() {
	for _, eval := range r.model.Evaluations {
		if r.names[eval.Name] {
			r.errors.Add(lerrors.NewDuplicateEvaluationName(eval.Name))
			continue
		}
		r.names[eval.Name] = true
	}
}

func (r *run) declaredNames() []string {
	names := make([]string, 0, len(r.names))
	for name := range r.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
