package analyzer

import (
	"strings"

	"loci-hq/lrol/pkg/lrol/ast"
)

// Default vocabularies.
var (
	DefaultComparisonOperators = []string{">", "<", ">=", "<=", "==", "!=", "IN", "NOT IN", "LIKE", "NOT LIKE"}
	DefaultLogicalOperators    = []string{"AND", "OR"}
)

// Vocabulary is the set of words the analyzer accepts for evaluation types,
// operators and aggregation kinds. The zero value is not usable; start from
// DefaultVocabulary. Vocabulary values are never mutated after construction.
type Vocabulary struct {
	evaluationTypes     []string
	comparisonOperators []string
	logicalOperators    []string
	aggregationKinds    []string

	evaluationTypeSet     map[string]bool
	comparisonOperatorSet map[string]bool
	logicalOperatorSet    map[string]bool
	aggregationKindSet    map[string]bool
}

// DefaultVocabulary returns the built-in vocabulary.
func DefaultVocabulary() Vocabulary {
	types := make([]string, len(ast.EvaluationTypes))
	for i, t := range ast.EvaluationTypes {
		types[i] = string(t)
	}
	kinds := make([]string, len(ast.AggregationKinds))
	for i, k := range ast.AggregationKinds {
		kinds[i] = string(k)
	}
	return newVocabulary(types, DefaultComparisonOperators, DefaultLogicalOperators, kinds)
}

func newVocabulary(types, comparison, logical, aggregation []string) Vocabulary {
	return Vocabulary{
		evaluationTypes:       clone(types),
		comparisonOperators:   clone(comparison),
		logicalOperators:      clone(logical),
		aggregationKinds:      clone(aggregation),
		evaluationTypeSet:     toSet(types, strings.ToLower),
		comparisonOperatorSet: toSet(comparison, nil),
		logicalOperatorSet:    toSet(logical, nil),
		aggregationKindSet:    toSet(aggregation, strings.ToLower),
	}
}

// WithComparisonOperators returns a copy of v accepting exactly ops as
// comparison operators. An empty list keeps the current operators.
func (v Vocabulary) WithComparisonOperators(ops ...string) Vocabulary {
	if len(ops) == 0 {
		return v
	}
	return newVocabulary(v.evaluationTypes, ops, v.logicalOperators, v.aggregationKinds)
}

// WithAggregationKinds returns a copy of v accepting exactly kinds as
// aggregation kinds. An empty list keeps the current kinds.
func (v Vocabulary) WithAggregationKinds(kinds ...string) Vocabulary {
	if len(kinds) == 0 {
		return v
	}
	return newVocabulary(v.evaluationTypes, v.comparisonOperators, v.logicalOperators, kinds)
}

// IsEvaluationType reports whether t names a known evaluation type, ignoring case.
func (v Vocabulary) IsEvaluationType(t string) bool {
	return v.evaluationTypeSet[strings.ToLower(t)]
}

// IsComparisonOperator reports whether op is an accepted comparison operator.
// Operators are case-sensitive.
func (v Vocabulary) IsComparisonOperator(op string) bool {
	return v.comparisonOperatorSet[op]
}

// IsLogicalOperator reports whether op is AND or OR.
func (v Vocabulary) IsLogicalOperator(op string) bool {
	return v.logicalOperatorSet[op]
}

// IsAggregationKind reports whether k is a known aggregation kind, ignoring case.
func (v Vocabulary) IsAggregationKind(k string) bool {
	return v.aggregationKindSet[strings.ToLower(k)]
}

// EvaluationTypes returns the accepted evaluation types.
func (v Vocabulary) EvaluationTypes() []string { return clone(v.evaluationTypes) }

// ComparisonOperators returns the accepted comparison operators.
func (v Vocabulary) ComparisonOperators() []string { return clone(v.comparisonOperators) }

// LogicalOperators returns the accepted logical operators.
func (v Vocabulary) LogicalOperators() []string { return clone(v.logicalOperators) }

// AggregationKinds returns the accepted aggregation kinds.
func (v Vocabulary) AggregationKinds() []string { return clone(v.aggregationKinds) }

func clone(s []string) []string {
	return append([]string(nil), s...)
}

func toSet(items []string, normalize func(string) string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		if normalize != nil {
			item = normalize(item)
		}
		set[item] = true
	}
	return set
}
