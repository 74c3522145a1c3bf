package analyzer

import (
	"strings"

	"loci-hq/lrol/pkg/lrol/ast"
	lerrors "loci-hq/lrol/pkg/lrol/errors"
)

const (
	reasonThresholdRange  = "Threshold must be between 0 and 1"
	reasonInvalidDatetime = "Invalid datetime format"
)

// Weight bounds, inclusive.
const (
	MinWeight = 1
	MaxWeight = 5
)

// checkSchema validates model-level fields and per-item vocabularies.
func (r *run) checkSchema() {
	m := r.model

	if m.ModelID == "" {
		r.errors.Add(lerrors.NewMissingRequiredSchemaField("model_id"))
	}
	if m.Name == "" {
		r.errors.Add(lerrors.NewMissingRequiredSchemaField("name"))
	}
	if m.Threshold < 0 || m.Threshold > 1 {
		r.errors.Add(lerrors.NewInvalidThreshold(m.Threshold, reasonThresholdRange))
	}
	if len(m.Evaluations) == 0 {
		r.errors.Add(lerrors.NewMissingRequiredSchemaField("evaluations"))
	}
	if len(m.Actions) == 0 {
		r.errors.Add(lerrors.NewMissingRequiredSchemaField("actions"))
	}

	for _, eval := range m.Evaluations {
		r.checkEvaluationSchema(eval)
	}
	for _, action := range m.Actions {
		r.checkActionSchema(action)
	}
	if m.Metadata != nil {
		r.checkMetadataSchema(m.Metadata)
	}
}

func (r *run) checkEvaluationSchema(eval *ast.Evaluation) {
	if !r.vocab.IsEvaluationType(string(eval.Type)) {
		err := lerrors.NewInvalidEvaluationType(eval.Name, string(eval.Type))
		err.Suggestion = lerrors.SuggestEvaluationType(string(eval.Type), r.vocab.EvaluationTypes())
		r.errors.Add(err)
	}

	if eval.Operator != nil {
		op := *eval.Operator
		switch eval.Type {
		case ast.EvaluationComparison:
			if !r.vocab.IsComparisonOperator(op) {
				err := lerrors.NewInvalidComparisonOperator(eval.Name, op)
				err.Suggestion = lerrors.SuggestOperator(op, r.vocab.ComparisonOperators())
				r.errors.Add(err)
			}
		case ast.EvaluationLogical:
			if !r.vocab.IsLogicalOperator(op) {
				err := lerrors.NewInvalidLogicalOperator(eval.Name, op)
				err.Suggestion = lerrors.SuggestOperator(op, r.vocab.LogicalOperators())
				r.errors.Add(err)
			}
		}
	}

	if eval.Aggregation != nil && !r.vocab.IsAggregationKind(string(*eval.Aggregation)) {
		r.errors.Add(lerrors.NewInvalidAggregationType(eval.Name, string(*eval.Aggregation)))
	}

	if eval.Weight != nil && !weightInRange(*eval.Weight) {
		r.errors.Add(lerrors.NewInvalidWeightRange(eval.Name, *eval.Weight))
	}
}

func (r *run) checkActionSchema(action *ast.Action) {
	if strings.TrimSpace(action.Type) == "" {
		r.errors.Add(lerrors.NewInvalidActionType(action.Type))
	}
	if strings.TrimSpace(action.Reason) == "" {
		r.errors.Add(lerrors.NewMissingActionReason(action.Type))
	}
}

func (r *run) checkMetadataSchema(meta *ast.Metadata) {
	if meta.CreatedAt != nil && r.parseTimestamp(*meta.CreatedAt) != nil {
		r.errors.Add(lerrors.NewInvalidMetadataFormat("created_at", reasonInvalidDatetime))
	}
	if meta.LastUpdated != nil && r.parseTimestamp(*meta.LastUpdated) != nil {
		r.errors.Add(lerrors.NewInvalidMetadataFormat("last_updated", reasonInvalidDatetime))
	}
}

func weightInRange(w int) bool {
	return w >= MinWeight && w <= MaxWeight
}
