package analyzer

import (
	"errors"

	"loci-hq/lrol/pkg/lrol/ast"
	lerrors "loci-hq/lrol/pkg/lrol/errors"
	"loci-hq/lrol/pkg/lrol/expr"
)

// checkEvaluation runs the structural and reference checks for one evaluation.
// It relies on checkUniqueness having collected every declared name.
func (r *run) checkEvaluation(eval *ast.Evaluation) {
	r.checkDateTimes(eval)
	r.checkReferences(eval)

	if eval.Weight != nil && !weightInRange(*eval.Weight) {
		r.errors.Add(lerrors.NewInvalidWeight(eval.Name, *eval.Weight))
		if !r.dedupeWeight {
			r.errors.Add(lerrors.NewInvalidWeight(eval.Name, *eval.Weight))
		}
	}

	switch eval.Type {
	case ast.EvaluationLogical:
		r.checkLogical(eval)
	case ast.EvaluationComparison:
		for _, missing := range []struct {
			field   string
			present bool
		}{
			{"left", eval.Left != nil},
			{"operator", eval.Operator != nil},
			{"right", eval.Right != nil},
		} {
			if !missing.present {
				r.errors.Add(lerrors.NewMissingRequiredField(eval.Name, missing.field))
			}
		}
	}
}

func (r *run) checkLogical(eval *ast.Evaluation) {
	if eval.Operator == nil {
		r.errors.Add(lerrors.NewMissingRequiredField(eval.Name, "operator"))
	} else if !r.vocab.IsLogicalOperator(*eval.Operator) {
		r.errors.Add(lerrors.NewInvalidLogicalOperator(eval.Name, *eval.Operator))
	}

	if eval.Operands == nil {
		r.errors.Add(lerrors.NewMissingRequiredField(eval.Name, "operands"))
		return
	}
	if len(eval.Operands) == 0 {
		r.errors.Add(lerrors.NewEmptyOperands(eval.Name))
	}
	for _, operand := range eval.Operands {
		if !r.names[operand] {
			err := lerrors.NewMissingOperandReference(eval.Name, operand)
			err.Suggestion = lerrors.SuggestName(operand, r.declaredNames())
			r.errors.Add(err)
		}
	}
}

// checkReferences resolves @references in left and string right.
func (r *run) checkReferences(eval *ast.Evaluation) {
	for _, f := range eval.TextFields() {
		for _, ref := range expr.ExtractReferences(f.Text) {
			if !r.names[ref] {
				err := lerrors.NewInvalidStringReference(eval.Name, f.Name, ref)
				err.Suggestion = lerrors.SuggestName(ref, r.declaredNames())
				r.errors.Add(err)
			}
		}
	}
}

// checkDateTimes validates text fields that start with "datetime(".
func (r *run) checkDateTimes(eval *ast.Evaluation) {
	for _, f := range eval.TextFields() {
		if !expr.IsDateTimeExpression(f.Text) {
			continue
		}
		if _, err := expr.ParseDateTime(f.Text); err != nil {
			reason := err.Error()
			var se *expr.SyntaxError
			if errors.As(err, &se) {
				reason = se.Reason
			}
			r.errors.Add(lerrors.NewInvalidDateTimeExpression(eval.Name, f.Name, f.Text, reason))
		}
	}
}
