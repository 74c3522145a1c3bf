package parser

import (
	"math"
	"strings"

	"loci-hq/lrol/pkg/lrol/ast"
	lerrors "loci-hq/lrol/pkg/lrol/errors"
)

// Logical operators accepted at parse time.
var logicalOperators = []string{"AND", "OR"}

// parseDocument parses the whole input as a single top-level object. Each
// top-level field is checked as soon as it is read, so the first fatal error
// in document order is the one reported.
func (c *cursor) parseDocument() (*ast.Model, *lerrors.ParserError) {
	c.skipWhitespace()

	model := &ast.Model{
		Evaluations: []*ast.Evaluation{},
		Actions:     []*ast.Action{},
		SourceFile:  c.file,
		Location:    c.location(c.pos),
	}

	err := c.eachField(func(f ast.Field) *lerrors.ParserError {
		return c.applyModelField(model, f)
	})
	if err != nil {
		return nil, err
	}

	c.skipWhitespace()
	if !c.eof() {
		return nil, c.errorf(c.pos, "Unexpected content after document, found %s", c.describe(c.pos))
	}

	return model, nil
}

func (c *cursor) applyModelField(model *ast.Model, f ast.Field) *lerrors.ParserError {
	switch f.Key {
	case "model_id":
		s, err := expectString(f)
		if err != nil {
			return err
		}
		model.ModelID = s

	case "name":
		s, err := expectString(f)
		if err != nil {
			return err
		}
		model.Name = s

	case "description":
		s, err := expectString(f)
		if err != nil {
			return err
		}
		model.Description = &s

	case "threshold":
		n, ok := f.Value.AsNumber()
		if !ok {
			return invalidValue(f.Key, ast.ValueTypeNumber, f.Value)
		}
		model.Threshold = n

	case "evaluations":
		items, err := expectObjectArray(f)
		if err != nil {
			return err
		}
		for _, item := range items {
			eval, err := c.buildEvaluation(item)
			if err != nil {
				return err
			}
			model.Evaluations = append(model.Evaluations, eval)
		}

	case "actions":
		items, err := expectObjectArray(f)
		if err != nil {
			return err
		}
		for _, item := range items {
			if action := buildAction(item); action != nil {
				model.Actions = append(model.Actions, action)
			}
		}

	case "metadata":
		fields, ok := f.Value.AsObject()
		if !ok {
			return invalidValue(f.Key, ast.ValueTypeObject, f.Value)
		}
		meta, err := buildMetadata(fields)
		if err != nil {
			return err
		}
		model.Metadata = meta
	}

	return nil
}

// buildEvaluation maps one evaluations[] object onto an Evaluation and checks
// the fields its type requires.
func (c *cursor) buildEvaluation(obj *ast.Value) (*ast.Evaluation, *lerrors.ParserError) {
	fields, _ := obj.AsObject()
	eval := &ast.Evaluation{Location: obj.Location()}

	var (
		hasName  bool
		typeText *ast.Field
	)

	for i := range fields {
		f := fields[i]
		switch f.Key {
		case "name":
			s, err := expectString(f)
			if err != nil {
				return nil, err
			}
			eval.Name = s
			hasName = true

		case "type":
			if _, err := expectString(f); err != nil {
				return nil, err
			}
			typeText = &fields[i]

		case "left":
			s, err := expectString(f)
			if err != nil {
				return nil, err
			}
			eval.Left = &s

		case "operator":
			s, err := expectString(f)
			if err != nil {
				return nil, err
			}
			eval.Operator = &s

		case "right":
			eval.Right = f.Value

		case "operands":
			operands, err := expectStringArray(f)
			if err != nil {
				return nil, err
			}
			eval.Operands = operands

		case "weight":
			n, ok := f.Value.AsNumber()
			if !ok {
				return nil, invalidValue(f.Key, ast.ValueTypeNumber, f.Value)
			}
			w := truncateWeight(n)
			eval.Weight = &w

		case "aggregation":
			s, err := expectString(f)
			if err != nil {
				return nil, err
			}
			kind := parseAggregationKind(s)
			eval.Aggregation = &kind
		}
	}

	if !hasName {
		return nil, lerrors.NewMissingField("name", eval.Location)
	}
	if typeText == nil {
		return nil, lerrors.NewMissingField("type", eval.Location)
	}

	raw, _ := typeText.Value.AsString()
	evalType, ok := ast.ParseEvaluationType(raw)
	if !ok {
		err := lerrors.NewSyntaxError(typeText.Value.Location(), "Invalid evaluation type '"+raw+"'")
		err.Suggestion = lerrors.SuggestEvaluationType(raw, evaluationTypeNames())
		return nil, err
	}
	eval.Type = evalType

	if err := checkRequiredFields(eval, fields); err != nil {
		return nil, err
	}

	return eval, nil
}

// checkRequiredFields enforces the structural shape of each evaluation type.
func checkRequiredFields(eval *ast.Evaluation, fields []ast.Field) *lerrors.ParserError {
	switch eval.Type {
	case ast.EvaluationComparison:
		if eval.Left == nil {
			return lerrors.NewMissingField("left", eval.Location)
		}
		if eval.Operator == nil {
			return lerrors.NewMissingField("operator", eval.Location)
		}
		if eval.Right == nil {
			return lerrors.NewMissingField("right", eval.Location)
		}

	case ast.EvaluationLogical:
		if eval.Operator == nil {
			return lerrors.NewMissingField("operator", eval.Location)
		}
		if !isLogicalOperator(*eval.Operator) {
			loc := eval.Location
			if f := findField(fields, "operator"); f != nil {
				loc = f.Value.Location()
			}
			err := lerrors.NewInvalidValue("operator", "AND or OR", *eval.Operator, loc)
			err.Suggestion = lerrors.SuggestOperator(*eval.Operator, logicalOperators)
			return err
		}
		if eval.Operands == nil {
			return lerrors.NewMissingField("operands", eval.Location)
		}
	}
	return nil
}

// buildAction returns nil when the object lacks a string type or reason.
func buildAction(obj *ast.Value) *ast.Action {
	fields, _ := obj.AsObject()

	var actionType, reason *string
	for _, f := range fields {
		s, ok := f.Value.AsString()
		if !ok {
			continue
		}
		switch f.Key {
		case "type":
			actionType = &s
		case "reason":
			reason = &s
		}
	}

	if actionType == nil || reason == nil {
		return nil
	}
	return &ast.Action{Type: *actionType, Reason: *reason, Location: obj.Location()}
}

func buildMetadata(fields []ast.Field) (*ast.Metadata, *lerrors.ParserError) {
	meta := &ast.Metadata{}
	for _, f := range fields {
		var target **string
		switch f.Key {
		case "created_by":
			target = &meta.CreatedBy
		case "created_at":
			target = &meta.CreatedAt
		case "last_updated":
			target = &meta.LastUpdated
		case "notes":
			target = &meta.Notes
		default:
			continue
		}
		s, err := expectString(f)
		if err != nil {
			return nil, err
		}
		*target = &s
	}
	return meta, nil
}

func expectString(f ast.Field) (string, *lerrors.ParserError) {
	s, ok := f.Value.AsString()
	if !ok {
		return "", invalidValue(f.Key, ast.ValueTypeString, f.Value)
	}
	return s, nil
}

func expectObjectArray(f ast.Field) ([]*ast.Value, *lerrors.ParserError) {
	items, ok := f.Value.AsArray()
	if !ok {
		return nil, invalidValue(f.Key, ast.ValueTypeArray, f.Value)
	}
	for _, item := range items {
		if item.Type() != ast.ValueTypeObject {
			return nil, invalidValue(f.Key, ast.ValueTypeObject, item)
		}
	}
	return items, nil
}

// expectStringArray returns a non-nil slice for a present array, even when empty.
func expectStringArray(f ast.Field) ([]string, *lerrors.ParserError) {
	items, ok := f.Value.AsArray()
	if !ok {
		return nil, lerrors.NewInvalidValue(f.Key, "array of strings", string(f.Value.Type()), f.Value.Location())
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.AsString()
		if !ok {
			return nil, lerrors.NewInvalidValue(f.Key, "array of strings", "array containing "+string(item.Type()), item.Location())
		}
		out = append(out, s)
	}
	return out, nil
}

func invalidValue(field string, expected ast.ValueType, found *ast.Value) *lerrors.ParserError {
	return lerrors.NewInvalidValue(field, string(expected), string(found.Type()), found.Location())
}

func findField(fields []ast.Field, key string) *ast.Field {
	for i := range fields {
		if fields[i].Key == key {
			return &fields[i]
		}
	}
	return nil
}

func isLogicalOperator(op string) bool {
	for _, l := range logicalOperators {
		if op == l {
			return true
		}
	}
	return false
}

// truncateWeight converts a weight to an integer, dropping the fraction and
// saturating at the 32-bit integer range.
func truncateWeight(n float64) int {
	switch {
	case n >= math.MaxInt32:
		return math.MaxInt32
	case n <= math.MinInt32:
		return math.MinInt32
	}
	return int(n)
}

// parseAggregationKind normalizes known kinds and keeps unknown text verbatim.
func parseAggregationKind(s string) ast.AggregationKind {
	lower := ast.AggregationKind(strings.ToLower(s))
	for _, k := range ast.AggregationKinds {
		if k == lower {
			return k
		}
	}
	return ast.AggregationKind(s)
}

func evaluationTypeNames() []string {
	names := make([]string, len(ast.EvaluationTypes))
	for i, t := range ast.EvaluationTypes {
		names[i] = string(t)
	}
	return names
}
