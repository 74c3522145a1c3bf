package lrol

import (
	"loci-hq/lrol/pkg/lrol/analyzer"
	"loci-hq/lrol/pkg/lrol/ast"
	"loci-hq/lrol/pkg/lrol/parser"
)

// ParseAndValidate parses the rule file at path and runs the analyzer on it.
// It returns the model only when both steps succeed.
func ParseAndValidate(path string) (*ast.Model, error) {
	model, err := Parse(path)
	if err != nil {
		return nil, err
	}
	if err := Analyze(model); err != nil {
		return nil, err
	}
	return model, nil
}

// ParseAndValidateBytes is ParseAndValidate for content already in memory.
func ParseAndValidateBytes(data []byte, sourcePath string) (*ast.Model, error) {
	model, err := parser.NewParser().ParseBytes(data, sourcePath)
	if err != nil {
		return nil, err
	}
	if err := Analyze(model); err != nil {
		return nil, err
	}
	return model, nil
}

// Parse parses a rule file without analysis.
func Parse(path string) (*ast.Model, error) {
	return parser.NewParser().Parse(path)
}

// Analyze runs the default analyzer on model. The error, when not nil, is an
// *errors.AnalyzerErrorList.
func Analyze(model *ast.Model) error {
	return analyzer.New().Analyze(model).Err()
}
