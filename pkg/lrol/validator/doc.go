// Package validator runs the parser and the analyzer over rule documents and
// merges both outcomes into a Report.
//
// A document is valid when it parses and analysis reports nothing. Analysis
// only runs when parsing succeeds. Syntax and semantic problems are reported
// as data in the Report. Go errors are reserved for I/O: a missing or
// unreadable file, or content that is not UTF-8.
//
// ValidateDirectory fans out over the *.json files of one directory on a
// bounded worker pool. A content-addressed Cache lets repeated runs skip
// unchanged files.
//
// Example:
//
//	v := validator.New(validator.WithWorkers(4))
//	report, err := v.ValidateFile(ctx, "rules/high_value.json")
//	var fve *validator.FileValidationError
//	if errors.As(err, &fve) && fve.Kind == validator.ValidationErrors {
//	    fmt.Print(fve.Report.FormatErrors())
//	}
package validator
