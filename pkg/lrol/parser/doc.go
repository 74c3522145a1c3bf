// Package parser turns LROL rule text into an *ast.Model.
//
// The grammar is a strict subset of JSON: double-quoted strings without
// escape sequences, decimal numbers without exponents, true/false, arrays
// and objects. Parsing is fail-fast: the first problem aborts the parse and
// is returned as a single *errors.ParserError carrying a 1-based line and
// column.
//
// Parsing happens in two layers. The grammar layer (cursor.go,
// primitives.go) recognizes generic values over an explicit byte offset.
// The document layer (document.go) maps those values onto the rule model,
// enforcing per-field value types and per-evaluation required fields.
//
// Completeness of the model (non-empty name, at least one action, ...) is not
// checked here; see package analyzer.
//
// Example:
//
//	p := parser.NewParser()
//	model, err := p.Parse("rules/high_value.json")
//	if err != nil {
//	    var perr *errors.ParserError
//	    if stderrors.As(err, &perr) {
//	        fmt.Println(perr.Detailed())
//	    }
//	}
package parser
