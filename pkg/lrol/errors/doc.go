// Package errors defines the diagnostics produced by the LROL parser and analyzer.
//
// There are two independent taxonomies:
//
//   - ParserError: syntax-level, singular and fatal. The first one encountered
//     aborts parsing and is the only diagnostic for the document.
//   - AnalyzerError: semantic-level, advisory and cumulative. All violations
//     across all analyzer passes are collected into an AnalyzerErrorList.
//
// Parser errors carry a 1-based line and column and can be enriched with the
// surrounding source lines via WithContext. Both kinds may carry a suggestion
// computed with Levenshtein distance against the known vocabulary.
package errors
