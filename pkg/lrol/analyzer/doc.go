// Package analyzer performs semantic validation of parsed LROL models.
//
// Analysis runs five passes in a fixed order and never stops early:
//
//  1. Schema: required model fields, threshold and weight ranges, type and
//     operator vocabularies, action and metadata formats.
//  2. Uniqueness: every evaluation name is declared once.
//  3. Structural: per-type required fields, operand and @reference
//     resolution, datetime() expressions.
//  4. Graph: evaluation dependencies from operands and @references.
//  5. Cycles: the first dependency cycle, if any.
//
// All findings of one call are returned together in a Result. An Analyzer
// holds only immutable configuration, so one instance may analyze any number
// of models, including concurrently.
package analyzer
