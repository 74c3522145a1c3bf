// Package expr recognizes the small expression grammar embedded in LROL
// string fields.
//
// Two constructs are understood:
//
//   - Reference tokens: whitespace-delimited words starting with '@', naming
//     another evaluation (for example "@high_amount").
//   - datetime() calls: datetime(now) or datetime('2024-01-01', '-2 hours'),
//     an anchor instant plus an optional signed duration.
//
// Extraction is purely lexical. A token such as "@eval2," yields the
// reference "eval2," including the trailing comma.
package expr
