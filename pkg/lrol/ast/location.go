package ast

import "fmt"

// Location represents the source location of a node in the original rule document.
type Location struct {
	File   string `json:"file,omitempty"` // Path to the rule file (may be empty for in-memory input)
	Line   int    `json:"line"`           // Line number (1-based)
	Column int    `json:"column"`         // Column number (1-based)
	Offset int    `json:"-"`              // Byte offset into the source text
}

// String returns a human-readable representation of the location.
// Format: "file:line:column", or "line:column" when no file is known.
func (l Location) String() string {
	if l.Line == 0 {
		return "<unknown>"
	}
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// IsValid returns true if the location carries line information.
func (l Location) IsValid() bool {
	return l.Line > 0
}
