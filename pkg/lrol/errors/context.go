package errors

import (
	"fmt"
	"strings"

	"loci-hq/lrol/pkg/lrol/ast"
)

// ExtractContext renders the source lines around loc with a caret under the
// failing column. Returns "" when loc is unknown or outside source.
func ExtractContext(source string, loc ast.Location, contextLines int) string {
	if !loc.IsValid() {
		return ""
	}

	lines := strings.Split(source, "\n")
	errorLine := loc.Line - 1
	if errorLine >= len(lines) {
		return ""
	}

	startLine := max(errorLine-contextLines, 0)
	endLine := min(errorLine+contextLines, len(lines)-1)

	var sb strings.Builder
	width := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}
		sb.WriteString(fmt.Sprintf("%s %*d | %s\n", prefix, width, i+1, strings.TrimRight(lines[i], "\r")))

		if i == errorLine && loc.Column > 0 {
			sb.WriteString(fmt.Sprintf("   %s | %s^\n", strings.Repeat(" ", width), strings.Repeat(" ", loc.Column-1)))
		}
	}

	return sb.String()
}

// WithContext attaches source context to err and returns it.
func WithContext(err *ParserError, source string, contextLines int) *ParserError {
	if err != nil && err.Location.IsValid() {
		err.Context = ExtractContext(source, err.Location, contextLines)
	}
	return err
}
