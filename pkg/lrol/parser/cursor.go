package parser

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"loci-hq/lrol/pkg/lrol/ast"
	lerrors "loci-hq/lrol/pkg/lrol/errors"
)

// cursor is a read position over immutable source text.
type cursor struct {
	src  string
	pos  int
	file string

	lineStarts []int // offsets of each line start, built on first use
}

func newCursor(src, file string) *cursor {
	return &cursor{src: src, file: file}
}

func (c *cursor) eof() bool {
	return c.pos >= len(c.src)
}

// peek returns the byte at the cursor, or 0 at end of input.
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.src[c.pos]
}

func (c *cursor) skipWhitespace() {
	for !c.eof() {
		switch c.src[c.pos] {
		case ' ', '\t', '\r', '\n':
			c.pos++
		default:
			return
		}
	}
}

// consume advances past ch if it is the next byte.
func (c *cursor) consume(ch byte) bool {
	if c.peek() == ch && !c.eof() {
		c.pos++
		return true
	}
	return false
}

// expect consumes ch or fails at the current position.
func (c *cursor) expect(ch byte) *lerrors.ParserError {
	if c.consume(ch) {
		return nil
	}
	return c.errorf(c.pos, "Expected '%c', found %s", ch, c.describe(c.pos))
}

// describe names what is found at offset for error messages.
func (c *cursor) describe(offset int) string {
	if offset >= len(c.src) {
		return "end of input"
	}
	r, _ := utf8.DecodeRuneInString(c.src[offset:])
	return fmt.Sprintf("'%c'", r)
}

// location converts a byte offset into a 1-based line and column.
// This is the only place positions are computed.
func (c *cursor) location(offset int) ast.Location {
	if offset > len(c.src) {
		offset = len(c.src)
	}
	if c.lineStarts == nil {
		c.lineStarts = []int{0}
		for i := 0; i < len(c.src); i++ {
			if c.src[i] == '\n' {
				c.lineStarts = append(c.lineStarts, i+1)
			}
		}
	}

	// Index of the last line start <= offset.
	line := sort.Search(len(c.lineStarts), func(i int) bool { return c.lineStarts[i] > offset })
	lineStart := c.lineStarts[line-1]

	return ast.Location{
		File:   c.file,
		Line:   line,
		Column: utf8.RuneCountInString(c.src[lineStart:offset]) + 1,
		Offset: offset,
	}
}

// errorf builds an InvalidSyntax error located at offset.
func (c *cursor) errorf(offset int, format string, args ...any) *lerrors.ParserError {
	return lerrors.NewSyntaxError(c.location(offset), fmt.Sprintf(format, args...))
}
