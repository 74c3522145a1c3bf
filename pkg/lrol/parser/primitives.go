package parser

import (
	"strconv"
	"strings"

	"loci-hq/lrol/pkg/lrol/ast"
	lerrors "loci-hq/lrol/pkg/lrol/errors"
)

// parseValue recognizes any value, skipping surrounding whitespace.
func (c *cursor) parseValue() (*ast.Value, *lerrors.ParserError) {
	c.skipWhitespace()
	start := c.pos

	var (
		v   *ast.Value
		err *lerrors.ParserError
	)
	switch ch := c.peek(); {
	case c.eof():
		return nil, c.errorf(start, "Expected value, found end of input")
	case ch == '"':
		var s string
		s, err = c.parseString()
		if err == nil {
			v = ast.StringValue(s, c.location(start))
		}
	case ch == '-' || isDigit(ch):
		var n float64
		n, err = c.parseNumber()
		if err == nil {
			v = ast.NumberValue(n, c.location(start))
		}
	case ch == 't' || ch == 'f':
		var b bool
		b, err = c.parseBool()
		if err == nil {
			v = ast.BoolValue(b, c.location(start))
		}
	case ch == '[':
		v, err = c.parseArray()
	case ch == '{':
		v, err = c.parseObject()
	default:
		return nil, c.errorf(start, "Expected value, found %s", c.describe(start))
	}
	if err != nil {
		return nil, err
	}

	c.skipWhitespace()
	return v, nil
}

// parseString recognizes a double-quoted string. There are no escape
// sequences, so the string ends at the next quote.
func (c *cursor) parseString() (string, *lerrors.ParserError) {
	start := c.pos
	if err := c.expect('"'); err != nil {
		return "", err
	}
	end := strings.IndexByte(c.src[c.pos:], '"')
	if end < 0 {
		return "", c.errorf(start, "Unterminated string")
	}
	s := c.src[c.pos : c.pos+end]
	c.pos += end + 1
	return s, nil
}

// parseNumber recognizes -?digits(.digits)?.
func (c *cursor) parseNumber() (float64, *lerrors.ParserError) {
	start := c.pos
	c.consume('-')
	if !c.digits() {
		return 0, c.errorf(c.pos, "Expected digit, found %s", c.describe(c.pos))
	}
	if c.peek() == '.' && c.pos+1 < len(c.src) && isDigit(c.src[c.pos+1]) {
		c.pos++
		c.digits()
	}

	text := c.src[start:c.pos]
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, c.errorf(start, "Invalid number %q", text)
	}
	return n, nil
}

// digits consumes one or more ASCII digits.
func (c *cursor) digits() bool {
	start := c.pos
	for !c.eof() && isDigit(c.src[c.pos]) {
		c.pos++
	}
	return c.pos > start
}

func (c *cursor) parseBool() (bool, *lerrors.ParserError) {
	rest := c.src[c.pos:]
	switch {
	case strings.HasPrefix(rest, "true"):
		c.pos += len("true")
		return true, nil
	case strings.HasPrefix(rest, "false"):
		c.pos += len("false")
		return false, nil
	}
	return false, c.errorf(c.pos, "Expected value, found %s", c.describe(c.pos))
}

// parseArray recognizes [ value, value, ... ].
func (c *cursor) parseArray() (*ast.Value, *lerrors.ParserError) {
	start := c.pos
	if err := c.expect('['); err != nil {
		return nil, err
	}

	var items []*ast.Value
	c.skipWhitespace()
	if c.consume(']') {
		return ast.ArrayValue(items, c.location(start)), nil
	}

	for {
		item, err := c.parseValue()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		if c.consume(',') {
			continue
		}
		if c.consume(']') {
			return ast.ArrayValue(items, c.location(start)), nil
		}
		return nil, c.errorf(c.pos, "Expected ',' or ']', found %s", c.describe(c.pos))
	}
}

// parseObject recognizes { "key": value, ... }.
func (c *cursor) parseObject() (*ast.Value, *lerrors.ParserError) {
	start := c.pos
	fields, err := c.parseFields()
	if err != nil {
		return nil, err
	}
	return ast.ObjectValue(fields, c.location(start)), nil
}

// parseFields reads a brace-delimited list of key/value pairs.
func (c *cursor) parseFields() ([]ast.Field, *lerrors.ParserError) {
	var fields []ast.Field
	err := c.eachField(func(f ast.Field) *lerrors.ParserError {
		fields = append(fields, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fields, nil
}

// eachField reads a brace-delimited list of key/value pairs, handing each
// pair to fn as soon as it is read. Pairs are read until no comma follows;
// the closing brace is then required. The first error from fn stops parsing.
func (c *cursor) eachField(fn func(ast.Field) *lerrors.ParserError) *lerrors.ParserError {
	if err := c.expect('{'); err != nil {
		return err
	}

	c.skipWhitespace()
	if c.consume('}') {
		return nil
	}

	for {
		field, err := c.parseField()
		if err != nil {
			return err
		}
		if err := fn(field); err != nil {
			return err
		}

		if !c.consume(',') {
			break
		}
		c.skipWhitespace()
	}

	if c.consume('}') {
		return nil
	}
	return c.errorf(c.pos, "Expected ',' or '}', found %s", c.describe(c.pos))
}

// parseField reads one "key": value pair.
func (c *cursor) parseField() (ast.Field, *lerrors.ParserError) {
	c.skipWhitespace()
	start := c.pos
	if c.peek() != '"' {
		return ast.Field{}, c.errorf(start, "Expected field name, found %s", c.describe(start))
	}
	key, err := c.parseString()
	if err != nil {
		return ast.Field{}, err
	}

	c.skipWhitespace()
	if err := c.expect(':'); err != nil {
		return ast.Field{}, err
	}

	value, err := c.parseValue()
	if err != nil {
		return ast.Field{}, err
	}

	return ast.Field{Key: key, Value: value, Location: c.location(start)}, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
