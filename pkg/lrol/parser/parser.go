package parser

import (
	"fmt"
	"os"
	"unicode/utf8"

	"loci-hq/lrol/pkg/lrol/ast"
	lerrors "loci-hq/lrol/pkg/lrol/errors"
)

// DefaultMaxFileSize is the default upper bound on rule file size.
const DefaultMaxFileSize = 10 * 1024 * 1024 // 10MB

// Parser parses LROL rule documents into models.
// A Parser holds only configuration and is safe for concurrent use.
type Parser struct {
	maxFileSize  int64 // Maximum input size in bytes
	contextLines int   // Source lines shown around a syntax error; 0 disables
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxFileSize:  DefaultMaxFileSize,
		contextLines: 2,
	}
}

// WithMaxFileSize sets the maximum input size limit.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// WithContextLines sets how many source lines surround the error line in
// ParserError.Context. Zero or less leaves Context empty.
func (p *Parser) WithContextLines(n int) *Parser {
	p.contextLines = n
	return p
}

// Parse reads and parses the rule file at path.
// Any failure is returned as a *errors.ParserError.
func (p *Parser) Parse(path string) (*ast.Model, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fileError(path, fmt.Sprintf("Failed to open file: %v", err))
	}
	if !info.Mode().IsRegular() {
		return nil, fileError(path, "Not a regular file")
	}
	if info.Size() > p.maxFileSize {
		return nil, fileError(path, fmt.Sprintf("File size %d exceeds maximum %d bytes", info.Size(), p.maxFileSize))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fileError(path, fmt.Sprintf("Failed to read file: %v", err))
	}

	return p.ParseBytes(data, path)
}

// ParseBytes parses rule text held in memory. sourcePath is recorded in
// locations and may be empty.
func (p *Parser) ParseBytes(data []byte, sourcePath string) (*ast.Model, error) {
	if int64(len(data)) > p.maxFileSize {
		return nil, fileError(sourcePath, fmt.Sprintf("Data size %d exceeds maximum %d bytes", len(data), p.maxFileSize))
	}
	if !utf8.Valid(data) {
		return nil, fileError(sourcePath, "Input is not valid UTF-8")
	}
	return p.ParseString(string(data), sourcePath)
}

// ParseString parses rule text. The returned error, when non-nil, is always
// a *errors.ParserError.
func (p *Parser) ParseString(text, sourcePath string) (*ast.Model, error) {
	model, perr := p.parse(text, sourcePath)
	if perr != nil {
		return nil, perr
	}
	return model, nil
}

func (p *Parser) parse(text, sourcePath string) (*ast.Model, *lerrors.ParserError) {
	c := newCursor(text, sourcePath)
	model, err := c.parseDocument()
	if err != nil {
		if p.contextLines > 0 {
			lerrors.WithContext(err, text, p.contextLines)
		}
		return nil, err
	}
	return model, nil
}

// fileError reports a failure that happened before any text was parsed.
// Such errors carry no line or column.
func fileError(path, message string) *lerrors.ParserError {
	return lerrors.NewSyntaxError(ast.Location{File: path}, message)
}

// Parse parses text with a default parser.
func Parse(text string) (*ast.Model, error) {
	return NewParser().ParseString(text, "")
}
