package validator

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"unicode/utf8"
)

// ErrInvalidUTF8 marks content that is not valid UTF-8. FileReader
// implementations wrap it so ValidateFile reports InvalidUTF8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// FileReader reads rule documents from disk.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

type osReader struct{}

func (osReader) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// ValidateFile reads and validates the file at path. A valid document yields
// its report and a nil error. An invalid document yields the same report and
// a *FileValidationError of kind ValidationErrors wrapping it.
func (v *Validator) ValidateFile(ctx context.Context, path string) (*Report, error) {
	data, err := v.reader.ReadFile(path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, &FileValidationError{Kind: FileNotFound, Path: path, Err: err}
		case errors.Is(err, ErrInvalidUTF8):
			return nil, &FileValidationError{Kind: InvalidUTF8, Path: path, Err: err}
		}
		return nil, &FileValidationError{Kind: FileReadError, Path: path, Err: err}
	}

	return v.ValidateBytes(ctx, data, path)
}

// ValidateBytes validates file content already in memory, with the same
// result contract as ValidateFile.
func (v *Validator) ValidateBytes(ctx context.Context, data []byte, path string) (*Report, error) {
	if !utf8.Valid(data) {
		return nil, &FileValidationError{Kind: InvalidUTF8, Path: path, Err: ErrInvalidUTF8}
	}

	report := v.validate(ctx, data, path)
	if !report.IsValid() {
		return report, &FileValidationError{Kind: ValidationErrors, Path: path, Report: report}
	}
	return report, nil
}
