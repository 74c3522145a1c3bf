package validator

import "fmt"

// FileErrorKind categorizes a FileValidationError.
type FileErrorKind string

const (
	FileNotFound     FileErrorKind = "file_not_found"
	FileReadError    FileErrorKind = "file_read_error"
	InvalidUTF8      FileErrorKind = "invalid_utf8"
	ValidationErrors FileErrorKind = "validation_errors"
)

// FileValidationError is returned by file-level validation. For
// ValidationErrors the Report carries the diagnostics; for the other kinds
// Err holds the underlying cause, if any.
type FileValidationError struct {
	Kind   FileErrorKind
	Path   string
	Report *Report
	Err    error
}

// Error implements the error interface.
func (e *FileValidationError) Error() string {
	switch e.Kind {
	case FileNotFound:
		return fmt.Sprintf("file not found: %s", e.Path)
	case FileReadError:
		return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
	case InvalidUTF8:
		return fmt.Sprintf("file is not valid UTF-8: %s", e.Path)
	case ValidationErrors:
		return fmt.Sprintf("validation failed for %s: %d error(s)", e.Path, e.Report.ErrorCount())
	}
	return fmt.Sprintf("validation error: %s", e.Path)
}

// Unwrap returns the underlying cause.
func (e *FileValidationError) Unwrap() error {
	return e.Err
}
