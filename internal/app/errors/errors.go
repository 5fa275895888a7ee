package errors

import (
	"fmt"
)

// Fatal errors stop the run with a non-zero exit status.
var (
	ErrMissingInput  = New("missing input audio file")
	ErrDecodeFailed  = New("failed to load audio file")
	ErrOutputDir     = New("failed to create output directory")
	ErrMissingAPIKey = New("API key is required")
	ErrInvalidConfig = New("invalid configuration")
)

// Recoverable errors degrade a single segment.
var (
	ErrExportFailed        = New("segment export failed")
	ErrTranscriptionFailed = New("transcription failed")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Mark attaches kind to err so that errors.Is(err, kind) holds while the
// message keeps the original cause.
func Mark(err error, kind *Error) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: kind.message,
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// OutOfRange returns an error for values outside acceptable range
func OutOfRange(field string, min, max interface{}) error {
	return Mark(Newf("%s out of range (must be between %v and %v)", field, min, max), ErrInvalidConfig)
}
