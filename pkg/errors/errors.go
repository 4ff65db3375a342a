// Package errors gives tagcloud failures a machine-readable code.
//
// The layout core reports plain sentinel errors. Everything above it
// (word sources, the pipeline, the CLI, and the HTTP server) wraps failures
// in an [Error] whose [Code] says who is at fault:
//
//	INVALID_*, NO_WORDS, UNSUPPORTED   the caller sent something unusable (HTTP 4xx)
//	FILE_NOT_FOUND                     the input path does not exist
//	INTERNAL_ERROR                     a bug or an environment failure (HTTP 500)
//
// The CLI prints [Error.Message] and the cause without the code; the server
// returns the code in its JSON error body.
//
//	err := errors.Wrap(errors.ErrCodeFileNotFound, cause, "read %s", path)
//	if errors.Is(err, errors.ErrCodeFileNotFound) {
//	    ...
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	// ErrCodeInvalidInput means no usable text was supplied.
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// ErrCodeInvalidFormat names an output format no encoder handles.
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// ErrCodeInvalidColor is a color that is neither a known name nor hex.
	ErrCodeInvalidColor Code = "INVALID_COLOR"

	// ErrCodeInvalidConfig covers out-of-range options and bad config files.
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// ErrCodeInvalidSize is a word box the layouter refused.
	ErrCodeInvalidSize Code = "INVALID_SIZE"

	// ErrCodeInvalidPath is an input or output path that cannot be used.
	ErrCodeInvalidPath Code = "INVALID_PATH"

	// ErrCodeNoWords means preprocessing left nothing to lay out.
	ErrCodeNoWords Code = "NO_WORDS"

	// ErrCodeUnsupported is an input extension no word source reads.
	ErrCodeUnsupported Code = "UNSUPPORTED"

	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether the outermost *Error in err's chain carries code.
func Is(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// UserMessage returns the message of a coded error without its code, or
// err.Error() for any other error.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsClientError reports whether err was caused by bad input rather than a
// failure inside the application. The HTTP server maps these to 4xx.
func IsClientError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidColor,
		ErrCodeInvalidConfig, ErrCodeInvalidSize, ErrCodeInvalidPath,
		ErrCodeNoWords, ErrCodeUnsupported:
		return true
	}
	return false
}
