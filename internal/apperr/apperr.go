// Package apperr defines the error taxonomy shared across the engine:
// parse failures, best-effort extraction failures, missing entities, and
// caller-input validation failures.
package apperr

import (
	"errors"
	"fmt"

	"mapforge/internal/common"
)

// Kind classifies an engine error.
type Kind int

const (
	// KindParse marks a malformed or format-mismatched schema input.
	KindParse Kind = iota
	// KindExtraction marks a per-file example extraction failure.
	// Extraction errors are swallowed inside the extractor and logged;
	// they never reach the caller of an ingest or mapping operation.
	KindExtraction
	// KindNotFound marks a reference to a schema, profile, or field that does not exist.
	KindNotFound
	// KindValidation marks caller-supplied data failing required-field or existence checks.
	KindValidation
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindExtraction:
		return "extraction"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	default:
		return common.UnknownStr
	}
}

// Error is a classified engine error, optionally wrapping a cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Parse builds a parse error wrapping the underlying diagnostic.
func Parse(msg string, err error) *Error {
	return &Error{Kind: KindParse, Msg: msg, Err: err}
}

// Parsef builds a parse error from a format string.
func Parsef(format string, args ...any) *Error {
	return &Error{Kind: KindParse, Msg: fmt.Sprintf(format, args...)}
}

// Extraction builds an extraction error wrapping the underlying cause.
func Extraction(msg string, err error) *Error {
	return &Error{Kind: KindExtraction, Msg: msg, Err: err}
}

// NotFoundf builds a not-found error from a format string.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Validationf builds a validation error from a format string.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is (or wraps) an Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}

	return false
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return IsKind(err, KindNotFound)
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return IsKind(err, KindValidation)
}

// IsParse reports whether err is a parse error.
func IsParse(err error) bool {
	return IsKind(err, KindParse)
}
