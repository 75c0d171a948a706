package store

import (
	"errors"
	"fmt"
)

// Errors returned by the Absorb transition.
var (
	// ErrParse indicates the raw text is not valid structured text even
	// after lenient repair.
	ErrParse = errors.New("text is not valid JSON")

	// ErrShape indicates the text parsed but the editable object is
	// missing or is not an object.
	ErrShape = errors.New("document shape mismatch")
)

// ParseError reports a syntactically invalid document. It is non-fatal:
// the reducer keeps the prior state.
type ParseError struct {
	// Err is the underlying parser error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements error matching for ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ShapeError reports a document whose value at Field is missing or not a
// key/value object. Like ParseError it is non-fatal.
type ShapeError struct {
	// Field is the top-level key the editor expected an object under.
	// Empty when the document itself is not an object.
	Field string

	// Got names what was found instead ("array", "string", "missing", ...).
	Got string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("shape error: expected object document, got %s", e.Got)
	}
	return fmt.Sprintf("shape error: field %q: expected object, got %s", e.Field, e.Got)
}

// Is implements error matching for ShapeError.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}
