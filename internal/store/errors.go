package store

import (
	"errors"
	"fmt"
)

// Code classifies store errors so callers can branch without string matching.
type Code string

// Error codes returned by the store and catalog layers.
const (
	CodeNotFound  Code = "NOT_FOUND"
	CodeTagExists Code = "TAG_EXISTS"
	CodeInvalid   Code = "INVALID"
)

// Error is a classified persistence error.
type Error struct {
	Code    Code
	Message string // User-facing message
	Err     error  // Underlying error (optional)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithMessage returns a copy of e carrying a custom message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Code: e.Code, Message: msg, Err: e.Err}
}

// WithCause returns a copy of e wrapping err.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Err: err}
}

// Sentinel errors.
var (
	ErrNotFound = &Error{
		Code:    CodeNotFound,
		Message: "not found",
	}

	ErrTagExists = &Error{
		Code:    CodeTagExists,
		Message: "Tag already exists",
	}

	ErrInvalid = &Error{
		Code:    CodeInvalid,
		Message: "invalid input",
	}
)

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
