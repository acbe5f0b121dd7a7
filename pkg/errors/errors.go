// Package errors defines the service error taxonomy: tagged kinds with
// numeric codes, wire reasons, and HTTP status mapping.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind identifies one of the six error categories.
type Kind int

const (
	InvalidArgument Kind = iota + 1
	InvalidState
	NotFound
	RateLimit
	External
	Internal
)

// Code returns the numeric code carried on the wire.
func (k Kind) Code() int {
	return int(k)
}

// Reason returns the SCREAMING_SNAKE_CASE variant name carried on the wire.
func (k Kind) Reason() string {
	switch k {
	case InvalidArgument:
		return "ERR_INVALID_ARGUMENT"
	case InvalidState:
		return "ERR_INVALID_STATE"
	case NotFound:
		return "ERR_NOT_FOUND"
	case RateLimit:
		return "ERR_RATE_LIMIT"
	case External:
		return "ERR_EXTERNAL"
	case Internal:
		return "ERR_INTERNAL"
	}
	return "ERR_INTERNAL"
}

// HTTPStatus returns the HTTP status code for the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case InvalidArgument, InvalidState, RateLimit:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is the service error type. Message is the human-readable text;
// Err is the wrapped cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.Reason()
}

// Unwrap returns the underlying error for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a new Error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap tags an existing error with a kind. Returns nil for nil input.
func Wrap(err error, kind Kind) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		e.Kind = kind
		return e
	}
	return &Error{Kind: kind, Message: err.Error(), Err: err}
}

// Wrapf tags an existing error with a kind and a formatted message.
func Wrapf(err error, kind Kind, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// From normalizes any error into *Error. Errors produced outside this
// package become Internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}
	return &Error{Kind: Internal, Message: err.Error(), Err: err}
}

// Is reports whether the error carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
