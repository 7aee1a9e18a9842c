package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the transport boundary.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindNotFound
	KindInvalidReference
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindInvalidReference:
		return "invalid_reference"
	case KindConflict:
		return "conflict"
	default:
		return "unexpected"
	}
}

// HTTPStatus returns the status code a kind is answered with.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindInvalidReference:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain failure that carries its kind and a client-facing message.
type Error struct {
	Kind    Kind   // Classification used by the transport
	Message string // Human-readable message, safe to return to clients
	Err     error  // Underlying error
}

// Error implements error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to reach the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// ============================================
// FACTORY FUNCTIONS
// ============================================

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Invalid wraps an input validation failure, using its text as the message.
func Invalid(err error) *Error {
	return &Error{Kind: KindValidation, Message: err.Error(), Err: err}
}

func NotFound(err error, format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...), Err: err}
}

func InvalidReference(err error, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidReference, Message: fmt.Sprintf(format, args...), Err: err}
}

func Conflict(err error, format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf reports the kind of the first *Error in err's chain.
// Errors without one are unexpected.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf returns the client-facing message of err, or "" when err has no kind.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ""
}
