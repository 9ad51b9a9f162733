package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a stable, machine-readable error code surfaced to API clients.
type Code string

const (
	CodeNotFound      Code = "NOT_FOUND"
	CodeForbidden     Code = "FORBIDDEN"
	CodeInvalidState  Code = "INVALID_STATE"
	CodePrecondition  Code = "PRECONDITION_FAILED"
	CodePaymentFailed Code = "PAYMENT_FAILED"
	CodeInconsistent  Code = "INCONSISTENT"
	CodeInternal      Code = "INTERNAL"
)

// Error is the application error type used across services. Controllers map
// it to an HTTP status; everything else is surfaced as a generic 500.
type Error struct {
	Code    Code
	Message string
	Status  int
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// WithCause attaches an underlying error for logging without changing what
// the client sees.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Status: e.Status, cause: err}
}

func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg, Status: http.StatusNotFound}
}

func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg, Status: http.StatusForbidden}
}

func InvalidState(msg string) *Error {
	return &Error{Code: CodeInvalidState, Message: msg, Status: http.StatusBadRequest}
}

func Precondition(msg string) *Error {
	return &Error{Code: CodePrecondition, Message: msg, Status: http.StatusBadRequest}
}

func PaymentFailed(msg string) *Error {
	return &Error{Code: CodePaymentFailed, Message: msg, Status: http.StatusPaymentRequired}
}

// Inconsistent marks internal data inconsistencies (e.g. a cart snapshot
// referencing a menu item that no longer exists). Not user-correctable.
func Inconsistent(msg string) *Error {
	return &Error{Code: CodeInconsistent, Message: msg, Status: http.StatusInternalServerError}
}

func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg, Status: http.StatusInternalServerError}
}

// As unwraps err into an *Error, or nil if it is not one.
func As(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsCode reports whether err is an application error with the given code.
func IsCode(err error, code Code) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
