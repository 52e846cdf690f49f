package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// ConnectivityMessage is the user-facing fallback when the backend cannot be reached
	// or answers with something that is not the expected JSON.
	ConnectivityMessage = "Could not reach the backend. Check that the backend is running, reachable and returns valid JSON."
	// SessionStoreMessage describes session persistence failures.
	SessionStoreMessage = "session storage operation failed"
)

// Kind classifies a failure so callers never branch on transport status codes.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindRejected     Kind = "rejected"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindServer       Kind = "server"
	KindConnectivity Kind = "connectivity"
	KindInternal     Kind = "internal"
)

// Error wraps an underlying error with a kind, the HTTP status (0 when no response
// was received) and a message that is safe to show to the user.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error with the provided information.
func New(kind Kind, status int, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		Status:  status,
		Message: message,
		Err:     err,
	}
}

// Validation reports bad input caught before any request is made.
func Validation(message string) *Error {
	return New(KindValidation, 0, message, nil)
}

// Unauthorized reports a missing or expired session.
func Unauthorized(message string) *Error {
	return New(KindUnauthorized, 0, message, nil)
}

// Conflict reports a mutation refused because it would duplicate existing state.
func Conflict(message string) *Error {
	return New(KindConflict, 0, message, nil)
}

// Connectivity wraps transport and decoding failures.
func Connectivity(err error) *Error {
	return New(KindConnectivity, 0, ConnectivityMessage, err)
}

// FromStatus maps an HTTP failure status and the server's message to an Error.
func FromStatus(status int, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	return New(KindFromStatus(status), status, message, nil)
}

// KindFromStatus returns the Kind for an HTTP failure status.
func KindFromStatus(status int) Kind {
	switch {
	case status == http.StatusBadRequest:
		return KindRejected
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindUnauthorized
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	default:
		return KindServer
	}
}

// KindOf returns the Kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf returns the user-facing message carried by err, or fallback.
func MessageOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}

// Is reports whether the target matches the underlying error.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to Error or the wrapped error in a chain.
func (e *Error) As(target any) bool {
	if t, ok := target.(**Error); ok {
		*t = e
		return true
	}
	return errors.As(e.Err, target)
}
