// Package apperr defines the error taxonomy shared by services and HTTP handlers.
// Services return *Error values for domain failures; handlers translate the Kind
// into a status code without inspecting messages.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a domain error
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindInvalidCredentials
	KindInvalidToken
	KindExpiredToken
	KindInvalidOrExpiredToken
	KindUserNotFound
	KindUnauthorized
	KindForbidden
	KindNotFound
)

var kindNames = map[Kind]string{
	KindInternal:              "internal",
	KindValidation:            "validation",
	KindConflict:              "conflict",
	KindInvalidCredentials:    "invalid_credentials",
	KindInvalidToken:          "invalid_token",
	KindExpiredToken:          "expired_token",
	KindInvalidOrExpiredToken: "invalid_or_expired_token",
	KindUserNotFound:          "user_not_found",
	KindUnauthorized:          "unauthorized",
	KindForbidden:             "forbidden",
	KindNotFound:              "not_found",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Error is a classified error with a message safe to show to API callers
type Error struct {
	Err     error
	Message string
	Kind    Kind
}

// New creates an error of the given kind
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies err. The cause stays reachable through errors.Unwrap but is
// never part of Message.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Internal wraps an unexpected failure (storage, signing) as KindInternal
func Internal(err error) *Error {
	return Wrap(KindInternal, "internal server error", err)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, apperr.E(KindConflict))
// works regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// E returns a kind-only error usable as an errors.Is target
func E(kind Kind) error {
	return &Error{Kind: kind, Message: kind.String()}
}

// KindOf extracts the Kind of err. Unclassified errors are KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-facing message of err
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "internal server error"
}

// HTTPStatus maps a kind to the response status code
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindInvalidCredentials,
		KindInvalidToken,
		KindExpiredToken,
		KindInvalidOrExpiredToken,
		KindUserNotFound,
		KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
