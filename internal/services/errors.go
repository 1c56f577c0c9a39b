package services

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies service failures so the HTTP layer can pick a status
// without parsing messages.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a failure the caller can act on. Message is safe to show to users.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

// Is matches another *Error of the same kind. A target without a message
// (the Err* kind sentinels) matches any error of that kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Kind sentinels, for errors.Is.
var (
	ErrValidation   = &Error{Kind: KindValidation}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrConflict     = &Error{Kind: KindConflict}
)

var (
	ErrUserAlreadyExists  = &Error{Kind: KindConflict, Message: "User already exists"}
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "Invalid credentials"}
	ErrUserNotFound       = &Error{Kind: KindNotFound, Message: "User not found"}
	ErrTokenRevoked       = &Error{Kind: KindUnauthorized, Message: "Token has been revoked"}
	ErrInvalidToken       = &Error{Kind: KindUnauthorized, Message: "Invalid or expired token"}
	// ErrUnknownSubject rejects a well-signed token whose user is gone.
	ErrUnknownSubject = &Error{Kind: KindUnauthorized, Message: "User not found"}
)

// KindOf reports the kind of err, or KindInternal for errors that did not
// originate here.
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}
