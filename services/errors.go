package services

import (
	"errors"
	"net/http"
)

type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindCapacity
	KindInvalidState
	KindInternal
)

// Error is a domain failure the boundary layer translates into an HTTP
// status plus `{success:false, message}` payload.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindCapacity, KindInvalidState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NewValidationError(message string) *Error   { return newError(KindValidation, message) }
func NewUnauthorizedError(message string) *Error { return newError(KindUnauthorized, message) }
func NewForbiddenError(message string) *Error    { return newError(KindForbidden, message) }
func NewNotFoundError(message string) *Error     { return newError(KindNotFound, message) }
func NewConflictError(message string) *Error     { return newError(KindConflict, message) }
func NewCapacityError(message string) *Error     { return newError(KindCapacity, message) }
func NewInvalidStateError(message string) *Error { return newError(KindInvalidState, message) }

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}

// StatusOf maps any error to an HTTP status, defaulting to 500 for
// non-domain failures such as store errors.
func StatusOf(err error) int {
	var de *Error
	if errors.As(err, &de) {
		return de.HTTPStatus()
	}
	return http.StatusInternalServerError
}
