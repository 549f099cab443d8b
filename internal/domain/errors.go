package domain

import (
	"errors"
	"net/http"
)

// Kind classifies a domain error so the HTTP boundary can pick a status
// without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindUnauthenticated
	KindInvalidCredentials
	KindSelfEditConflict
	KindImmutable
	KindRoleMismatch
	KindForbidden
	KindAssignedElsewhere
	KindNotFound
	KindConflict
	KindInvalidProgress
	KindRateLimited
	KindInternal
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// E builds a domain error of the given kind.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the kind from err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// HTTPStatus maps an error kind to its response status.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation, KindInvalidProgress:
		return http.StatusBadRequest
	case KindUnauthenticated, KindInvalidCredentials, KindSelfEditConflict, KindImmutable:
		return http.StatusUnauthorized
	case KindRoleMismatch, KindForbidden, KindAssignedElsewhere:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
