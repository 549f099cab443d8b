package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(E(KindNotFound, "gone")))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))

	wrapped := fmt.Errorf("context: %w", E(KindForbidden, "nope"))
	assert.Equal(t, KindForbidden, KindOf(wrapped))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:         http.StatusBadRequest,
		KindInvalidProgress:    http.StatusBadRequest,
		KindUnauthenticated:    http.StatusUnauthorized,
		KindInvalidCredentials: http.StatusUnauthorized,
		KindSelfEditConflict:   http.StatusUnauthorized,
		KindImmutable:          http.StatusUnauthorized,
		KindRoleMismatch:       http.StatusForbidden,
		KindForbidden:          http.StatusForbidden,
		KindAssignedElsewhere:  http.StatusForbidden,
		KindNotFound:           http.StatusNotFound,
		KindConflict:           http.StatusConflict,
		KindRateLimited:        http.StatusTooManyRequests,
		KindUnknown:            http.StatusInternalServerError,
		KindInternal:           http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, HTTPStatus(kind))
	}
}
