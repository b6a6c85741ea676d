// ABOUTME: Tests for the tagged error type and kind predicates

package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	err := &Error{Kind: KindBackend, Status: http.StatusBadRequest, Detail: "Project name is required"}
	assert.Equal(t, "backend: Project name is required", err.Error())

	wrapped := &Error{Kind: KindTransport, Detail: "request failed", Err: errors.New("connection refused")}
	assert.Equal(t, "transport: request failed: connection refused", wrapped.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &Error{Kind: KindTransport, Detail: "request failed", Err: cause}
	assert.ErrorIs(t, err, cause)
}

func TestKindPredicates(t *testing.T) {
	notFound := fmt.Errorf("fetching project: %w", &Error{Kind: KindNotFound, Status: 404, Detail: "Project not found"})
	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsAuthRequired(notFound))
	assert.False(t, IsSessionExpired(notFound))

	assert.True(t, IsAuthRequired(&Error{Kind: KindAuthRequired}))
	assert.True(t, IsSessionExpired(&Error{Kind: KindSessionExpired}))

	assert.False(t, IsNotFound(errors.New("plain error")))
	assert.False(t, IsNotFound(nil))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "transport", KindTransport.String())
	assert.Equal(t, "auth_required", KindAuthRequired.String())
	assert.Equal(t, "session_expired", KindSessionExpired.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "backend", KindBackend.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
