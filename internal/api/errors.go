// ABOUTME: Tagged error type for backend, auth, and transport failures
// ABOUTME: Callers switch on Kind instead of matching message substrings

package api

import (
	"errors"
	"fmt"
)

// Kind classifies a client failure.
type Kind int

const (
	// KindTransport covers network failures and malformed response bodies.
	KindTransport Kind = iota
	// KindAuthRequired means no usable credentials were held for a request
	// that needed them. The session has been cleared.
	KindAuthRequired
	// KindSessionExpired means a token refresh was attempted and failed, or
	// the retry after a successful refresh still failed. The session has been
	// cleared and the user must log in again.
	KindSessionExpired
	// KindNotFound is a backend 404.
	KindNotFound
	// KindBackend is any other backend-reported error.
	KindBackend
)

// String returns the kind name for log and error output.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuthRequired:
		return "auth_required"
	case KindSessionExpired:
		return "session_expired"
	case KindNotFound:
		return "not_found"
	case KindBackend:
		return "backend"
	default:
		return "unknown"
	}
}

// Error is the failure type surfaced by every Client method.
type Error struct {
	Kind   Kind
	Status int    // HTTP status, when a response was received
	Detail string // backend detail message or synthesized description
	Err    error  // underlying cause, for transport errors
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	return hasKind(err, KindNotFound)
}

// IsAuthRequired reports whether err means the caller must authenticate.
func IsAuthRequired(err error) bool {
	return hasKind(err, KindAuthRequired)
}

// IsSessionExpired reports whether err means the session could not be renewed.
func IsSessionExpired(err error) bool {
	return hasKind(err, KindSessionExpired)
}

func hasKind(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}
