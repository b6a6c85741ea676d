// ABOUTME: Tests for the shared request routine and refresh-and-retry sequence
// ABOUTME: Covers bearer attach, single-retry limits, and session clearing on terminal failures

package api

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, store := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, HealthStatus{Status: "ok"})
	}))
	loggedIn(t, store, "access-1", "refresh-1")

	_, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer access-1", gotAuth)
}

func TestRequest_NoTokenNoAuthHeader(t *testing.T) {
	var hadAuth bool
	client, _ := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hadAuth = r.Header.Get("Authorization") != ""
		writeJSON(w, http.StatusOK, HealthStatus{Status: "ok"})
	}))

	_, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.False(t, hadAuth)
}

func TestRequest_UnauthenticatedSkipsRefresh(t *testing.T) {
	var refreshCalls atomic.Int32
	client, _ := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			refreshCalls.Add(1)
		}
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
	}))

	_, err := client.GetCurrentUser(context.Background())
	require.Error(t, err)
	assert.True(t, IsAuthRequired(err))
	assert.Equal(t, int32(0), refreshCalls.Load())
}

func TestRequest_RefreshAndRetrySucceeds(t *testing.T) {
	var refreshCalls, meCalls atomic.Int32
	client, store := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			refreshCalls.Add(1)
			tokenPair(w, "access-new", "refresh-new")
		case "/auth/me":
			meCalls.Add(1)
			if r.Header.Get("Authorization") != "Bearer access-new" {
				writeDetail(w, http.StatusUnauthorized, "Token expired")
				return
			}
			writeJSON(w, http.StatusOK, User{ID: 7, Email: "ada@example.com"})
		default:
			http.NotFound(w, r)
		}
	}))
	loggedIn(t, store, "access-stale", "refresh-1")

	user, err := client.GetCurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, user.ID)
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, int32(2), meCalls.Load())

	// The refreshed pair replaced the stale one.
	tokens, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "access-new", tokens.Access)
	assert.Equal(t, "refresh-new", tokens.Refresh)
}

func TestRequest_RetryFailureIsTerminal(t *testing.T) {
	// The backend refreshes happily but rejects every authenticated call.
	// The client must stop after one refresh and one retry.
	var refreshCalls, meCalls atomic.Int32
	client, store := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			refreshCalls.Add(1)
			tokenPair(w, "access-new", "refresh-new")
			return
		}
		meCalls.Add(1)
		writeDetail(w, http.StatusUnauthorized, "Token expired")
	}))
	loggedIn(t, store, "access-stale", "refresh-1")

	_, err := client.GetCurrentUser(context.Background())
	require.Error(t, err)
	assert.True(t, IsSessionExpired(err))
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, int32(2), meCalls.Load())

	tokens, err := store.Load()
	require.NoError(t, err)
	assert.True(t, tokens.IsZero())
}

func TestRequest_RefreshRejectedClearsSession(t *testing.T) {
	client, store := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			writeDetail(w, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		writeDetail(w, http.StatusUnauthorized, "Token expired")
	}))
	loggedIn(t, store, "access-stale", "refresh-bad")

	_, err := client.GetCurrentUser(context.Background())
	require.Error(t, err)
	assert.True(t, IsSessionExpired(err))

	tokens, err := store.Load()
	require.NoError(t, err)
	assert.True(t, tokens.IsZero())
}

func TestRequest_ForbiddenAlsoTriggersRefresh(t *testing.T) {
	var refreshCalls atomic.Int32
	client, store := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			refreshCalls.Add(1)
			tokenPair(w, "access-new", "refresh-new")
		default:
			if r.Header.Get("Authorization") == "Bearer access-new" {
				writeJSON(w, http.StatusOK, User{ID: 1})
				return
			}
			writeDetail(w, http.StatusForbidden, "Access denied")
		}
	}))
	loggedIn(t, store, "access-stale", "refresh-1")

	_, err := client.GetCurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), refreshCalls.Load())
}

func TestRequest_TransportError(t *testing.T) {
	client := New("http://127.0.0.1:1", nil)
	// No session store is consulted before the dial fails.
	client.session = newFailingStore()

	_, err := client.Health(context.Background())
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindTransport, apiErr.Kind)
}

func TestRequest_BackendErrorDetail(t *testing.T) {
	client, store := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusBadRequest, "Project name is required")
	}))
	loggedIn(t, store, "access-1", "refresh-1")

	_, err := client.CreateProject(context.Background(), ProjectCreate{})
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindBackend, apiErr.Kind)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Project name is required", apiErr.Detail)
}

func TestRequest_NotFoundKind(t *testing.T) {
	client, store := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Project not found")
	}))
	loggedIn(t, store, "access-1", "refresh-1")

	_, err := client.GetProject(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestRequest_NonStringDetailFallsBack(t *testing.T) {
	// FastAPI validation errors carry a list under "detail"; the client must
	// still produce a usable message.
	client, store := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":[{"loc":["body","name"],"msg":"field required"}]}`))
	}))
	loggedIn(t, store, "access-1", "refresh-1")

	_, err := client.CreateProject(context.Background(), ProjectCreate{})
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Detail, "request failed")
}

func TestConsume_NonJSONSuccessLeavesOutZero(t *testing.T) {
	client, store := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	}))
	loggedIn(t, store, "access-1", "refresh-1")

	status, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Empty(t, status.Status)
}

func TestNew_Defaults(t *testing.T) {
	c := New("", nil)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())

	c = New("http://api.example.com/", nil)
	assert.Equal(t, "http://api.example.com", c.BaseURL())
}
