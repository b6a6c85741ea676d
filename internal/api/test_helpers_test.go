// ABOUTME: Shared helpers for the api package tests
// ABOUTME: Builds clients against httptest servers with in-memory sessions

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/novaintel/nova-cli/internal/session"
)

// setupTestClient starts a backend stub and returns a client wired to it.
func setupTestClient(t *testing.T, handler http.Handler) (*Client, *session.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := session.NewMemoryStore()
	return New(srv.URL, store), store
}

// loggedIn seeds the store with a token pair.
func loggedIn(t *testing.T, store *session.MemoryStore, access, refresh string) {
	t.Helper()
	if err := store.Save(session.Tokens{Access: access, Refresh: refresh}); err != nil {
		t.Fatalf("seeding session: %v", err)
	}
}

// writeJSON writes v as a JSON response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail writes a FastAPI-style error body.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// tokenPair writes a refresh/login response.
func tokenPair(w http.ResponseWriter, access, refresh string) {
	writeJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	})
}

// failingStore errors on every Load, standing in for an unreadable session
// file.
type failingStore struct{}

func newFailingStore() *failingStore { return &failingStore{} }

func (*failingStore) Load() (session.Tokens, error) {
	return session.Tokens{}, errors.New("session unreadable")
}
func (*failingStore) Save(session.Tokens) error { return nil }
func (*failingStore) Clear() error              { return nil }
