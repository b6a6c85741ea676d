// ABOUTME: Store interface and data types for local chat history persistence
// ABOUTME: Defines Thread, Message structs for per-project RFP chat transcripts

package history

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// Message roles for chat transcript entries
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Thread is one chat conversation against a project's RFP. Threads live only
// on this machine; the backend keeps no transcript.
type Thread struct {
	ID        string
	ProjectID int
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message is a single exchange entry within a thread. SourcesJSON holds the
// retrieval sources for assistant messages, serialized as JSON.
type Message struct {
	ID          string
	ThreadID    string
	Role        string
	Content     string
	SourcesJSON string
	CreatedAt   time.Time
}

// Store defines the interface for chat transcript persistence
type Store interface {
	// Threads
	CreateThread(ctx context.Context, thread *Thread) error
	GetThread(ctx context.Context, id string) (*Thread, error)
	LatestThread(ctx context.Context, projectID int) (*Thread, error)
	ListThreads(ctx context.Context, projectID int, limit int) ([]*Thread, error)
	TouchThread(ctx context.Context, id string, updatedAt time.Time) error
	DeleteThread(ctx context.Context, id string) error

	// Messages
	SaveMessage(ctx context.Context, msg *Message) error
	ThreadMessages(ctx context.Context, threadID string, limit int) ([]*Message, error)

	// Close closes the store and releases resources
	Close() error
}
