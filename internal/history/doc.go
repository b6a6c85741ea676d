// Package history provides local persistence for RFP chat transcripts using
// SQLite.
//
// # Architecture
//
// The backend answers each chat question statelessly; the conversation
// transcript exists only on the caller's machine. This package keeps it in a
// SQLite database so the chat command can replay prior turns as context and
// let the user resume a conversation later.
//
// # Data Models
//
//   - Thread: One conversation against a project's RFP
//   - Message: A single user or assistant turn, with retrieval sources for
//     assistant turns stored as JSON
//
// # Storage
//
// SQLiteStore implements the Store interface using modernc.org/sqlite (no
// CGo). The schema is created on open, WAL mode is enabled, and deleting a
// thread cascades to its messages.
package history
