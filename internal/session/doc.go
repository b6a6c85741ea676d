// Package session stores the access/refresh token pair for the nova CLI.
//
// # Token Pair
//
// The backend issues an access token and a refresh token together at login.
// They are persisted and cleared as a unit; a pair with either half missing
// is treated as no session at all.
//
// # Stores
//
//   - FileStore: JSON file under the XDG config dir, written with 0600
//     permissions. This is what the CLI uses.
//   - MemoryStore: In-memory store for tests.
//
// # Token Inspection
//
// Inspect decodes a JWT access token without verifying its signature, for
// display purposes only (whoami, status). The backend remains the sole
// authority on token validity; an opaque token yields ErrNotJWT.
package session
