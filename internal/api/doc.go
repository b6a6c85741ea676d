// Package api implements the typed client for the NovaIntel backend.
//
// # Overview
//
// Every backend operation is exposed as a method on Client. All JSON-speaking
// methods delegate to one shared request routine that attaches the stored
// access token as a bearer credential and transparently recovers from
// credential expiry at most once per call: on a 401/403 it exchanges the
// stored refresh token for a new pair, persists it, and retries the original
// request a single time.
//
// # Failure taxonomy
//
// Failures surface as *Error values carrying a Kind:
//
//   - KindAuthRequired: no usable credentials were held; the caller must log in
//   - KindSessionExpired: a refresh was attempted and failed; tokens are cleared
//   - KindNotFound: the backend reported 404
//   - KindBackend: any other backend-reported error, with its detail message
//   - KindTransport: network failure or a malformed response body
//
// # Non-JSON operations
//
// UploadRFP (multipart) and ExportProposal (binary download) attach the same
// bearer credential and share the error-body contract, but they do not
// participate in the refresh-and-retry sequence: an expired token during
// upload or export fails immediately.
//
// # Concurrency
//
// Client is safe for concurrent use. Concurrent calls that each receive a 401
// each attempt their own refresh; refreshes are not coalesced, and token
// storage is last-write-wins.
package api
