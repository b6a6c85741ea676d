// ABOUTME: Core authenticated HTTP client shared by every NovaIntel API method
// ABOUTME: Attaches bearer credentials and retries once after a token refresh on 401/403

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/novaintel/nova-cli/internal/session"
)

// DefaultBaseURL is the local development backend address.
const DefaultBaseURL = "http://localhost:8000"

// maxErrorBody caps how much of an error response is read when extracting the
// detail message.
const maxErrorBody = 64 * 1024

// Client is a typed client for the NovaIntel backend. Construct it once with
// New and share it; it is safe for concurrent use. Token storage is injected
// so embedders and tests can substitute their own.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    session.Store
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTimeout sets a per-request timeout on the underlying HTTP client.
// The zero default leaves calls bounded only by their context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a client for the backend at baseURL using store for the
// persisted token pair.
func New(baseURL string, store session.Store, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		session:    store,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request is the shared JSON request routine. It attaches the stored access
// token when present, and on 401/403 runs the refresh-and-retry sequence.
// Success decodes a JSON body into out; non-JSON success bodies (204-style
// responses) leave out at its zero value.
func (c *Client) request(ctx context.Context, method, endpoint string, body, out any) error {
	tokens, err := c.session.Load()
	if err != nil {
		// An unreadable session counts as no session; the backend decides
		// whether the request needed one.
		tokens = session.Tokens{}
	}

	resp, err := c.do(ctx, method, endpoint, body, tokens.Access)
	if err != nil {
		return &Error{Kind: KindTransport, Detail: "request failed", Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		discard(resp)
		return c.refreshAndRetry(ctx, method, endpoint, body, out, tokens)
	}

	return consume(resp, out)
}

// refreshAndRetry handles the auth-failure branch: exactly one token refresh
// followed by exactly one retry of the original request. Every terminal
// failure clears the stored pair.
func (c *Client) refreshAndRetry(ctx context.Context, method, endpoint string, body, out any, tokens session.Tokens) error {
	if tokens.Access == "" || tokens.Refresh == "" {
		_ = c.session.Clear()
		return &Error{Kind: KindAuthRequired, Status: http.StatusUnauthorized, Detail: "authentication required"}
	}

	fresh, err := c.refreshTokens(ctx, tokens.Refresh)
	if err != nil {
		_ = c.session.Clear()
		return &Error{Kind: KindSessionExpired, Detail: "session expired", Err: err}
	}
	if err := c.session.Save(fresh); err != nil {
		_ = c.session.Clear()
		return &Error{Kind: KindSessionExpired, Detail: "session expired", Err: err}
	}

	resp, err := c.do(ctx, method, endpoint, body, fresh.Access)
	if err != nil {
		_ = c.session.Clear()
		return &Error{Kind: KindSessionExpired, Detail: "session expired", Err: err}
	}
	if resp.StatusCode >= 400 {
		// The retry is not given a second chance, whatever the status.
		status := resp.StatusCode
		discard(resp)
		_ = c.session.Clear()
		return &Error{Kind: KindSessionExpired, Status: status, Detail: "session expired"}
	}

	return consume(resp, out)
}

// refreshTokens exchanges the refresh token for a new pair. This deliberately
// bypasses the generic request routine so a rejected refresh can never
// recurse into another refresh.
func (c *Client) refreshTokens(ctx context.Context, refreshToken string) (session.Tokens, error) {
	payload, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return session.Tokens{}, fmt.Errorf("encoding refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(payload))
	if err != nil {
		return session.Tokens{}, fmt.Errorf("building refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return session.Tokens{}, fmt.Errorf("refresh call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return session.Tokens{}, fmt.Errorf("refresh rejected: %s", resp.Status)
	}

	var tr TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return session.Tokens{}, fmt.Errorf("decoding refresh response: %w", err)
	}
	if tr.AccessToken == "" || tr.RefreshToken == "" {
		return session.Tokens{}, fmt.Errorf("refresh response missing token pair")
	}

	return session.Tokens{Access: tr.AccessToken, Refresh: tr.RefreshToken}, nil
}

// do issues a single JSON HTTP request, attaching the bearer credential when
// one is held.
func (c *Client) do(ctx context.Context, method, endpoint string, body any, accessToken string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	return c.httpClient.Do(req)
}

// bearerRequest builds a non-JSON request (multipart upload, binary export)
// with the stored access token attached. These paths share the bearer and
// error-body contract but never trigger a refresh.
func (c *Client) bearerRequest(ctx context.Context, method, endpoint string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	tokens, err := c.session.Load()
	if err == nil && tokens.Access != "" {
		req.Header.Set("Authorization", "Bearer "+tokens.Access)
	}
	return req, nil
}

// consume finishes a response: backend failures become *Error values, JSON
// success bodies decode into out, and anything else (204-style, non-JSON
// content types) resolves to out's zero value.
func consume(resp *http.Response, out any) error {
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp)
	}

	ct := resp.Header.Get("Content-Type")
	if out == nil || !strings.Contains(ct, "application/json") {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindTransport, Detail: "decoding response", Err: err}
	}
	return nil
}

// errorFromResponse extracts the backend's detail message, falling back to a
// message synthesized from the status line.
func errorFromResponse(resp *http.Response) *Error {
	kind := KindBackend
	if resp.StatusCode == http.StatusNotFound {
		kind = KindNotFound
	}

	var detail string
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil {
		var payload struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &payload) == nil {
			detail = payload.Detail
		}
	}
	if detail == "" {
		detail = fmt.Sprintf("request failed: %s", resp.Status)
	}

	return &Error{Kind: kind, Status: resp.StatusCode, Detail: detail}
}

// discard drains and closes a response body so the connection can be reused.
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()
}
