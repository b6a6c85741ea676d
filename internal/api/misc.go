// ABOUTME: Notifications, cross-entity search and backend health checks

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Notification is one user-facing event message.
type Notification struct {
	ID        int            `json:"id"`
	UserID    int            `json:"user_id"`
	Message   string         `json:"message"`
	IsRead    bool           `json:"is_read"`
	CreatedAt Timestamp      `json:"created_at"`
	Metadata  map[string]any `json:"metadata"`
}

// SearchResult is one hit from cross-entity search.
type SearchResult struct {
	Type    string `json:"type"`
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

type searchResponse struct {
	Results []SearchResult `json:"results"`
}

// HealthStatus reports backend liveness.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ListNotifications returns the user's most recent notifications, newest
// first. A limit of zero uses the backend default.
func (c *Client) ListNotifications(ctx context.Context, limit int) ([]Notification, error) {
	endpoint := "/notifications"
	if limit > 0 {
		endpoint = fmt.Sprintf("/notifications?limit=%d", limit)
	}
	var notes []Notification
	if err := c.request(ctx, http.MethodGet, endpoint, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int) error {
	return c.request(ctx, http.MethodPut, fmt.Sprintf("/notifications/%d/read", id), nil, nil)
}

// MarkAllNotificationsRead marks every unread notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.request(ctx, http.MethodPut, "/notifications/read-all", nil, nil)
}

// Search runs a cross-entity search over projects, case studies and
// proposals.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	var resp searchResponse
	endpoint := "/search?q=" + url.QueryEscape(query)
	if err := c.request(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Health checks backend liveness. It is unauthenticated but still goes
// through the shared request routine, so a stale token does not break it.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.request(ctx, http.MethodGet, "/health", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
