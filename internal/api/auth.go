// ABOUTME: Credential lifecycle and profile methods: login, register, logout, me, settings
// ABOUTME: Login and register persist the returned token pair; logout clears it

package api

import (
	"context"
	"net/http"

	"github.com/novaintel/nova-cli/internal/session"
)

// TokenResponse is the credential pair issued on login, register, and refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// LoginRequest carries the login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries the fields for account creation.
type RegisterRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// User is the authenticated account's profile.
type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// ProfileUpdate carries a partial profile update.
type ProfileUpdate struct {
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// UserSettings holds the account preferences.
type UserSettings struct {
	ProposalTone     string `json:"proposal_tone"`
	AIResponseStyle  string `json:"ai_response_style"`
	SecureMode       bool   `json:"secure_mode"`
	AutoSaveInsights bool   `json:"auto_save_insights"`
	ThemePreference  string `json:"theme_preference"`
}

// Login authenticates with email and password and persists the returned
// token pair.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var tr TokenResponse
	if err := c.request(ctx, http.MethodPost, "/auth/login", req, &tr); err != nil {
		return nil, err
	}
	if err := c.session.Save(session.Tokens{Access: tr.AccessToken, Refresh: tr.RefreshToken}); err != nil {
		return nil, &Error{Kind: KindTransport, Detail: "persisting session", Err: err}
	}
	return &tr, nil
}

// Register creates an account and persists the returned token pair.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	var tr TokenResponse
	if err := c.request(ctx, http.MethodPost, "/auth/register", req, &tr); err != nil {
		return nil, err
	}
	if err := c.session.Save(session.Tokens{Access: tr.AccessToken, Refresh: tr.RefreshToken}); err != nil {
		return nil, &Error{Kind: KindTransport, Detail: "persisting session", Err: err}
	}
	return &tr, nil
}

// Logout clears the stored token pair. The backend keeps no server-side
// session, so this is purely local.
func (c *Client) Logout() error {
	return c.session.Clear()
}

// GetCurrentUser fetches the authenticated account's profile.
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var u User
	if err := c.request(ctx, http.MethodGet, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile applies a partial profile update.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	var u User
	if err := c.request(ctx, http.MethodPut, "/auth/me", update, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetSettings fetches the account preferences.
func (c *Client) GetSettings(ctx context.Context) (*UserSettings, error) {
	var s UserSettings
	if err := c.request(ctx, http.MethodGet, "/auth/me/settings", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSettings replaces the account preferences.
func (c *Client) UpdateSettings(ctx context.Context, settings UserSettings) (*UserSettings, error) {
	var s UserSettings
	if err := c.request(ctx, http.MethodPut, "/auth/me/settings", settings, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
