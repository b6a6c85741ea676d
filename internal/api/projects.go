// ABOUTME: Project CRUD methods mapping directly onto the /projects endpoints
// ABOUTME: Types mirror the backend's project schema

package api

import (
	"context"
	"fmt"
	"net/http"
)

// Project lifecycle states reported by the backend.
const (
	ProjectStatusDraft      = "draft"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusReview     = "review"
	ProjectStatusCompleted  = "completed"
)

// Project engagement types accepted on creation.
const (
	ProjectTypeNew       = "new"
	ProjectTypeExpansion = "expansion"
	ProjectTypeRenewal   = "renewal"
)

// Project is a presales engagement owned by the authenticated user.
type Project struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	ClientName  string    `json:"client_name"`
	Industry    string    `json:"industry"`
	Region      string    `json:"region"`
	ProjectType string    `json:"project_type"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

// ProjectCreate carries the fields for project creation.
type ProjectCreate struct {
	Name        string `json:"name"`
	ClientName  string `json:"client_name"`
	Industry    string `json:"industry"`
	Region      string `json:"region"`
	ProjectType string `json:"project_type"`
	Description string `json:"description,omitempty"`
}

// ProjectUpdate carries a partial project update; nil fields are untouched.
type ProjectUpdate struct {
	Name        *string `json:"name,omitempty"`
	ClientName  *string `json:"client_name,omitempty"`
	Industry    *string `json:"industry,omitempty"`
	Region      *string `json:"region,omitempty"`
	ProjectType *string `json:"project_type,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// CreateProject creates a new project.
func (c *Client) CreateProject(ctx context.Context, req ProjectCreate) (*Project, error) {
	var p Project
	if err := c.request(ctx, http.MethodPost, "/projects/create", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProjects returns the authenticated user's projects.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.request(ctx, http.MethodGet, "/projects/list", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject fetches a single project.
func (c *Client) GetProject(ctx context.Context, projectID int) (*Project, error) {
	var p Project
	if err := c.request(ctx, http.MethodGet, fmt.Sprintf("/projects/%d", projectID), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProject applies a partial update to a project.
func (c *Client) UpdateProject(ctx context.Context, projectID int, update ProjectUpdate) (*Project, error) {
	var p Project
	if err := c.request(ctx, http.MethodPut, fmt.Sprintf("/projects/%d", projectID), update, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProject removes a project and everything hanging off it.
func (c *Client) DeleteProject(ctx context.Context, projectID int) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", projectID), nil, nil)
}
