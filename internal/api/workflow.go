// ABOUTME: Agent workflow methods for the /agents endpoints
// ABOUTME: Covers run-all kickoff, state retrieval, status polling and debug dumps

package api

import (
	"context"
	"net/http"
	"net/url"
)

// RunWorkflowRequest starts the full analysis pipeline for a project.
type RunWorkflowRequest struct {
	ProjectID     int  `json:"project_id"`
	RFPDocumentID int  `json:"rfp_document_id,omitempty"`
	AutoSave      bool `json:"auto_save,omitempty"`
}

// RunWorkflowResponse reports the pipeline run outcome.
type RunWorkflowResponse struct {
	Success bool           `json:"success"`
	StateID string         `json:"state_id"`
	State   map[string]any `json:"state"`
	Summary string         `json:"summary"`
	Error   string         `json:"error"`
}

// WorkflowStateRequest identifies a stored workflow state.
type WorkflowStateRequest struct {
	StateID string `json:"state_id"`
}

// WorkflowState is the persisted state of a pipeline run.
type WorkflowState struct {
	Success bool           `json:"success"`
	StateID string         `json:"state_id"`
	State   map[string]any `json:"state"`
	Error   string         `json:"error"`
}

// WorkflowStatus is a lightweight progress view used for polling.
type WorkflowStatus struct {
	StateID     string   `json:"state_id"`
	CurrentStep string   `json:"current_step"`
	Completed   bool     `json:"completed"`
	Errors      []string `json:"errors"`
}

// RunWorkflow executes every analysis agent against the project's RFP and
// returns the resulting state. Runs are synchronous and can take minutes;
// pass a context with a generous deadline.
func (c *Client) RunWorkflow(ctx context.Context, req RunWorkflowRequest) (*RunWorkflowResponse, error) {
	var resp RunWorkflowResponse
	if err := c.request(ctx, http.MethodPost, "/agents/run-all", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetWorkflowState fetches the stored state of a previous run.
func (c *Client) GetWorkflowState(ctx context.Context, stateID string) (*WorkflowState, error) {
	var state WorkflowState
	req := WorkflowStateRequest{StateID: stateID}
	if err := c.request(ctx, http.MethodPost, "/agents/get-state", req, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// GetWorkflowStatus reports run progress without the full state payload.
func (c *Client) GetWorkflowStatus(ctx context.Context, stateID string) (*WorkflowStatus, error) {
	var status WorkflowStatus
	endpoint := "/agents/status?state_id=" + url.QueryEscape(stateID)
	if err := c.request(ctx, http.MethodGet, endpoint, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// DebugWorkflow returns the raw agent state for troubleshooting.
func (c *Client) DebugWorkflow(ctx context.Context, stateID string) (map[string]any, error) {
	var dump map[string]any
	endpoint := "/agents/debug?state_id=" + url.QueryEscape(stateID)
	if err := c.request(ctx, http.MethodGet, endpoint, nil, &dump); err != nil {
		return nil, err
	}
	return dump, nil
}
