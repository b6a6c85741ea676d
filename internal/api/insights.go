// ABOUTME: Analyzed-insight retrieval and persistence for the /insights endpoints

package api

import (
	"context"
	"fmt"
	"net/http"
)

// Challenge is one business challenge extracted from an RFP.
type Challenge struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Category    string `json:"category"`
}

// Insights is the assembled analysis for a project.
type Insights struct {
	ID                 int                 `json:"id"`
	ProjectID          int                 `json:"project_id"`
	Summary            string              `json:"summary"`
	Challenges         []Challenge         `json:"challenges"`
	ValuePropositions  []string            `json:"value_propositions"`
	DiscoveryQuestions map[string][]string `json:"discovery_questions"`
	Tags               []string            `json:"tags"`
	AIModelUsed        string              `json:"ai_model_used"`
	AnalysisTimestamp  Timestamp           `json:"analysis_timestamp"`
	CreatedAt          Timestamp           `json:"created_at"`
	UpdatedAt          Timestamp           `json:"updated_at"`
}

// InsightsSaveRequest persists generated insights for a project.
type InsightsSaveRequest struct {
	ProjectID          int                 `json:"project_id"`
	Summary            string              `json:"summary"`
	Challenges         []Challenge         `json:"challenges,omitempty"`
	ValuePropositions  []string            `json:"value_propositions,omitempty"`
	DiscoveryQuestions map[string][]string `json:"discovery_questions,omitempty"`
	Tags               []string            `json:"tags,omitempty"`
	AIModelUsed        string              `json:"ai_model_used,omitempty"`
}

// GetInsights fetches the saved insights for a project.
func (c *Client) GetInsights(ctx context.Context, projectID int) (*Insights, error) {
	var ins Insights
	endpoint := fmt.Sprintf("/insights/get?project_id=%d", projectID)
	if err := c.request(ctx, http.MethodGet, endpoint, nil, &ins); err != nil {
		return nil, err
	}
	return &ins, nil
}

// SaveInsights stores insights for a project, replacing existing ones.
func (c *Client) SaveInsights(ctx context.Context, req InsightsSaveRequest) (*Insights, error) {
	var ins Insights
	if err := c.request(ctx, http.MethodPost, "/insights/save", req, &ins); err != nil {
		return nil, err
	}
	return &ins, nil
}
