// ABOUTME: Proposal lifecycle methods for the /proposal endpoints
// ABOUTME: Covers save, AI generation, drafts, preview and binary export

package api

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// Proposal template types accepted by Generate.
const (
	TemplateFull      = "full"
	TemplateExecutive = "executive"
	TemplateTechnical = "technical"
)

// Export formats accepted by ExportProposal.
const (
	ExportPDF  = "pdf"
	ExportDOCX = "docx"
	ExportPPTX = "pptx"
)

// ProposalSection is one ordered section of a proposal document.
type ProposalSection struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Order    int    `json:"order"`
	Required bool   `json:"required"`
}

// Proposal is a saved proposal document.
type Proposal struct {
	ID             int               `json:"id"`
	ProjectID      int               `json:"project_id"`
	Title          string            `json:"title"`
	Sections       []ProposalSection `json:"sections"`
	TemplateType   string            `json:"template_type"`
	LastExportedAt *Timestamp        `json:"last_exported_at"`
	ExportFormat   string            `json:"export_format"`
	CreatedAt      Timestamp         `json:"created_at"`
	UpdatedAt      Timestamp         `json:"updated_at"`
}

// ProposalCreate is the payload for saving a proposal. Saving a second
// proposal for the same project updates the existing one.
type ProposalCreate struct {
	ProjectID    int               `json:"project_id"`
	Title        string            `json:"title,omitempty"`
	Sections     []ProposalSection `json:"sections,omitempty"`
	TemplateType string            `json:"template_type,omitempty"`
}

// ProposalUpdate carries partial edits. Nil fields are left unchanged.
type ProposalUpdate struct {
	Title        *string           `json:"title,omitempty"`
	Sections     []ProposalSection `json:"sections,omitempty"`
	TemplateType *string           `json:"template_type,omitempty"`
}

// ProposalGenerateRequest asks the backend to draft a proposal from the
// project's saved insights.
type ProposalGenerateRequest struct {
	ProjectID    int    `json:"project_id"`
	TemplateType string `json:"template_type,omitempty"`
	UseInsights  *bool  `json:"use_insights,omitempty"`
}

// ProposalSaveDraftRequest replaces a proposal's sections in place.
type ProposalSaveDraftRequest struct {
	ProposalID int               `json:"proposal_id"`
	Sections   []ProposalSection `json:"sections"`
	Title      string            `json:"title,omitempty"`
}

// ProposalPreview is the rendered summary of a proposal.
type ProposalPreview struct {
	ProposalID   int               `json:"proposal_id"`
	Title        string            `json:"title"`
	Sections     []ProposalSection `json:"sections"`
	TemplateType string            `json:"template_type"`
	WordCount    int               `json:"word_count"`
	SectionCount int               `json:"section_count"`
}

// Export is a downloaded proposal document.
type Export struct {
	Format      string
	Filename    string
	ContentType string
	Data        []byte
}

// SaveProposal creates a proposal, or updates the project's existing one.
func (c *Client) SaveProposal(ctx context.Context, req ProposalCreate) (*Proposal, error) {
	var p Proposal
	if err := c.request(ctx, http.MethodPost, "/proposal/save", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GenerateProposal drafts a proposal with AI from the project's insights.
// Generation is synchronous and can take a while; pass a context with a
// generous deadline.
func (c *Client) GenerateProposal(ctx context.Context, req ProposalGenerateRequest) (*Proposal, error) {
	var p Proposal
	if err := c.request(ctx, http.MethodPost, "/proposal/generate", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProposal fetches a proposal by id.
func (c *Client) GetProposal(ctx context.Context, id int) (*Proposal, error) {
	var p Proposal
	if err := c.request(ctx, http.MethodGet, fmt.Sprintf("/proposal/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProposalByProject fetches the proposal belonging to a project. A
// project without a proposal is a normal state, not a failure, so a missing
// proposal returns (nil, nil).
func (c *Client) GetProposalByProject(ctx context.Context, projectID int) (*Proposal, error) {
	var p Proposal
	err := c.request(ctx, http.MethodGet, fmt.Sprintf("/proposal/project/%d", projectID), nil, &p)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// UpdateProposal applies a partial edit to a proposal.
func (c *Client) UpdateProposal(ctx context.Context, id int, req ProposalUpdate) (*Proposal, error) {
	var p Proposal
	if err := c.request(ctx, http.MethodPut, fmt.Sprintf("/proposal/%d", id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProposalDraft replaces the sections of an existing proposal.
func (c *Client) SaveProposalDraft(ctx context.Context, req ProposalSaveDraftRequest) (*Proposal, error) {
	var p Proposal
	if err := c.request(ctx, http.MethodPost, "/proposal/save-draft", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// PreviewProposal fetches the rendered preview of a proposal.
func (c *Client) PreviewProposal(ctx context.Context, id int) (*ProposalPreview, error) {
	var preview ProposalPreview
	if err := c.request(ctx, http.MethodGet, fmt.Sprintf("/proposal/%d/preview", id), nil, &preview); err != nil {
		return nil, err
	}
	return &preview, nil
}

// ExportProposal downloads a proposal rendered as pdf, docx or pptx. The
// response body is the document itself, so this path sends the current
// access token once and does not participate in refresh-and-retry.
func (c *Client) ExportProposal(ctx context.Context, proposalID int, format string) (*Export, error) {
	endpoint := fmt.Sprintf("/proposal/export/%s?proposal_id=%d", format, proposalID)
	req, err := c.bearerRequest(ctx, http.MethodGet, endpoint, nil, "")
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Detail: "sending request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, errorFromResponse(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Detail: "reading export body", Err: err}
	}

	export := &Export{
		Format:      format,
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}
	if disposition := resp.Header.Get("Content-Disposition"); disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			export.Filename = params["filename"]
		}
	}
	if export.Filename == "" {
		export.Filename = fmt.Sprintf("proposal_%d.%s", proposalID, format)
	}
	return export, nil
}
