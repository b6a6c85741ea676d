// ABOUTME: Case-study corpus management for the /case-studies endpoints
// ABOUTME: Includes the supporting document upload used to seed new entries

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// CaseStudy is one entry in the reusable case-study corpus.
type CaseStudy struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Industry    string    `json:"industry"`
	Impact      string    `json:"impact"`
	Description string    `json:"description"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

// CaseStudyCreate is the payload for a new case study.
type CaseStudyCreate struct {
	Title       string `json:"title"`
	Industry    string `json:"industry"`
	Impact      string `json:"impact"`
	Description string `json:"description,omitempty"`
}

// CaseStudyUpdate carries partial edits. Nil fields are left unchanged.
type CaseStudyUpdate struct {
	Title       *string `json:"title,omitempty"`
	Industry    *string `json:"industry,omitempty"`
	Impact      *string `json:"impact,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CaseStudyDocument is an uploaded source document attached to the corpus.
type CaseStudyDocument struct {
	ID         int       `json:"id"`
	Filename   string    `json:"filename"`
	FileSize   int64     `json:"file_size"`
	FileType   string    `json:"file_type"`
	UploadedAt Timestamp `json:"uploaded_at"`
}

// ListCaseStudies returns the full corpus.
func (c *Client) ListCaseStudies(ctx context.Context) ([]CaseStudy, error) {
	var studies []CaseStudy
	if err := c.request(ctx, http.MethodGet, "/case-studies", nil, &studies); err != nil {
		return nil, err
	}
	return studies, nil
}

// CreateCaseStudy adds an entry to the corpus.
func (c *Client) CreateCaseStudy(ctx context.Context, req CaseStudyCreate) (*CaseStudy, error) {
	var study CaseStudy
	if err := c.request(ctx, http.MethodPost, "/case-studies", req, &study); err != nil {
		return nil, err
	}
	return &study, nil
}

// GetCaseStudy fetches one entry by id.
func (c *Client) GetCaseStudy(ctx context.Context, id int) (*CaseStudy, error) {
	var study CaseStudy
	if err := c.request(ctx, http.MethodGet, fmt.Sprintf("/case-studies/%d", id), nil, &study); err != nil {
		return nil, err
	}
	return &study, nil
}

// UpdateCaseStudy applies a partial edit to one entry.
func (c *Client) UpdateCaseStudy(ctx context.Context, id int, req CaseStudyUpdate) (*CaseStudy, error) {
	var study CaseStudy
	if err := c.request(ctx, http.MethodPut, fmt.Sprintf("/case-studies/%d", id), req, &study); err != nil {
		return nil, err
	}
	return &study, nil
}

// DeleteCaseStudy removes one entry.
func (c *Client) DeleteCaseStudy(ctx context.Context, id int) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("/case-studies/%d", id), nil, nil)
}

// ListCaseStudyDocuments returns the uploaded source documents.
func (c *Client) ListCaseStudyDocuments(ctx context.Context) ([]CaseStudyDocument, error) {
	var docs []CaseStudyDocument
	if err := c.request(ctx, http.MethodGet, "/case-study-documents", nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// UploadCaseStudyDocument uploads a source document as multipart form data.
// Like UploadRFP it sends the current access token once and does not
// participate in refresh-and-retry.
func (c *Client) UploadCaseStudyDocument(ctx context.Context, filename string, content io.Reader) (*CaseStudyDocument, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Detail: "building multipart body", Err: err}
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, &Error{Kind: KindTransport, Detail: "reading upload content", Err: err}
	}
	if err := writer.Close(); err != nil {
		return nil, &Error{Kind: KindTransport, Detail: "building multipart body", Err: err}
	}

	req, err := c.bearerRequest(ctx, http.MethodPost, "/case-study-documents/upload", &buf, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Detail: "sending request", Err: err}
	}

	var doc CaseStudyDocument
	if err := consume(resp, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteCaseStudyDocument removes an uploaded source document.
func (c *Client) DeleteCaseStudyDocument(ctx context.Context, id int) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("/case-study-documents/%d", id), nil, nil)
}
