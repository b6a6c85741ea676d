// ABOUTME: Multipart RFP document upload, outside the JSON request routine
// ABOUTME: Attaches the bearer token but never participates in refresh-and-retry

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// UploadResult is the backend's record of a stored RFP document. The
// RFPDocumentID is what /rag/build-index and /agents/run-all take.
type UploadResult struct {
	ID            int       `json:"id"`
	Filename      string    `json:"filename"`
	FileSize      int64     `json:"file_size"`
	FileType      string    `json:"file_type"`
	UploadedAt    Timestamp `json:"uploaded_at"`
	Message       string    `json:"message"`
	RFPDocumentID int       `json:"rfp_document_id"`
}

// UploadRFP uploads an RFP document into a project. The file content is read
// fully into the multipart body before sending.
//
// Unlike the JSON methods, an expired access token here fails immediately:
// upload does not attempt a refresh.
func (c *Client) UploadRFP(ctx context.Context, projectID int, filename string, content io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Detail: "building multipart body", Err: err}
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, &Error{Kind: KindTransport, Detail: "reading file content", Err: err}
	}
	if err := writer.Close(); err != nil {
		return nil, &Error{Kind: KindTransport, Detail: "finalizing multipart body", Err: err}
	}

	endpoint := "/upload/rfp?" + url.Values{"project_id": {fmt.Sprint(projectID)}}.Encode()
	req, err := c.bearerRequest(ctx, http.MethodPost, endpoint, &buf, writer.FormDataContentType())
	if err != nil {
		return nil, &Error{Kind: KindTransport, Detail: "building upload request", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Detail: "upload failed", Err: err}
	}

	var result UploadResult
	if err := consume(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
