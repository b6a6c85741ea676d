// ABOUTME: Retrieval-index lifecycle and RFP chat methods for the /rag endpoints
// ABOUTME: ChatWithRFP never fails; backend errors collapse into the response payload

package api

import (
	"context"
	"fmt"
	"net/http"
)

// BuildIndexRequest identifies the uploaded document to index.
type BuildIndexRequest struct {
	RFPDocumentID int `json:"rfp_document_id"`
}

// BuildIndexResponse reports the indexing outcome.
type BuildIndexResponse struct {
	Success    bool   `json:"success"`
	ChunkCount int    `json:"chunk_count"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

// IndexStatus reports whether a project's retrieval index is queryable.
type IndexStatus struct {
	ProjectID  int    `json:"project_id"`
	Status     string `json:"status"`
	ChunkCount int    `json:"chunk_count"`
}

// Ready reports whether the index can serve queries.
func (s IndexStatus) Ready() bool {
	return s.Status == "ready"
}

// Source is one retrieved context chunk backing an answer.
type Source struct {
	ChunkIndex int            `json:"chunk_index"`
	Metadata   map[string]any `json:"metadata"`
	Score      *float64       `json:"score"`
}

// QueryRequest retrieves raw context without generating an answer.
type QueryRequest struct {
	ProjectID int    `json:"project_id"`
	Query     string `json:"query"`
	TopK      int    `json:"top_k,omitempty"`
}

// QueryResponse carries the retrieved chunks.
type QueryResponse struct {
	Success bool     `json:"success"`
	Results []Source `json:"results"`
	Query   string   `json:"query"`
	Error   string   `json:"error"`
}

// ChatTurn is one message of prior conversation context.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest asks a question against a project's indexed RFP.
type ChatRequest struct {
	ProjectID           int        `json:"project_id"`
	Query               string     `json:"query"`
	ConversationHistory []ChatTurn `json:"conversation_history,omitempty"`
	TopK                int        `json:"top_k,omitempty"`
}

// ChatResponse is the answer payload. Answer and Response always carry the
// same text; both exist because the backend has supplied either field name.
type ChatResponse struct {
	Success     bool     `json:"success"`
	Answer      string   `json:"answer"`
	Response    string   `json:"response"`
	Sources     []Source `json:"sources"`
	ContextUsed int      `json:"context_used"`
	Query       string   `json:"query"`
	Error       string   `json:"error"`
}

// chatWire is the raw backend shape. Success is a pointer so an omitted flag
// can be distinguished from an explicit false.
type chatWire struct {
	Success     *bool    `json:"success"`
	Answer      string   `json:"answer"`
	Response    string   `json:"response"`
	Sources     []Source `json:"sources"`
	ContextUsed int      `json:"context_used"`
	Query       string   `json:"query"`
	Error       string   `json:"error"`
}

// BuildIndex builds the vector index for an uploaded RFP document.
func (c *Client) BuildIndex(ctx context.Context, req BuildIndexRequest) (*BuildIndexResponse, error) {
	var resp BuildIndexResponse
	if err := c.request(ctx, http.MethodPost, "/rag/build-index", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetIndexStatus reports the state of a project's retrieval index.
func (c *Client) GetIndexStatus(ctx context.Context, projectID int) (*IndexStatus, error) {
	var status IndexStatus
	if err := c.request(ctx, http.MethodGet, fmt.Sprintf("/rag/status/%d", projectID), nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// QueryRAG retrieves the context chunks most relevant to a query.
func (c *Client) QueryRAG(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	var resp QueryResponse
	if err := c.request(ctx, http.MethodPost, "/rag/query", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChatWithRFP asks a question against the project's RFP. It never returns an
// error: any failure, transport or backend, resolves to a response with
// Success false, the failure message in Error, and the query echoed back, so
// callers can render the exchange without a separate failure path.
func (c *Client) ChatWithRFP(ctx context.Context, req ChatRequest) *ChatResponse {
	var wire chatWire
	if err := c.request(ctx, http.MethodPost, "/rag/chat", req, &wire); err != nil {
		return &ChatResponse{
			Success: false,
			Error:   err.Error(),
			Answer:  "",
			Sources: []Source{},
			Query:   req.Query,
		}
	}

	resp := &ChatResponse{
		Success:     wire.Success == nil || *wire.Success,
		Answer:      wire.Answer,
		Response:    wire.Response,
		Sources:     wire.Sources,
		ContextUsed: wire.ContextUsed,
		Query:       wire.Query,
		Error:       wire.Error,
	}
	// Whichever field the backend filled, populate both.
	if resp.Answer == "" {
		resp.Answer = resp.Response
	}
	if resp.Response == "" {
		resp.Response = resp.Answer
	}
	if resp.Sources == nil {
		resp.Sources = []Source{}
	}
	if resp.Query == "" {
		resp.Query = req.Query
	}
	return resp
}
