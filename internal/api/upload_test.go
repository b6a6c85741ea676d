// ABOUTME: Tests for multipart RFP upload
// ABOUTME: Upload attaches the bearer token once and never refreshes

package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadRFP_SendsMultipart(t *testing.T) {
	client, store := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload/rfp", r.URL.Path)
		assert.Equal(t, "12", r.URL.Query().Get("project_id"))
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer func() { _ = file.Close() }()
		assert.Equal(t, "rfp.pdf", header.Filename)

		content, err := io.ReadAll(file)
		assert.NoError(t, err)
		assert.Equal(t, "fake rfp bytes", string(content))

		writeJSON(w, http.StatusOK, UploadResult{
			ID: 5, Filename: "rfp.pdf", FileSize: 14, RFPDocumentID: 5,
			Message: "File uploaded successfully",
		})
	}))
	loggedIn(t, store, "access-1", "refresh-1")

	result, err := client.UploadRFP(context.Background(), 12, "rfp.pdf", strings.NewReader("fake rfp bytes"))
	require.NoError(t, err)
	assert.Equal(t, 5, result.RFPDocumentID)
}

func TestUploadRFP_UnauthorizedDoesNotRefresh(t *testing.T) {
	var refreshCalls atomic.Int32
	client, store := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			refreshCalls.Add(1)
			tokenPair(w, "access-new", "refresh-new")
			return
		}
		writeDetail(w, http.StatusUnauthorized, "Token expired")
	}))
	loggedIn(t, store, "access-stale", "refresh-1")

	_, err := client.UploadRFP(context.Background(), 12, "rfp.pdf", strings.NewReader("x"))
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, int32(0), refreshCalls.Load())
}

func TestUploadRFP_BackendRejection(t *testing.T) {
	client, store := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusBadRequest, "File type not allowed")
	}))
	loggedIn(t, store, "access-1", "refresh-1")

	_, err := client.UploadRFP(context.Background(), 12, "rfp.exe", strings.NewReader("x"))
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "File type not allowed", apiErr.Detail)
}
