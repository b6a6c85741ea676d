// ABOUTME: Tests for proposal lifecycle methods and binary export
// ABOUTME: A project without a proposal is (nil, nil); export never triggers a refresh

package api

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProposalByProject_MissingIsNil(t *testing.T) {
	client, store := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Proposal not found")
	}))
	loggedIn(t, store, "access-1", "refresh-1")

	p, err := client.GetProposalByProject(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestGetProposalByProject_Found(t *testing.T) {
	client, store := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/proposal/project/3", r.URL.Path)
		writeJSON(w, http.StatusOK, Proposal{ID: 11, ProjectID: 3, Title: "Draft", TemplateType: TemplateFull})
	}))
	loggedIn(t, store, "access-1", "refresh-1")

	p, err := client.GetProposalByProject(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 11, p.ID)
}

func TestGetProposalByProject_OtherErrorsPropagate(t *testing.T) {
	client, store := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusInternalServerError, "boom")
	}))
	loggedIn(t, store, "access-1", "refresh-1")

	p, err := client.GetProposalByProject(context.Background(), 3)
	require.Error(t, err)
	assert.Nil(t, p)
	assert.False(t, IsNotFound(err))
}

func TestGetProposal_MissingIsError(t *testing.T) {
	client, store := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Proposal not found")
	}))
	loggedIn(t, store, "access-1", "refresh-1")

	_, err := client.GetProposal(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestExportProposal_DownloadsBinary(t *testing.T) {
	pdf := []byte("%PDF-1.7 fake")
	client, store := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/proposal/export/pdf", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("proposal_id"))
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="Acme_Proposal.pdf"`)
		_, _ = w.Write(pdf)
	}))
	loggedIn(t, store, "access-1", "refresh-1")

	export, err := client.ExportProposal(context.Background(), 7, ExportPDF)
	require.NoError(t, err)
	assert.Equal(t, ExportPDF, export.Format)
	assert.Equal(t, "Acme_Proposal.pdf", export.Filename)
	assert.Equal(t, "application/pdf", export.ContentType)
	assert.Equal(t, pdf, export.Data)
}

func TestExportProposal_NoFilenameHeader(t *testing.T) {
	client, store := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("data"))
	}))
	loggedIn(t, store, "access-1", "refresh-1")

	export, err := client.ExportProposal(context.Background(), 7, ExportPDF)
	require.NoError(t, err)
	assert.Equal(t, "proposal_7.pdf", export.Filename)
}

func TestExportProposal_UnauthorizedDoesNotRefresh(t *testing.T) {
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

	_, err := client.ExportProposal(context.Background(), 7, ExportDOCX)
	require.Error(t, err)
	assert.Equal(t, int32(0), refreshCalls.Load())

	// The pair survives: export failures are not terminal for the session.
	tokens, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "access-stale", tokens.Access)
}

func TestSaveProposalDraft_SendsSections(t *testing.T) {
	client, store := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/proposal/save-draft", r.URL.Path)
		writeJSON(w, http.StatusOK, Proposal{ID: 7, Title: "Edited"})
	}))
	loggedIn(t, store, "access-1", "refresh-1")

	p, err := client.SaveProposalDraft(context.Background(), ProposalSaveDraftRequest{
		ProposalID: 7,
		Sections:   []ProposalSection{{ID: 1, Title: "Summary", Content: "..."}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Edited", p.Title)
}
