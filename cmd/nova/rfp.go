// ABOUTME: RFP document commands: upload, index build, index status
// ABOUTME: Upload reads a local file and streams it as multipart form data

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/novaintel/nova-cli/internal/api"
)

// cmdRFP handles RFP subcommands
func (a *app) cmdRFP(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: rfp <upload|index|index-status> ...")
	}
	subcmd := args[0]
	args = args[1:]

	switch subcmd {
	case "upload":
		return a.cmdRFPUpload(args)
	case "index", "build-index":
		return a.cmdRFPIndex(args)
	case "index-status":
		return a.cmdRFPIndexStatus(args)
	case "query":
		return a.cmdRFPQuery(args)
	default:
		return fmt.Errorf("unknown rfp subcommand: %s (use upload, index, index-status, query)", subcmd)
	}
}

func (a *app) cmdRFPUpload(args []string) error {
	var projectID int
	var path string
	var buildIndex bool

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--project", "-p":
			v, n := argValue(args, i)
			id, err := parseIntArg(v)
			if err != nil {
				return fmt.Errorf("invalid project id %q", v)
			}
			projectID, i = id, i+n
		case "--index":
			buildIndex = true
		default:
			path = args[i]
		}
	}

	if projectID == 0 || path == "" {
		return fmt.Errorf("usage: rfp upload --project <id> [--index] <file>")
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := a.client.UploadRFP(ctx, projectID, filepath.Base(path), file)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Uploaded %s (document %d)\n", result.Filename, result.RFPDocumentID)
	if result.FileSize > 0 {
		fmt.Printf("  Size:  %d bytes\n", result.FileSize)
	}

	if buildIndex {
		return a.buildIndex(ctx, result.RFPDocumentID)
	}
	fmt.Printf("  Next:  nova rfp index --document %d\n", result.RFPDocumentID)
	return nil
}

func (a *app) cmdRFPIndex(args []string) error {
	var documentID int
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--document", "-d":
			v, n := argValue(args, i)
			id, err := parseIntArg(v)
			if err != nil {
				return fmt.Errorf("invalid document id %q", v)
			}
			documentID, i = id, i+n
		}
	}

	if documentID == 0 {
		return fmt.Errorf("usage: rfp index --document <rfp-document-id>")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	return a.buildIndex(ctx, documentID)
}

func (a *app) buildIndex(ctx context.Context, documentID int) error {
	fmt.Println("  Building index...")

	resp, err := a.client.BuildIndex(ctx, api.BuildIndexRequest{RFPDocumentID: documentID})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("index build failed: %s", resp.Error)
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Indexed %d chunks\n", resp.ChunkCount)
	return nil
}

// cmdRFPQuery retrieves raw context chunks without generating an answer.
// Useful for checking what the index actually holds.
func (a *app) cmdRFPQuery(args []string) error {
	var projectID, topK int
	var terms []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--project", "-p":
			v, n := argValue(args, i)
			id, err := parseIntArg(v)
			if err != nil {
				return fmt.Errorf("invalid project id %q", v)
			}
			projectID, i = id, i+n
		case "--top", "-k":
			v, n := argValue(args, i)
			k, err := parseIntArg(v)
			if err != nil {
				return fmt.Errorf("invalid top-k %q", v)
			}
			topK, i = k, i+n
		default:
			terms = append(terms, args[i])
		}
	}

	if projectID == 0 || len(terms) == 0 {
		return fmt.Errorf("usage: rfp query --project <id> [--top <k>] <query text>")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	resp, err := a.client.QueryRAG(ctx, api.QueryRequest{
		ProjectID: projectID,
		Query:     strings.Join(terms, " "),
		TopK:      topK,
	})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("query failed: %s", resp.Error)
	}

	if len(resp.Results) == 0 {
		fmt.Println("  (no matching chunks)")
		return nil
	}

	dim := color.New(color.Faint)
	for _, src := range resp.Results {
		fmt.Printf("  chunk %d", src.ChunkIndex)
		if src.Score != nil {
			dim.Printf("  (score %.3f)", *src.Score)
		}
		fmt.Println()
	}
	return nil
}

func (a *app) cmdRFPIndexStatus(args []string) error {
	var projectID int
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--project", "-p":
			v, n := argValue(args, i)
			id, err := parseIntArg(v)
			if err != nil {
				return fmt.Errorf("invalid project id %q", v)
			}
			projectID, i = id, i+n
		}
	}

	if projectID == 0 {
		return fmt.Errorf("usage: rfp index-status --project <id>")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	status, err := a.client.GetIndexStatus(ctx, projectID)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Project:  %d\n", status.ProjectID)
	if status.Ready() {
		green := color.New(color.FgGreen)
		green.Printf("  Index:    ready (%d chunks)\n", status.ChunkCount)
	} else {
		yellow := color.New(color.FgYellow)
		yellow.Printf("  Index:    %s\n", status.Status)
	}
	fmt.Println()

	return nil
}
