// ABOUTME: Agent workflow commands: run the full analysis pipeline, poll status, inspect state

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/novaintel/nova-cli/internal/api"
)

// cmdAnalyze handles workflow subcommands
func (a *app) cmdAnalyze(args []string) error {
	subcmd := "run"
	if len(args) > 0 {
		subcmd = args[0]
		args = args[1:]
	}

	switch subcmd {
	case "run":
		return a.cmdAnalyzeRun(args)
	case "status":
		return a.cmdAnalyzeStatus(args)
	case "state":
		return a.cmdAnalyzeState(args)
	case "debug":
		return a.cmdAnalyzeDebug(args)
	default:
		return fmt.Errorf("unknown analyze subcommand: %s (use run, status, state, debug)", subcmd)
	}
}

func (a *app) cmdAnalyzeRun(args []string) error {
	var req api.RunWorkflowRequest
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--project", "-p":
			v, n := argValue(args, i)
			id, err := parseIntArg(v)
			if err != nil {
				return fmt.Errorf("invalid project id %q", v)
			}
			req.ProjectID, i = id, i+n
		case "--document", "-d":
			v, n := argValue(args, i)
			id, err := parseIntArg(v)
			if err != nil {
				return fmt.Errorf("invalid document id %q", v)
			}
			req.RFPDocumentID, i = id, i+n
		case "--save":
			req.AutoSave = true
		}
	}

	if req.ProjectID == 0 {
		return fmt.Errorf("usage: analyze run --project <id> [--document <rfp-document-id>] [--save]")
	}

	fmt.Println("  Running analysis agents (this can take a few minutes)...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	resp, err := a.client.RunWorkflow(ctx, req)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("workflow failed: %s", resp.Error)
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Analysis complete (state %s)\n", resp.StateID)
	if resp.Summary != "" {
		fmt.Println()
		fmt.Println(resp.Summary)
	}
	fmt.Printf("\n  Next:  nova insights show --project %d\n", req.ProjectID)

	return nil
}

func (a *app) cmdAnalyzeStatus(args []string) error {
	var stateID string
	var wait bool
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--state", "-s":
			v, n := argValue(args, i)
			stateID, i = v, i+n
		case "--wait", "-w":
			wait = true
		}
	}

	if stateID == "" {
		return fmt.Errorf("usage: analyze status --state <state-id> [--wait]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	for {
		status, err := a.client.GetWorkflowStatus(ctx, stateID)
		if err != nil {
			return err
		}

		printWorkflowStatus(status)
		if !wait || status.Completed || len(status.Errors) > 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
		}
	}
}

func printWorkflowStatus(status *api.WorkflowStatus) {
	if status.Completed {
		green := color.New(color.FgGreen)
		green.Printf("✓ Completed (state %s)\n", status.StateID)
	} else {
		yellow := color.New(color.FgYellow)
		yellow.Printf("  Running: %s\n", status.CurrentStep)
	}
	for _, e := range status.Errors {
		color.Red("  error: %s\n", e)
	}
}

func (a *app) cmdAnalyzeState(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: analyze state <state-id>")
	}
	stateID := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	state, err := a.client.GetWorkflowState(ctx, stateID)
	if err != nil {
		return err
	}
	if !state.Success {
		return fmt.Errorf("fetching state: %s", state.Error)
	}

	return printJSON(state.State)
}

func (a *app) cmdAnalyzeDebug(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: analyze debug <state-id>")
	}
	stateID := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dump, err := a.client.DebugWorkflow(ctx, stateID)
	if err != nil {
		return err
	}

	return printJSON(dump)
}

// printJSON writes indented JSON to stdout for piping into jq and friends.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
