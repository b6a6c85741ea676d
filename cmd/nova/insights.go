// ABOUTME: Insight commands: show, save, and export analyzed RFP insights

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/novaintel/nova-cli/internal/api"
	"github.com/novaintel/nova-cli/internal/render"
)

// cmdInsights handles insight subcommands
func (a *app) cmdInsights(args []string) error {
	subcmd := "show"
	if len(args) > 0 {
		subcmd = args[0]
		args = args[1:]
	}

	switch subcmd {
	case "show", "get":
		return a.cmdInsightsShow(args)
	case "save":
		return a.cmdInsightsSave(args)
	case "export":
		return a.cmdInsightsExport(args)
	default:
		return fmt.Errorf("unknown insights subcommand: %s (use show, save, export)", subcmd)
	}
}

func (a *app) fetchInsights(args []string) (*api.Insights, string, error) {
	var projectID int
	var out string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--project", "-p":
			v, n := argValue(args, i)
			id, err := parseIntArg(v)
			if err != nil {
				return nil, "", fmt.Errorf("invalid project id %q", v)
			}
			projectID, i = id, i+n
		case "--out", "-o":
			v, n := argValue(args, i)
			out, i = v, i+n
		}
	}

	if projectID == 0 {
		return nil, "", fmt.Errorf("a --project <id> flag is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ins, err := a.client.GetInsights(ctx, projectID)
	if err != nil {
		return nil, "", err
	}
	return ins, out, nil
}

func (a *app) cmdInsightsShow(args []string) error {
	ins, _, err := a.fetchInsights(args)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	fmt.Println()
	cyan.Println("  Summary")
	cyan.Println("  -------")
	fmt.Printf("  %s\n\n", ins.Summary)

	if len(ins.Challenges) > 0 {
		cyan.Println("  Challenges")
		cyan.Println("  ----------")
		for _, ch := range ins.Challenges {
			yellow.Printf("  %s", ch.Title)
			fmt.Printf("  [%s / %s]\n", ch.Category, ch.Impact)
			fmt.Printf("    %s\n", ch.Description)
		}
		fmt.Println()
	}

	if len(ins.ValuePropositions) > 0 {
		cyan.Println("  Value Propositions")
		cyan.Println("  ------------------")
		for _, vp := range ins.ValuePropositions {
			fmt.Printf("  - %s\n", vp)
		}
		fmt.Println()
	}

	for group, questions := range ins.DiscoveryQuestions {
		cyan.Printf("  Discovery: %s\n", group)
		for _, q := range questions {
			fmt.Printf("  - %s\n", q)
		}
		fmt.Println()
	}

	if ins.AIModelUsed != "" {
		dim := color.New(color.Faint)
		dim.Printf("  analyzed by %s at %s\n\n", ins.AIModelUsed, formatTime(ins.AnalysisTimestamp))
	}

	return nil
}

// cmdInsightsSave posts edited insights back from a JSON file, replacing the
// project's saved analysis.
func (a *app) cmdInsightsSave(args []string) error {
	var projectID int
	var path string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--project", "-p":
			v, n := argValue(args, i)
			id, err := parseIntArg(v)
			if err != nil {
				return fmt.Errorf("invalid project id %q", v)
			}
			projectID, i = id, i+n
		case "--file", "-f":
			v, n := argValue(args, i)
			path, i = v, i+n
		}
	}

	if projectID == 0 || path == "" {
		return fmt.Errorf("usage: insights save --project <id> --file <insights.json>")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var req api.InsightsSaveRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	req.ProjectID = projectID

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ins, err := a.client.SaveInsights(ctx, req)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Saved insights for project %d\n", ins.ProjectID)
	return nil
}

func (a *app) cmdInsightsExport(args []string) error {
	ins, out, err := a.fetchInsights(args)
	if err != nil {
		return err
	}
	if out == "" {
		out = fmt.Sprintf("insights_%d.html", ins.ProjectID)
	}

	html, err := render.Insights(ins)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, html, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Wrote %s\n", out)
	return nil
}
