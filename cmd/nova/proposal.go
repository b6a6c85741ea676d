// ABOUTME: Proposal commands: generate, show, save drafts, preview, export
// ABOUTME: Preview renders locally to HTML; export downloads backend-rendered documents

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/novaintel/nova-cli/internal/api"
	"github.com/novaintel/nova-cli/internal/render"
)

// cmdProposal handles proposal subcommands
func (a *app) cmdProposal(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: proposal <generate|show|save-draft|preview|export> ...")
	}
	subcmd := args[0]
	args = args[1:]

	switch subcmd {
	case "generate", "gen":
		return a.cmdProposalGenerate(args)
	case "show", "get":
		return a.cmdProposalShow(args)
	case "save-draft":
		return a.cmdProposalSaveDraft(args)
	case "preview":
		return a.cmdProposalPreview(args)
	case "export":
		return a.cmdProposalExport(args)
	default:
		return fmt.Errorf("unknown proposal subcommand: %s (use generate, show, save-draft, preview, export)", subcmd)
	}
}

func (a *app) cmdProposalGenerate(args []string) error {
	req := api.ProposalGenerateRequest{TemplateType: api.TemplateFull}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--project", "-p":
			v, n := argValue(args, i)
			id, err := parseIntArg(v)
			if err != nil {
				return fmt.Errorf("invalid project id %q", v)
			}
			req.ProjectID, i = id, i+n
		case "--template", "-t":
			v, n := argValue(args, i)
			req.TemplateType, i = v, i+n
		case "--no-insights":
			noInsights := false
			req.UseInsights = &noInsights
		}
	}

	if req.ProjectID == 0 {
		return fmt.Errorf("usage: proposal generate --project <id> [--template full|executive|technical] [--no-insights]")
	}

	fmt.Println("  Generating proposal (this can take a minute)...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	p, err := a.client.GenerateProposal(ctx, req)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Generated proposal %d: %s (%d sections)\n", p.ID, p.Title, len(p.Sections))
	fmt.Printf("  Next:  nova proposal preview --proposal %d\n", p.ID)
	return nil
}

// resolveProposal finds the proposal from either --proposal or --project args.
func (a *app) resolveProposal(ctx context.Context, args []string) (*api.Proposal, []string, error) {
	var proposalID, projectID int
	rest := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--proposal":
			v, n := argValue(args, i)
			id, err := parseIntArg(v)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid proposal id %q", v)
			}
			proposalID, i = id, i+n
		case "--project", "-p":
			v, n := argValue(args, i)
			id, err := parseIntArg(v)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid project id %q", v)
			}
			projectID, i = id, i+n
		default:
			rest = append(rest, args[i])
		}
	}

	switch {
	case proposalID != 0:
		p, err := a.client.GetProposal(ctx, proposalID)
		return p, rest, err
	case projectID != 0:
		p, err := a.client.GetProposalByProject(ctx, projectID)
		if err != nil {
			return nil, nil, err
		}
		if p == nil {
			return nil, nil, fmt.Errorf("project %d has no proposal yet (run: nova proposal generate --project %d)", projectID, projectID)
		}
		return p, rest, nil
	default:
		return nil, nil, fmt.Errorf("a --proposal <id> or --project <id> flag is required")
	}
}

func (a *app) cmdProposalShow(args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p, _, err := a.resolveProposal(ctx, args)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Printf("  Proposal %d: %s\n", p.ID, p.Title)
	cyan.Println("  ---------")
	fmt.Printf("  Project:   %d\n", p.ProjectID)
	fmt.Printf("  Template:  %s\n", p.TemplateType)
	if p.LastExportedAt != nil {
		fmt.Printf("  Exported:  %s (%s)\n", formatTime(*p.LastExportedAt), p.ExportFormat)
	}
	fmt.Printf("  Updated:   %s\n", formatTime(p.UpdatedAt))
	fmt.Println()

	for _, s := range p.Sections {
		fmt.Printf("  %d. %s (%d chars)\n", s.Order, s.Title, len(s.Content))
	}
	fmt.Println()

	return nil
}

func (a *app) cmdProposalSaveDraft(args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p, rest, err := a.resolveProposal(ctx, args)
	if err != nil {
		return err
	}

	var sectionID int
	var contentPath, title string
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case "--section", "-s":
			v, n := argValue(rest, i)
			id, err := parseIntArg(v)
			if err != nil {
				return fmt.Errorf("invalid section id %q", v)
			}
			sectionID, i = id, i+n
		case "--content", "-c":
			v, n := argValue(rest, i)
			contentPath, i = v, i+n
		case "--title", "-t":
			v, n := argValue(rest, i)
			title, i = v, i+n
		}
	}

	if sectionID == 0 || contentPath == "" {
		return fmt.Errorf("usage: proposal save-draft --proposal <id> --section <section-id> --content <file>")
	}

	content, err := os.ReadFile(contentPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", contentPath, err)
	}

	found := false
	sections := make([]api.ProposalSection, len(p.Sections))
	copy(sections, p.Sections)
	for i := range sections {
		if sections[i].ID == sectionID {
			sections[i].Content = string(content)
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("proposal %d has no section %d", p.ID, sectionID)
	}

	req := api.ProposalSaveDraftRequest{
		ProposalID: p.ID,
		Sections:   sections,
		Title:      title,
	}
	updated, err := a.client.SaveProposalDraft(ctx, req)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Saved draft of proposal %d\n", updated.ID)
	return nil
}

func (a *app) cmdProposalPreview(args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p, rest, err := a.resolveProposal(ctx, args)
	if err != nil {
		return err
	}

	var out string
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case "--out", "-o":
			v, n := argValue(rest, i)
			out, i = v, i+n
		}
	}
	if out == "" {
		out = fmt.Sprintf("proposal_%d.html", p.ID)
	}

	// The backend preview carries word counts; the document itself renders
	// locally so it works offline against the fetched sections.
	preview, err := a.client.PreviewProposal(ctx, p.ID)
	if err == nil {
		fmt.Printf("  %d sections, %d words\n", preview.SectionCount, preview.WordCount)
	}

	html, err := render.Proposal(p)
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

func (a *app) cmdProposalExport(args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	p, rest, err := a.resolveProposal(ctx, args)
	if err != nil {
		return err
	}

	format := api.ExportPDF
	var out string
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case "--format", "-f":
			v, n := argValue(rest, i)
			format, i = v, i+n
		case "--out", "-o":
			v, n := argValue(rest, i)
			out, i = v, i+n
		}
	}

	switch format {
	case api.ExportPDF, api.ExportDOCX, api.ExportPPTX:
	default:
		return fmt.Errorf("unsupported format %q (use pdf, docx, pptx)", format)
	}

	export, err := a.client.ExportProposal(ctx, p.ID, format)
	if err != nil {
		return err
	}

	if out == "" {
		out = export.Filename
	}
	if err := os.WriteFile(out, export.Data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Exported %s (%d bytes)\n", out, len(export.Data))
	return nil
}
