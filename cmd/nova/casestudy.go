// ABOUTME: Case-study corpus commands: list, create, show, update, delete, documents

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/novaintel/nova-cli/internal/api"
)

// cmdCaseStudy handles case-study subcommands
func (a *app) cmdCaseStudy(args []string) error {
	subcmd := "list"
	if len(args) > 0 {
		subcmd = args[0]
		args = args[1:]
	}

	switch subcmd {
	case "list", "ls":
		return a.cmdCaseStudyList()
	case "create", "add":
		return a.cmdCaseStudyCreate(args)
	case "show", "get":
		return a.cmdCaseStudyShow(args)
	case "update":
		return a.cmdCaseStudyUpdate(args)
	case "delete", "rm", "remove":
		return a.cmdCaseStudyDelete(args)
	case "docs", "documents":
		return a.cmdCaseStudyDocs(args)
	default:
		return fmt.Errorf("unknown casestudy subcommand: %s (use list, create, show, update, delete, docs)", subcmd)
	}
}

func (a *app) cmdCaseStudyList() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	studies, err := a.client.ListCaseStudies(ctx)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Case Studies")
	cyan.Println("  ------------")

	if len(studies) == 0 {
		fmt.Println("  (no case studies)")
		fmt.Println()
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tTITLE\tINDUSTRY\tIMPACT\tUPDATED")
	fmt.Fprintln(w, "  --\t-----\t--------\t------\t-------")

	for _, cs := range studies {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\n",
			cs.ID,
			truncate(cs.Title, 32),
			truncate(cs.Industry, 16),
			truncate(cs.Impact, 28),
			formatTime(cs.UpdatedAt),
		)
	}
	w.Flush()
	fmt.Println()

	return nil
}

func (a *app) cmdCaseStudyCreate(args []string) error {
	var req api.CaseStudyCreate
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--title", "-t":
			v, n := argValue(args, i)
			req.Title, i = v, i+n
		case "--industry":
			v, n := argValue(args, i)
			req.Industry, i = v, i+n
		case "--impact":
			v, n := argValue(args, i)
			req.Impact, i = v, i+n
		case "--description", "-d":
			v, n := argValue(args, i)
			req.Description, i = v, i+n
		}
	}

	if req.Title == "" || req.Industry == "" || req.Impact == "" {
		return fmt.Errorf("usage: casestudy create --title <t> --industry <i> --impact <text> [--description <text>]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cs, err := a.client.CreateCaseStudy(ctx, req)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Created case study %d: %s\n", cs.ID, cs.Title)
	return nil
}

func (a *app) cmdCaseStudyShow(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: casestudy show <id>")
	}
	id, err := parseIntArg(args[0])
	if err != nil {
		return fmt.Errorf("invalid case study id %q", args[0])
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cs, err := a.client.GetCaseStudy(ctx, id)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Printf("  Case Study %d\n", cs.ID)
	cyan.Println("  ------------")
	fmt.Printf("  Title:     %s\n", cs.Title)
	fmt.Printf("  Industry:  %s\n", cs.Industry)
	fmt.Printf("  Impact:    %s\n", cs.Impact)
	if cs.Description != "" {
		fmt.Printf("  About:     %s\n", cs.Description)
	}
	fmt.Printf("  Updated:   %s\n", formatTime(cs.UpdatedAt))
	fmt.Println()

	return nil
}

func (a *app) cmdCaseStudyUpdate(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: casestudy update <id> [--title <v>] [--industry <v>] [--impact <v>] [--description <v>]")
	}
	id, err := parseIntArg(args[0])
	if err != nil {
		return fmt.Errorf("invalid case study id %q", args[0])
	}
	args = args[1:]

	var update api.CaseStudyUpdate
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--title", "-t":
			v, n := argValue(args, i)
			update.Title, i = &v, i+n
		case "--industry":
			v, n := argValue(args, i)
			update.Industry, i = &v, i+n
		case "--impact":
			v, n := argValue(args, i)
			update.Impact, i = &v, i+n
		case "--description", "-d":
			v, n := argValue(args, i)
			update.Description, i = &v, i+n
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cs, err := a.client.UpdateCaseStudy(ctx, id, update)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Updated case study %d: %s\n", cs.ID, cs.Title)
	return nil
}

func (a *app) cmdCaseStudyDelete(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: casestudy delete <id>")
	}
	id, err := parseIntArg(args[0])
	if err != nil {
		return fmt.Errorf("invalid case study id %q", args[0])
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.client.DeleteCaseStudy(ctx, id); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Deleted case study %d\n", id)
	return nil
}

// cmdCaseStudyDocs handles source document subcommands
func (a *app) cmdCaseStudyDocs(args []string) error {
	subcmd := "list"
	if len(args) > 0 {
		subcmd = args[0]
		args = args[1:]
	}

	switch subcmd {
	case "list", "ls":
		return a.cmdCaseStudyDocsList()
	case "upload", "add":
		return a.cmdCaseStudyDocsUpload(args)
	case "delete", "rm", "remove":
		return a.cmdCaseStudyDocsDelete(args)
	default:
		return fmt.Errorf("unknown docs subcommand: %s (use list, upload, delete)", subcmd)
	}
}

func (a *app) cmdCaseStudyDocsList() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	docs, err := a.client.ListCaseStudyDocuments(ctx)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Case Study Documents")
	cyan.Println("  --------------------")

	if len(docs) == 0 {
		fmt.Println("  (no documents)")
		fmt.Println()
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tFILENAME\tTYPE\tSIZE\tUPLOADED")
	fmt.Fprintln(w, "  --\t--------\t----\t----\t--------")
	for _, d := range docs {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%d\t%s\n",
			d.ID, truncate(d.Filename, 36), d.FileType, d.FileSize, formatTime(d.UploadedAt))
	}
	w.Flush()
	fmt.Println()

	return nil
}

func (a *app) cmdCaseStudyDocsUpload(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: casestudy docs upload <file>")
	}
	path := args[0]

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	doc, err := a.client.UploadCaseStudyDocument(ctx, filepath.Base(path), file)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Uploaded %s (document %d)\n", doc.Filename, doc.ID)
	return nil
}

func (a *app) cmdCaseStudyDocsDelete(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: casestudy docs delete <id>")
	}
	id, err := parseIntArg(args[0])
	if err != nil {
		return fmt.Errorf("invalid document id %q", args[0])
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.client.DeleteCaseStudyDocument(ctx, id); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Deleted document %d\n", id)
	return nil
}
