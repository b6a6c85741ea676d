// ABOUTME: Project management commands: list, create, show, update, delete

package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/novaintel/nova-cli/internal/api"
)

// cmdProject handles project subcommands
func (a *app) cmdProject(args []string) error {
	subcmd := "list"
	if len(args) > 0 {
		subcmd = args[0]
		args = args[1:]
	}

	switch subcmd {
	case "list", "ls":
		return a.cmdProjectList()
	case "create", "add":
		return a.cmdProjectCreate(args)
	case "show", "get":
		return a.cmdProjectShow(args)
	case "update":
		return a.cmdProjectUpdate(args)
	case "delete", "rm", "remove":
		return a.cmdProjectDelete(args)
	default:
		return fmt.Errorf("unknown project subcommand: %s (use list, create, show, update, delete)", subcmd)
	}
}

func (a *app) cmdProjectList() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	projects, err := a.client.ListProjects(ctx)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Projects")
	cyan.Println("  --------")

	if len(projects) == 0 {
		fmt.Println("  (no projects)")
		fmt.Println()
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tNAME\tCLIENT\tINDUSTRY\tSTATUS\tUPDATED")
	fmt.Fprintln(w, "  --\t----\t------\t--------\t------\t-------")

	for _, p := range projects {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\t%s\n",
			p.ID,
			truncate(p.Name, 28),
			truncate(p.ClientName, 20),
			truncate(p.Industry, 16),
			p.Status,
			formatTime(p.UpdatedAt),
		)
	}
	w.Flush()
	fmt.Println()

	return nil
}

func (a *app) cmdProjectCreate(args []string) error {
	var req api.ProjectCreate
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--name", "-n":
			v, n := argValue(args, i)
			req.Name, i = v, i+n
		case "--client", "-c":
			v, n := argValue(args, i)
			req.ClientName, i = v, i+n
		case "--industry":
			v, n := argValue(args, i)
			req.Industry, i = v, i+n
		case "--region":
			v, n := argValue(args, i)
			req.Region, i = v, i+n
		case "--type", "-t":
			v, n := argValue(args, i)
			req.ProjectType, i = v, i+n
		case "--description", "-d":
			v, n := argValue(args, i)
			req.Description, i = v, i+n
		}
	}

	if req.Name == "" || req.ClientName == "" {
		return fmt.Errorf("usage: project create --name <name> --client <name> [--industry <v>] [--region <v>] [--type new|expansion|renewal] [--description <text>]")
	}
	if req.ProjectType == "" {
		req.ProjectType = api.ProjectTypeNew
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p, err := a.client.CreateProject(ctx, req)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Created project %d: %s\n", p.ID, p.Name)
	fmt.Printf("  Client:  %s\n", p.ClientName)
	fmt.Printf("  Status:  %s\n", p.Status)

	return nil
}

func (a *app) cmdProjectShow(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: project show <project-id>")
	}
	id, err := parseIntArg(args[0])
	if err != nil {
		return fmt.Errorf("invalid project id %q", args[0])
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p, err := a.client.GetProject(ctx, id)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Printf("  Project %d\n", p.ID)
	cyan.Println("  ---------")
	fmt.Printf("  Name:      %s\n", p.Name)
	fmt.Printf("  Client:    %s\n", p.ClientName)
	fmt.Printf("  Industry:  %s\n", p.Industry)
	fmt.Printf("  Region:    %s\n", p.Region)
	fmt.Printf("  Type:      %s\n", p.ProjectType)
	fmt.Printf("  Status:    %s\n", p.Status)
	if p.Description != "" {
		fmt.Printf("  About:     %s\n", p.Description)
	}
	fmt.Printf("  Created:   %s\n", formatTime(p.CreatedAt))
	fmt.Printf("  Updated:   %s\n", formatTime(p.UpdatedAt))
	fmt.Println()

	return nil
}

func (a *app) cmdProjectUpdate(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: project update <project-id> [--name <v>] [--client <v>] [--status <v>] ...")
	}
	id, err := parseIntArg(args[0])
	if err != nil {
		return fmt.Errorf("invalid project id %q", args[0])
	}
	args = args[1:]

	var update api.ProjectUpdate
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--name", "-n":
			v, n := argValue(args, i)
			update.Name, i = &v, i+n
		case "--client", "-c":
			v, n := argValue(args, i)
			update.ClientName, i = &v, i+n
		case "--industry":
			v, n := argValue(args, i)
			update.Industry, i = &v, i+n
		case "--region":
			v, n := argValue(args, i)
			update.Region, i = &v, i+n
		case "--type", "-t":
			v, n := argValue(args, i)
			update.ProjectType, i = &v, i+n
		case "--description", "-d":
			v, n := argValue(args, i)
			update.Description, i = &v, i+n
		case "--status", "-s":
			v, n := argValue(args, i)
			update.Status, i = &v, i+n
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p, err := a.client.UpdateProject(ctx, id, update)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Updated project %d: %s\n", p.ID, p.Name)
	return nil
}

func (a *app) cmdProjectDelete(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: project delete <project-id>")
	}
	id, err := parseIntArg(args[0])
	if err != nil {
		return fmt.Errorf("invalid project id %q", args[0])
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.client.DeleteProject(ctx, id); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Deleted project %d\n", id)
	return nil
}
