// ABOUTME: Search and notification commands

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
)

// cmdSearch runs a cross-entity search
func (a *app) cmdSearch(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: search <query>")
	}
	query := strings.Join(args, " ")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results, err := a.client.Search(ctx, query)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("  (no results)")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  TYPE\tID\tTITLE\tMATCH")
	fmt.Fprintln(w, "  ----\t--\t-----\t-----")
	for _, r := range results {
		fmt.Fprintf(w, "  %s\t%d\t%s\t%s\n", r.Type, r.ID, truncate(r.Title, 32), truncate(r.Snippet, 48))
	}
	w.Flush()

	return nil
}

// cmdNotifications lists or marks notifications
func (a *app) cmdNotifications(args []string) error {
	subcmd := "list"
	if len(args) > 0 {
		subcmd = args[0]
		args = args[1:]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch subcmd {
	case "list", "ls":
		return a.cmdNotificationsList(ctx)
	case "read":
		if len(args) < 1 {
			return fmt.Errorf("usage: notifications read <id>")
		}
		id, err := parseIntArg(args[0])
		if err != nil {
			return fmt.Errorf("invalid notification id %q", args[0])
		}
		if err := a.client.MarkNotificationRead(ctx, id); err != nil {
			return err
		}
		color.Green("✓ Marked notification %d read\n", id)
		return nil
	case "read-all":
		if err := a.client.MarkAllNotificationsRead(ctx); err != nil {
			return err
		}
		color.Green("✓ Marked all notifications read\n")
		return nil
	default:
		return fmt.Errorf("unknown notifications subcommand: %s (use list, read, read-all)", subcmd)
	}
}

func (a *app) cmdNotificationsList(ctx context.Context) error {
	notes, err := a.client.ListNotifications(ctx, 20)
	if err != nil {
		return err
	}

	if len(notes) == 0 {
		fmt.Println("  (no notifications)")
		return nil
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)
	for _, n := range notes {
		when := formatTime(n.CreatedAt)
		if n.IsRead {
			dim.Printf("  %d  %s  %s\n", n.ID, when, n.Message)
		} else {
			bold.Printf("  %d  %s  %s\n", n.ID, when, n.Message)
		}
	}

	return nil
}
