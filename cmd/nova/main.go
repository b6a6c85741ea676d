// ABOUTME: Terminal client for the NovaIntel presales backend
// ABOUTME: Dispatches auth, project, RFP, chat, workflow and proposal commands

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"

	"github.com/novaintel/nova-cli/internal/api"
	"github.com/novaintel/nova-cli/internal/config"
	"github.com/novaintel/nova-cli/internal/session"
)

const banner = `
 _ __   _____   ____ _
| '_ \ / _ \ \ / / _' |
| | | | (_) \ V / (_| |
|_| |_|\___/ \_/ \__,_|
`

// app bundles what every command needs.
type app struct {
	cfg     *config.Config
	client  *api.Client
	store   session.Store
	logger  *slog.Logger
	baseURL string
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.LoadOrDefault("")
	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	sessionPath := cfg.Session.Path
	if sessionPath == "" {
		sessionPath = session.DefaultPath()
	}
	store := session.NewFileStore(sessionPath)

	var opts []api.Option
	if cfg.API.Timeout > 0 {
		opts = append(opts, api.WithTimeout(cfg.API.Timeout))
	}
	client := api.New(cfg.API.BaseURL, store, opts...)

	a := &app{
		cfg:     cfg,
		client:  client,
		store:   store,
		logger:  logger,
		baseURL: client.BaseURL(),
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "login":
		err = a.cmdLogin(args)
	case "register":
		err = a.cmdRegister(args)
	case "logout":
		err = a.cmdLogout()
	case "whoami":
		err = a.cmdWhoami()
	case "status":
		err = a.cmdStatus()
	case "settings":
		err = a.cmdSettings(args)
	case "project":
		err = a.cmdProject(args)
	case "rfp":
		err = a.cmdRFP(args)
	case "chat":
		err = a.cmdChat(args)
	case "analyze":
		err = a.cmdAnalyze(args)
	case "insights":
		err = a.cmdInsights(args)
	case "casestudy":
		err = a.cmdCaseStudy(args)
	case "proposal":
		err = a.cmdProposal(args)
	case "search":
		err = a.cmdSearch(args)
	case "notifications":
		err = a.cmdNotifications(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if api.IsAuthRequired(err) {
			color.Red("Error: not logged in (run: nova login)\n")
		} else if api.IsSessionExpired(err) {
			color.Red("Error: session expired, log in again (run: nova login)\n")
		} else {
			color.Red("Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()
	fmt.Println("Usage: nova <command> [args]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  login                        Log in and store the session")
	fmt.Println("  register                     Create an account")
	fmt.Println("  logout                       Clear the stored session")
	fmt.Println("  whoami                       Show the logged-in profile")
	fmt.Println("  status                       Show backend and session status")
	fmt.Println("  settings [show|set]          Show or change account preferences")
	fmt.Println("  project <list|create|show|update|delete>")
	fmt.Println("  rfp <upload|index|index-status|query>")
	fmt.Println("  chat <project-id> [question] Chat with a project's RFP (REPL if no question)")
	fmt.Println("  analyze <run|status|state|debug>")
	fmt.Println("  insights <show|save|export>")
	fmt.Println("  casestudy <list|create|show|update|delete|docs>")
	fmt.Println("  proposal <generate|show|save-draft|preview|export>")
	fmt.Println("  search <query>               Search projects, case studies and proposals")
	fmt.Println("  notifications [read|read-all]")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  NOVA_API_URL    Backend address (default: http://localhost:8000)")
	fmt.Println("  NOVA_CONFIG     Config file path (default: ~/.config/nova/config.yaml)")
	fmt.Println()
	yellow.Println("Examples:")
	fmt.Println("  nova login --email ada@example.com")
	fmt.Println("  nova project create --name 'Acme RFP' --client Acme --industry retail")
	fmt.Println("  nova rfp upload --project 3 ./acme-rfp.pdf")
	fmt.Println("  nova analyze run --project 3")
	fmt.Println("  nova chat 3")
	fmt.Println("  nova proposal export --proposal 7 --format pdf")
	fmt.Println()
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// formatTime renders a timestamp for table output.
func formatTime(ts api.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("Jan 02 15:04")
}

// parseIntArg parses a string to int
func parseIntArg(s string) (int, error) {
	var v int
	_, err := fmt.Sscanf(s, "%d", &v)
	return v, err
}

// argValue pulls the value following a flag out of args, returning the value
// and how many positions were consumed.
func argValue(args []string, i int) (string, int) {
	if i+1 < len(args) {
		return args[i+1], 1
	}
	return "", 0
}
