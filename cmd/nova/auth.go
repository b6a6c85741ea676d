// ABOUTME: Authentication commands: login, register, logout, whoami, status, settings
// ABOUTME: Passwords are read from the terminal, never from argv

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/novaintel/nova-cli/internal/api"
	"github.com/novaintel/nova-cli/internal/session"
)

// cmdLogin authenticates and stores the session
func (a *app) cmdLogin(args []string) error {
	var email string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--email", "-e":
			v, n := argValue(args, i)
			email, i = v, i+n
		}
	}

	if email == "" {
		fmt.Print("Email: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading email: %w", err)
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		return fmt.Errorf("usage: login --email <address>")
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err = a.client.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Logged in as %s\n", email)
	return nil
}

// cmdRegister creates an account and stores the session
func (a *app) cmdRegister(args []string) error {
	var email, fullName string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--email", "-e":
			v, n := argValue(args, i)
			email, i = v, i+n
		case "--name", "-n":
			v, n := argValue(args, i)
			fullName, i = v, i+n
		}
	}

	if email == "" || fullName == "" {
		return fmt.Errorf("usage: register --email <address> --name <full name>")
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err = a.client.Register(ctx, api.RegisterRequest{
		Email:    email,
		FullName: fullName,
		Password: password,
	})
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Registered and logged in as %s\n", email)
	return nil
}

// cmdLogout clears the stored session
func (a *app) cmdLogout() error {
	if err := a.client.Logout(); err != nil {
		return err
	}
	green := color.New(color.FgGreen)
	green.Println("✓ Logged out")
	return nil
}

// cmdWhoami shows the logged-in profile
func (a *app) cmdWhoami() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := a.client.GetCurrentUser(ctx)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Profile")
	cyan.Println("  -------")
	fmt.Printf("  Name:   %s\n", user.FullName)
	fmt.Printf("  Email:  %s\n", user.Email)
	fmt.Printf("  Role:   %s\n", user.Role)
	fmt.Println()

	return nil
}

// cmdStatus shows backend reachability and session state
func (a *app) cmdStatus() error {
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := a.client.Health(ctx); err != nil {
		yellow.Printf("  Backend:  ")
		color.Red("UNREACHABLE (%s)\n", a.baseURL)
	} else {
		green.Printf("  Backend:  ")
		fmt.Printf("connected to %s\n", a.baseURL)
	}

	tokens, err := a.store.Load()
	if err != nil || tokens.IsZero() {
		yellow.Printf("  Session:  ")
		fmt.Println("(not logged in)")
		fmt.Println()
		return nil
	}

	green.Printf("  Session:  ")
	info, err := session.Inspect(tokens.Access)
	if err != nil {
		fmt.Println("present (opaque token)")
	} else {
		state := "valid"
		if info.Expired() {
			state = "expired, will refresh on next call"
		}
		fmt.Printf("%s (%s)\n", info.Subject, state)
		if !info.ExpiresAt.IsZero() {
			fmt.Printf("  Expires:  %s\n", info.ExpiresAt.Local().Format(time.RFC1123))
		}
	}
	fmt.Println()

	return nil
}

// cmdSettings shows or changes account preferences
func (a *app) cmdSettings(args []string) error {
	subcmd := "show"
	if len(args) > 0 {
		subcmd = args[0]
		args = args[1:]
	}

	switch subcmd {
	case "show":
		return a.cmdSettingsShow()
	case "set":
		return a.cmdSettingsSet(args)
	default:
		return fmt.Errorf("unknown settings subcommand: %s (use show, set)", subcmd)
	}
}

func (a *app) cmdSettingsShow() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	settings, err := a.client.GetSettings(ctx)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Settings")
	cyan.Println("  --------")
	fmt.Printf("  Proposal tone:       %s\n", settings.ProposalTone)
	fmt.Printf("  AI response style:   %s\n", settings.AIResponseStyle)
	fmt.Printf("  Secure mode:         %t\n", settings.SecureMode)
	fmt.Printf("  Auto-save insights:  %t\n", settings.AutoSaveInsights)
	fmt.Printf("  Theme:               %s\n", settings.ThemePreference)
	fmt.Println()

	return nil
}

func (a *app) cmdSettingsSet(args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	settings, err := a.client.GetSettings(ctx)
	if err != nil {
		return err
	}

	changed := false
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--tone":
			v, n := argValue(args, i)
			settings.ProposalTone, i = v, i+n
			changed = true
		case "--style":
			v, n := argValue(args, i)
			settings.AIResponseStyle, i = v, i+n
			changed = true
		case "--theme":
			v, n := argValue(args, i)
			settings.ThemePreference, i = v, i+n
			changed = true
		case "--secure":
			settings.SecureMode = true
			changed = true
		case "--no-secure":
			settings.SecureMode = false
			changed = true
		case "--auto-save":
			settings.AutoSaveInsights = true
			changed = true
		case "--no-auto-save":
			settings.AutoSaveInsights = false
			changed = true
		}
	}

	if !changed {
		return fmt.Errorf("usage: settings set [--tone <v>] [--style <v>] [--theme <v>] [--secure|--no-secure] [--auto-save|--no-auto-save]")
	}

	if _, err := a.client.UpdateSettings(ctx, *settings); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Println("✓ Settings updated")
	return nil
}

// readPassword prompts for a password without echoing it. Falls back to a
// plain line read when stdin is not a terminal (piped input in scripts).
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	if term.IsTerminal(int(syscall.Stdin)) {
		data, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(data), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
