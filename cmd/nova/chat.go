// ABOUTME: Chat command: one-shot questions or an interactive REPL against a project's RFP
// ABOUTME: Transcripts persist locally and prior turns are replayed as conversation context

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/novaintel/nova-cli/internal/api"
	"github.com/novaintel/nova-cli/internal/history"
)

// contextTurns is how many prior messages are replayed to the backend.
const contextTurns = 10

// cmdChat asks a single question or starts a REPL against a project's RFP
func (a *app) cmdChat(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: chat <project-id> [question]")
	}
	projectID, err := parseIntArg(args[0])
	if err != nil {
		return fmt.Errorf("invalid project id %q", args[0])
	}
	args = args[1:]

	store, err := a.openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	thread, err := resumeOrCreateThread(store, projectID)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		// One-shot mode
		question := strings.Join(args, " ")
		return a.chatOnce(store, thread, projectID, question)
	}

	return a.chatREPL(store, thread, projectID)
}

// openHistory opens the local transcript database.
func (a *app) openHistory() (history.Store, error) {
	path := a.cfg.History.Path
	if path == "" {
		dataDir := os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("locating history database: %w", err)
			}
			dataDir = filepath.Join(homeDir, ".local", "share")
		}
		path = filepath.Join(dataDir, "nova", "history.db")
	}
	return history.NewSQLiteStore(path)
}

// resumeOrCreateThread picks up the project's most recent thread or starts a
// fresh one.
func resumeOrCreateThread(store history.Store, projectID int) (*history.Thread, error) {
	ctx := context.Background()

	thread, err := store.LatestThread(ctx, projectID)
	if err == nil {
		return thread, nil
	}
	if err != history.ErrNotFound {
		return nil, err
	}

	now := time.Now()
	thread = &history.Thread{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Title:     fmt.Sprintf("Chat %s", now.Format("Jan 02 15:04")),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.CreateThread(ctx, thread); err != nil {
		return nil, err
	}
	return thread, nil
}

func (a *app) chatOnce(store history.Store, thread *history.Thread, projectID int, question string) error {
	resp, err := a.ask(store, thread, projectID, question)
	if err != nil {
		return err
	}
	printAnswer(resp)
	return nil
}

func (a *app) chatREPL(store history.Store, thread *history.Thread, projectID int) error {
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	cyan.Printf("Chat with project %d's RFP (Ctrl+D to exit)\n\n", projectID)

	// Replay the tail of the transcript so the user sees where they left off
	prior, err := store.ThreadMessages(context.Background(), thread.ID, 6)
	if err == nil && len(prior) > 0 {
		dim := color.New(color.Faint)
		for _, msg := range prior {
			if msg.Role == history.RoleUser {
				dim.Printf("> %s\n", msg.Content)
			} else {
				dim.Printf("%s\n", truncate(msg.Content, 200))
			}
		}
		fmt.Println()
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), 1024*1024) // 1MB max input
	for {
		green.Print("> ")
		if !scanner.Scan() {
			// EOF (Ctrl+D) or error
			fmt.Println()
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		resp, err := a.ask(store, thread, projectID, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		printAnswer(resp)
		fmt.Println()
	}
}

// ask sends one question with replayed context and records both turns.
func (a *app) ask(store history.Store, thread *history.Thread, projectID int, question string) (*api.ChatResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	prior, err := store.ThreadMessages(ctx, thread.ID, contextTurns)
	if err != nil {
		return nil, err
	}
	conversation := make([]api.ChatTurn, 0, len(prior))
	for _, msg := range prior {
		role := msg.Role
		if role != history.RoleUser {
			role = "assistant"
		}
		conversation = append(conversation, api.ChatTurn{Role: role, Content: msg.Content})
	}

	resp := a.client.ChatWithRFP(ctx, api.ChatRequest{
		ProjectID:           projectID,
		Query:               question,
		ConversationHistory: conversation,
	})

	now := time.Now()
	userMsg := &history.Message{
		ID:        uuid.NewString(),
		ThreadID:  thread.ID,
		Role:      history.RoleUser,
		Content:   question,
		CreatedAt: now,
	}
	if err := store.SaveMessage(ctx, userMsg); err != nil {
		a.logger.Warn("failed to record chat turn", "error", err)
	}

	if resp.Success {
		sources := ""
		if len(resp.Sources) > 0 {
			if data, err := json.Marshal(resp.Sources); err == nil {
				sources = string(data)
			}
		}
		assistantMsg := &history.Message{
			ID:          uuid.NewString(),
			ThreadID:    thread.ID,
			Role:        history.RoleAssistant,
			Content:     resp.Answer,
			SourcesJSON: sources,
			CreatedAt:   now.Add(time.Millisecond),
		}
		if err := store.SaveMessage(ctx, assistantMsg); err != nil {
			a.logger.Warn("failed to record chat turn", "error", err)
		}
	}

	if err := store.TouchThread(ctx, thread.ID, time.Now()); err != nil {
		a.logger.Warn("failed to touch thread", "error", err)
	}

	return resp, nil
}

func printAnswer(resp *api.ChatResponse) {
	if !resp.Success {
		color.Red("%s\n", resp.Error)
		return
	}

	fmt.Println(resp.Answer)

	if len(resp.Sources) > 0 {
		dim := color.New(color.Faint, color.Italic)
		dim.Printf("[%d source chunks", len(resp.Sources))
		if resp.ContextUsed > 0 {
			dim.Printf(", %d used", resp.ContextUsed)
		}
		dim.Println("]")
	}
}
