// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat REPL for the ehub CLI.
//
// Handles the "ehub chat" command: a line-based alternative to the
// full-screen TUI, with input history, markdown rendering, and
// transcript saving.
//
// Interactive commands (during chat):
//   /save               Save the transcript
//   /clear, /c          Clear the conversation
//   /help, /h           Show available commands
//   /quit, /q           Exit chat
//   Ctrl+D              Exit chat

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/ehub-tui/internal/backend"
	"github.com/jeranaias/ehub-tui/internal/compose"
	"github.com/jeranaias/ehub-tui/internal/config"
	"github.com/jeranaias/ehub-tui/internal/model"
	"github.com/jeranaias/ehub-tui/internal/storage"
	"github.com/jeranaias/ehub-tui/internal/ui/components"
	"github.com/jeranaias/ehub-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	botLabelStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	historyFile := filepath.Join(configDir, "chat_history")

	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	return &ChatCLI{line: line, historyFile: historyFile}
}

// Prompt reads one line of input.
func (c *ChatCLI) Prompt(prompt string) (string, error) {
	text, err := c.line.Prompt(prompt)
	if err == nil && strings.TrimSpace(text) != "" {
		c.line.AppendHistory(text)
	}
	return text, err
}

// Close persists history and restores the terminal.
func (c *ChatCLI) Close() {
	if f, err := os.Create(c.historyFile); err == nil {
		c.line.WriteHistory(f)
		f.Close()
	}
	c.line.Close()
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

func runChat(args *Args) int {
	cfg, err := config.Load()
	if err != nil {
		return fail(err)
	}
	if args.BackendURL != "" {
		cfg.Backend.URL = args.BackendURL
	}

	client := backend.NewClientWithConfig(&backend.ClientConfig{
		BaseURL: cfg.Backend.URL,
		Timeout: cfg.Timeout(),
	})

	var markdown *components.Markdown
	if !args.Plain && ColorsEnabled() {
		markdown = components.NewMarkdown(true)
	}

	cli := NewChatCLI()
	defer cli.Close()

	log := model.NewLog()
	idGen := model.NewIDGenerator()

	if !args.Quiet {
		fmt.Println(botLabelStyle.Render("E-Hub Chat"))
		fmt.Println(infoStyle.Render("Connected to " + cfg.Backend.URL))
		fmt.Println(infoStyle.Render("Type /help for commands, Ctrl+D to exit"))
		fmt.Println()
	}

	for {
		input, err := cli.Prompt(promptStyle.Render("you> "))
		if err != nil {
			// Ctrl+D or Ctrl+C ends the session.
			fmt.Println()
			return 0
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if done := handleChatCommand(input, cfg, log); done {
				return 0
			}
			continue
		}

		log.Append(model.NewUserMessage(idGen.Next(model.PrefixUser), input))

		resp, err := client.Send(context.Background(), input)
		if err != nil {
			log.Append(model.NewBotMessage(idGen.Next(model.PrefixBotError), "⚠️ Unable to reach server."))
			fmt.Println(errorStyle.Render("⚠️ Unable to reach server."))
			continue
		}

		doc := compose.Preprocess(compose.Document(resp))
		log.Append(model.NewBotMessage(idGen.Next(model.PrefixBot), doc))

		fmt.Println(renderReply(doc, markdown))
	}
}

// renderReply formats a bot reply for the terminal. With markdown enabled
// the whole document goes through glamour; otherwise code fences are
// highlighted and the rest is printed as-is.
func renderReply(doc string, markdown *components.Markdown) string {
	label := botLabelStyle.Render("E-Hub:")
	if markdown != nil {
		if rendered, err := markdown.Render(doc, GetTerminalWidth()-2); err == nil {
			return label + "\n" + strings.TrimRight(rendered, "\n")
		}
	}
	if ColorsEnabled() {
		return label + "\n" + HighlightCodeBlocks(doc)
	}
	return label + "\n" + doc
}

// handleChatCommand processes a /command. Returns true to exit.
func handleChatCommand(input string, cfg *config.Config, log *model.Log) bool {
	switch strings.Fields(input)[0] {
	case "/quit", "/q", "/exit":
		return true

	case "/clear", "/c":
		log.Reset()
		fmt.Println(infoStyle.Render("Conversation cleared."))

	case "/save":
		path, err := cfg.TranscriptsPath()
		if err != nil {
			fmt.Println(errorStyle.Render("Save failed: " + err.Error()))
			return false
		}
		store, err := storage.Open(path)
		if err != nil {
			fmt.Println(errorStyle.Render("Save failed: " + err.Error()))
			return false
		}
		defer store.Close()
		id, err := store.Save(context.Background(), "", log.Snapshot())
		if err != nil {
			fmt.Println(errorStyle.Render("Save failed: " + err.Error()))
			return false
		}
		fmt.Println(infoStyle.Render("Saved transcript " + id))

	case "/help", "/h":
		fmt.Println(infoStyle.Render("Commands: /save, /clear, /quit"))

	default:
		fmt.Println(infoStyle.Render("Unknown command. Type /help."))
	}
	return false
}
