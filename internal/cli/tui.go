// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui.go - default command: the full-screen Bubble Tea chat client.

package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ehub-tui/internal/backend"
	"github.com/jeranaias/ehub-tui/internal/config"
	"github.com/jeranaias/ehub-tui/internal/storage"
	"github.com/jeranaias/ehub-tui/internal/ui/chat"
)

func runTUI(args *Args) int {
	if !IsTTY() {
		fmt.Fprintln(os.Stderr, "ehub: the TUI needs a terminal; try 'ehub chat' for piped input")
		return 1
	}

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

	// Transcript storage is best-effort: the chat works without it.
	var store *storage.TranscriptStore
	if path, err := cfg.TranscriptsPath(); err == nil {
		if s, err := storage.Open(path); err == nil {
			store = s
			defer s.Close()
		} else {
			log.Printf("TUI: transcript storage unavailable: %v", err)
		}
	}

	// Diagnostics must not paint over the TUI.
	logFile := setupLogFile()
	if logFile != nil {
		defer logFile.Close()
	}

	// Hot-reload the backend endpoint when the config file changes.
	watchCtx, cancelWatch := context.WithCancel(context.Background())
	defer cancelWatch()
	go func() {
		_ = config.Watch(watchCtx, func(updated *config.Config) {
			if args.BackendURL == "" {
				client.SetBaseURL(updated.Backend.URL)
				log.Printf("TUI: backend endpoint now %s", updated.Backend.URL)
			}
		})
	}()

	program := tea.NewProgram(
		chat.New(cfg, client, store),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := program.Run(); err != nil {
		return fail(err)
	}
	return 0
}

// setupLogFile redirects the standard logger to ~/.ehub/ehub.log so
// integrity warnings and watch errors stay off the screen.
func setupLogFile() *os.File {
	dir, err := config.ConfigDir()
	if err != nil {
		log.SetOutput(os.Stderr)
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.SetOutput(os.Stderr)
		return nil
	}
	f, err := os.OpenFile(dir+"/ehub.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		log.SetOutput(os.Stderr)
		return nil
	}
	log.SetOutput(f)
	return f
}
