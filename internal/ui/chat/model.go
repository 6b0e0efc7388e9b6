// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ehub-tui/internal/backend"
	"github.com/jeranaias/ehub-tui/internal/config"
	"github.com/jeranaias/ehub-tui/internal/model"
	"github.com/jeranaias/ehub-tui/internal/storage"
	"github.com/jeranaias/ehub-tui/internal/ui/components"
	"github.com/jeranaias/ehub-tui/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Conversation
	log   *model.Log
	idGen *model.IDGenerator

	// gen counts conversation resets. Commands in flight carry the
	// generation they were issued under; stale results are dropped.
	gen int

	// Backend
	client *backend.Client

	// Transcript persistence (nil when storage is disabled)
	store        *storage.TranscriptStore
	transcriptID string

	// UI components
	viewport viewport.Model
	input    textinput.Model
	typing   components.TypingIndicator
	welcome  *components.WelcomeCard
	markdown *components.Markdown

	// Greeting card visibility
	showGreeting bool

	// Key bindings
	keyMap KeyMap

	// Status line message (save confirmations, errors)
	statusMsg string

	ready bool
}

// New creates the chat model. store may be nil.
func New(cfg *config.Config, client *backend.Client, store *storage.TranscriptStore) *Model {
	theme := styles.NewTheme()

	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.Prompt = "> "
	input.CharLimit = 4000
	input.Focus()

	return &Model{
		theme:        theme,
		log:          model.NewLog(),
		idGen:        model.NewIDGenerator(),
		client:       client,
		store:        store,
		input:        input,
		typing:       components.NewTypingIndicator(theme),
		welcome:      components.NewWelcomeCard(theme),
		markdown:     components.NewMarkdown(theme.IsDark),
		showGreeting: cfg.UI.Greeting,
		keyMap:       DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Log exposes the message log, mainly for tests and transcript export.
func (m *Model) Log() *model.Log {
	return m.log
}

// TypingActive reports whether the typing indicator is showing.
func (m *Model) TypingActive() bool {
	return m.typing.Active()
}
