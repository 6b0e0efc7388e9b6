// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ehub-tui/internal/ui/styles"
)

// =============================================================================
// TYPING INDICATOR
// =============================================================================

// TypingIndicator shows "E-Hub is typing..." with animated dots while one or
// more dispatches are outstanding. It is reference counted: the indicator
// stays visible until every outstanding dispatch has settled.
type TypingIndicator struct {
	spinner spinner.Model
	theme   *styles.Theme

	// pending counts outstanding dispatches.
	pending int
}

// NewTypingIndicator creates an inactive typing indicator.
func NewTypingIndicator(theme *styles.Theme) TypingIndicator {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
		FPS:    time.Second / 6,
	}
	return TypingIndicator{spinner: s, theme: theme}
}

// Acquire marks one dispatch as outstanding. Returns the tick command that
// starts the animation when this is the first holder.
func (t *TypingIndicator) Acquire() tea.Cmd {
	t.pending++
	if t.pending == 1 {
		return t.spinner.Tick
	}
	return nil
}

// Release marks one dispatch as settled.
func (t *TypingIndicator) Release() {
	if t.pending > 0 {
		t.pending--
	}
}

// Active reports whether any dispatch is still outstanding.
func (t *TypingIndicator) Active() bool {
	return t.pending > 0
}

// Pending returns the outstanding dispatch count.
func (t *TypingIndicator) Pending() int {
	return t.pending
}

// Reset clears all outstanding dispatches.
func (t *TypingIndicator) Reset() {
	t.pending = 0
}

// Update advances the animation. Tick messages are ignored while inactive
// so a stale tick does not restart the animation.
func (t *TypingIndicator) Update(msg tea.Msg) tea.Cmd {
	if !t.Active() {
		return nil
	}
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return cmd
}

// View renders the indicator, or an empty string when inactive.
func (t *TypingIndicator) View() string {
	if !t.Active() {
		return ""
	}
	return t.theme.TypingIndicator.Render("E-Hub is typing") +
		t.theme.TypingDots.Render(t.spinner.View())
}
