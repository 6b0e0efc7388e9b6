// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ehub-tui/internal/model"
	"github.com/jeranaias/ehub-tui/internal/ui/components"
)

// Fixed chrome heights used by the layout.
const (
	inputAreaHeight = 3
	statusBarHeight = 1
)

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.MouseWheelEnabled = true
	return vp
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "Starting E-Hub..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.renderInput(),
		m.renderStatusBar(),
	)
}

// refreshViewport rebuilds the transcript content and follows the tail.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m *Model) renderTranscript() string {
	var sections []string

	if m.showGreeting && m.log.IsEmpty() {
		sections = append(sections, m.welcome.View())
	}

	for _, msg := range m.log.Snapshot() {
		msg := msg
		bubble := components.NewMessageBubble(&msg, m.theme, m.markdown)
		bubble.SetWidth(m.width)
		bubble.IsError = isErrorMessage(&msg)
		sections = append(sections, bubble.View())
	}

	if m.typing.Active() {
		sections = append(sections, m.typing.View())
	}

	return strings.Join(sections, "\n\n")
}

func (m *Model) renderInput() string {
	return m.theme.InputContainer.Width(m.width - 2).Render(m.input.View())
}

func (m *Model) renderStatusBar() string {
	if m.statusMsg != "" {
		return m.theme.StatusBar.Width(m.width).Render(m.statusMsg)
	}

	shortcuts := []string{
		m.theme.ShortcutKey.Render("enter") + m.theme.ShortcutDesc.Render(" send"),
		m.theme.ShortcutKey.Render("ctrl+r") + m.theme.ShortcutDesc.Render(" reset"),
		m.theme.ShortcutKey.Render("ctrl+s") + m.theme.ShortcutDesc.Render(" save"),
		m.theme.ShortcutKey.Render("ctrl+c") + m.theme.ShortcutDesc.Render(" quit"),
	}
	return m.theme.StatusBar.Width(m.width).Render(strings.Join(shortcuts, "  "))
}

// isErrorMessage reports whether a bot message came from a failed dispatch.
func isErrorMessage(msg *model.Message) bool {
	return msg.Sender == model.SenderBot &&
		strings.HasPrefix(msg.ID, model.PrefixBotError+"_")
}
