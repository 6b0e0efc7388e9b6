// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ehub-tui/internal/model"
	"github.com/jeranaias/ehub-tui/internal/ui/styles"
	"github.com/jeranaias/ehub-tui/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one chat message as a styled bubble.
type MessageBubble struct {
	Message       *model.Message
	Width         int
	ShowTimestamp bool
	IsError       bool

	theme    *styles.Theme
	markdown *Markdown
}

// NewMessageBubble creates a bubble for msg. markdown may be nil, in which
// case bot messages render as plain text.
func NewMessageBubble(msg *model.Message, theme *styles.Theme, markdown *Markdown) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
		markdown:      markdown,
	}
}

// SetWidth sets the render width in cells.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	if b.Message.Sender == model.SenderUser {
		return b.renderUserBubble()
	}
	return b.renderBotBubble()
}

// ==========================================================================
// USER BUBBLE - Blue tones, right-aligned
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	content := b.Message.Text
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubble := b.theme.UserBubble.Width(contentWidth).Render(wrapped)

	header := b.theme.SenderLabel.Render(strings.ToLower(b.Message.Sender.DisplayName()))
	if b.ShowTimestamp && b.Message.Time != "" {
		header += " " + b.theme.Timestamp.Render(b.Message.Time)
	}
	if glyph := b.Message.Status.Glyph(); glyph != "" {
		header += " " + b.theme.StatusGlyph.Render(glyph)
	}

	leftMargin := b.Width - contentWidth - 4
	if leftMargin < 0 {
		leftMargin = 0
	}
	margin := lipgloss.NewStyle().MarginLeft(leftMargin)

	return lipgloss.JoinVertical(lipgloss.Right,
		margin.Render(header),
		margin.Render(bubble))
}

// ==========================================================================
// BOT BUBBLE - Purple tones, left-aligned; rose when the dispatch failed
// ==========================================================================

func (b *MessageBubble) renderBotBubble() string {
	content := b.Message.Text
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}

	style := b.theme.BotBubble
	if b.IsError {
		style = b.theme.ErrorBubble
	} else if b.markdown != nil {
		if rendered, err := b.markdown.Render(content, maxContentWidth); err == nil {
			content = rendered
		}
	}
	content = strings.TrimRight(content, "\n")

	wrapped := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubble := style.Width(contentWidth).Render(wrapped)

	header := b.theme.SenderLabel.Render(b.Message.Sender.DisplayName())
	if b.ShowTimestamp && b.Message.Time != "" {
		header += " " + b.theme.Timestamp.Render(b.Message.Time)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
}

// =============================================================================
// LAYOUT HELPERS
// =============================================================================

// wordWrap wraps text at width cells, preserving existing newlines.
// Lines already containing ANSI styling are left alone.
func wordWrap(text string, width int) string {
	if width < 1 {
		return text
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		if util.DisplayWidth(line) <= width || strings.Contains(line, "\x1b") {
			out = append(out, line)
			continue
		}

		var current string
		for _, word := range strings.Fields(line) {
			if current == "" {
				current = word
				continue
			}
			if util.DisplayWidth(current)+1+util.DisplayWidth(word) > width {
				out = append(out, current)
				current = word
			} else {
				current += " " + word
			}
		}
		if current != "" {
			out = append(out, current)
		}
	}
	return strings.Join(out, "\n")
}

// maxLineWidth returns the widest line's display width.
func maxLineWidth(text string) int {
	max := 0
	for _, line := range strings.Split(text, "\n") {
		if w := lipgloss.Width(line); w > max {
			max = w
		}
	}
	return max
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
