// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ehub-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME CARD
// =============================================================================

// QuickReply is a canned prompt offered on the welcome card.
type QuickReply struct {
	Label string
	Text  string
}

// DefaultQuickReplies are the starter prompts shown before the first message.
var DefaultQuickReplies = []QuickReply{
	{Label: "Show AI roadmap", Text: "Show me an AI learning roadmap"},
	{Label: "Study plan (3 months)", Text: "Give me a 3-month AI study plan"},
	{Label: "Resources", Text: "Share resources for deep learning"},
	{Label: "Practice problem", Text: "Give me a beginner ML practice problem"},
}

// WelcomeCard greets the user before the first message and lists quick
// replies selectable by number.
type WelcomeCard struct {
	Width        int
	QuickReplies []QuickReply

	theme *styles.Theme
}

// NewWelcomeCard creates the welcome card with default quick replies.
func NewWelcomeCard(theme *styles.Theme) *WelcomeCard {
	return &WelcomeCard{
		Width:        80,
		QuickReplies: DefaultQuickReplies,
		theme:        theme,
	}
}

// Reply returns the quick reply at 1-based index n, if it exists.
func (w *WelcomeCard) Reply(n int) (QuickReply, bool) {
	if n < 1 || n > len(w.QuickReplies) {
		return QuickReply{}, false
	}
	return w.QuickReplies[n-1], true
}

// View renders the card.
func (w *WelcomeCard) View() string {
	var body strings.Builder
	body.WriteString(w.theme.WelcomeTitle.Render("Welcome to E-Hub Chat"))
	body.WriteString("\n")
	body.WriteString(w.theme.WelcomeInfo.Render("Ask anything: roadmap, study plan, resources or practice problems."))
	body.WriteString("\n\n")

	var chips []string
	for i, r := range w.QuickReplies {
		label := w.theme.ShortcutKey.Render(strconv.Itoa(i+1)) + " " + r.Label
		chips = append(chips, w.theme.QuickReply.Render(label))
	}
	body.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, interleave(chips, " ")...))
	body.WriteString("\n\n")
	body.WriteString(w.theme.ShortcutDesc.Render("Press 1-4 on an empty input to use a quick reply"))

	box := w.theme.WelcomeBox
	if w.Width > 20 {
		box = box.Width(minInt(w.Width-4, 76))
	}
	return box.Render(body.String())
}

func interleave(items []string, sep string) []string {
	var out []string
	for i, item := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, item)
	}
	return out
}
