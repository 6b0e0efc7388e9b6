// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERER
// =============================================================================

// Markdown renders assistant markdown for terminal display. Renderers are
// cached per width because glamour renderers are width-bound.
type Markdown struct {
	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
	dark      bool
}

// NewMarkdown creates a markdown renderer. dark selects the style set.
func NewMarkdown(dark bool) *Markdown {
	return &Markdown{
		renderers: make(map[int]*glamour.TermRenderer),
		dark:      dark,
	}
}

// Render renders markdown source at the given wrap width.
func (m *Markdown) Render(source string, width int) (string, error) {
	if width < 20 {
		width = 20
	}

	m.mu.Lock()
	r, ok := m.renderers[width]
	m.mu.Unlock()

	if !ok {
		style := "light"
		if m.dark {
			style = "dark"
		}
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
			glamour.WithEmoji(),
		)
		if err != nil {
			return "", err
		}
		m.mu.Lock()
		m.renderers[width] = r
		m.mu.Unlock()
	}

	return r.Render(source)
}
