// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ehub-tui/internal/model"
)

// ErrorBubbleText is shown when a dispatch fails for any reason.
const ErrorBubbleText = "⚠️ Unable to reach server."

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keyMap.Submit):
			if cmd := m.submit(m.input.Value()); cmd != nil {
				cmds = append(cmds, cmd)
			}

		case key.Matches(msg, m.keyMap.Reset):
			m.reset()

		case key.Matches(msg, m.keyMap.Save):
			if cmd := m.save(); cmd != nil {
				cmds = append(cmds, cmd)
			}

		case key.Matches(msg, m.keyMap.ScrollUp):
			m.viewport.ViewUp()

		case key.Matches(msg, m.keyMap.ScrollDn):
			m.viewport.ViewDown()

		default:
			// Quick replies: a bare digit on an empty input while the
			// greeting is visible sends the canned prompt.
			if m.showGreeting && m.input.Value() == "" && len(msg.Runes) == 1 {
				if n, err := strconv.Atoi(string(msg.Runes)); err == nil {
					if r, ok := m.welcome.Reply(n); ok {
						if cmd := m.submit(r.Text); cmd != nil {
							cmds = append(cmds, cmd)
						}
						break
					}
				}
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}

	case DeliveryTickMsg:
		if msg.Gen == m.gen {
			if m.log.Patch(msg.ID, msg.Status) {
				m.refreshViewport()
			}
		}

	case DispatchResultMsg:
		if cmd := m.handleDispatchResult(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case PresentMsg:
		if msg.Gen == m.gen {
			if !msg.IsError {
				// The indicator stays on through the presentation delay
				// and clears only when the reply becomes visible.
				m.typing.Release()
			}
			m.log.Append(msg.Message)
			m.refreshViewport()
		}

	case SaveResultMsg:
		if msg.Err != nil {
			m.statusMsg = "Save failed: " + msg.Err.Error()
		} else {
			m.transcriptID = msg.ID
			m.statusMsg = "Transcript saved"
		}

	default:
		if cmd := m.typing.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// =============================================================================
// PIPELINE STEPS
// =============================================================================

// submit composes a user message and starts its dispatch and delivery
// timers. Returns nil for blank input.
func (m *Model) submit(text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	id := m.idGen.Next(model.PrefixUser)
	m.log.Append(model.NewUserMessage(id, text))
	m.input.SetValue("")
	m.showGreeting = false
	m.statusMsg = ""
	m.refreshViewport()

	cmds := []tea.Cmd{dispatchCmd(m.client, id, text, m.gen)}
	cmds = append(cmds, deliveryTickCmds(id, m.gen)...)
	if tick := m.typing.Acquire(); tick != nil {
		cmds = append(cmds, tick)
	}
	return tea.Batch(cmds...)
}

// handleDispatchResult turns a backend result into a scheduled bot bubble.
// Replies may settle in any order; each presents independently.
func (m *Model) handleDispatchResult(msg DispatchResultMsg) tea.Cmd {
	if msg.Gen != m.gen {
		// The conversation was reset while this dispatch was in flight.
		return nil
	}

	if msg.Err != nil {
		// Failures release the indicator right away. The success path
		// releases inside the PresentMsg handler instead, once the delayed
		// reply actually appears.
		m.typing.Release()
		m.refreshViewport()
		id := m.idGen.Next(model.PrefixBotError)
		return presentCmd(model.NewBotMessage(id, ErrorBubbleText), true, 0, m.gen)
	}

	id := m.idGen.Next(model.PrefixBot)
	bot := model.NewBotMessage(id, msg.Doc)
	return presentCmd(bot, false, presentationDelay(msg.Input), m.gen)
}

// reset clears the conversation. In-flight commands keep running but their
// results carry a stale generation and are dropped on arrival.
func (m *Model) reset() {
	m.gen++
	m.log.Reset()
	m.typing.Reset()
	m.input.SetValue("")
	m.showGreeting = true
	m.statusMsg = ""
	m.transcriptID = ""
	m.refreshViewport()
}

// save persists the transcript if storage is enabled.
func (m *Model) save() tea.Cmd {
	if m.store == nil {
		m.statusMsg = "Transcript storage is disabled"
		return nil
	}
	if m.log.IsEmpty() {
		m.statusMsg = "Nothing to save yet"
		return nil
	}
	return saveTranscriptCmd(m.store, m.transcriptID, m.log.Snapshot())
}

// resize recomputes the layout.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.welcome.Width = width

	viewportHeight := height - inputAreaHeight - statusBarHeight
	if viewportHeight < 3 {
		viewportHeight = 3
	}

	if !m.ready {
		m.viewport = newViewport(width, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = viewportHeight
	}
	m.input.Width = width - 6
	m.refreshViewport()
}
