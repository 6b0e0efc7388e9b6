// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ehub-tui/internal/backend"
	"github.com/jeranaias/ehub-tui/internal/compose"
	"github.com/jeranaias/ehub-tui/internal/model"
	"github.com/jeranaias/ehub-tui/internal/storage"
)

// =============================================================================
// PRESENTATION TIMING
// =============================================================================

// Presentation delay: a fixed pause plus a per-character component, capped
// so long replies do not keep the user waiting.
const (
	presentBase    = 500 * time.Millisecond
	presentPerChar = 12 * time.Millisecond
	presentCap     = 900 * time.Millisecond
)

// presentationDelay returns how long to hold a successful reply before
// showing it, derived from the user input that triggered the dispatch.
// Errors present immediately.
func presentationDelay(input string) time.Duration {
	variable := time.Duration(len([]rune(input))) * presentPerChar
	if variable > presentCap {
		variable = presentCap
	}
	return presentBase + variable
}

// =============================================================================
// COMMANDS
// =============================================================================

// dispatchCmd sends text to the backend and normalizes the response.
// The client's own timeout bounds the request.
func dispatchCmd(client *backend.Client, userID, text string, gen int) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Send(context.Background(), text)
		if err != nil {
			return DispatchResultMsg{UserID: userID, Input: text, Err: err, Gen: gen}
		}
		doc := compose.Preprocess(compose.Document(resp))
		return DispatchResultMsg{UserID: userID, Input: text, Doc: doc, Gen: gen}
	}
}

// deliveryTickCmds schedules the delivered and read ticks for one user
// message. The schedule is fixed and independent of the network.
func deliveryTickCmds(id string, gen int) []tea.Cmd {
	return []tea.Cmd{
		tea.Tick(model.DeliveredAfter, func(time.Time) tea.Msg {
			return DeliveryTickMsg{ID: id, Status: model.StatusDelivered, Gen: gen}
		}),
		tea.Tick(model.ReadAfter, func(time.Time) tea.Msg {
			return DeliveryTickMsg{ID: id, Status: model.StatusRead, Gen: gen}
		}),
	}
}

// presentCmd delivers a bot message after delay.
func presentCmd(msg *model.Message, isError bool, delay time.Duration, gen int) tea.Cmd {
	present := PresentMsg{Message: msg, IsError: isError, Gen: gen}
	if delay <= 0 {
		return func() tea.Msg { return present }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg { return present })
}

// saveTranscriptCmd persists the current transcript.
func saveTranscriptCmd(store *storage.TranscriptStore, id string, messages []model.Message) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		savedID, err := store.Save(ctx, id, messages)
		return SaveResultMsg{ID: savedID, Err: err}
	}
}
