// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file defines all Bubble Tea message types used by the chat view.
// Messages are organized into the following categories:
//   - Delivery: per-message status timer ticks
//   - Dispatch: backend request results
//   - Presentation: delayed bot bubble insertion
//   - Transcript: save results
//
// All message types follow Bubble Tea conventions and are immutable.

package chat

import (
	"github.com/jeranaias/ehub-tui/internal/model"
)

// =============================================================================
// DELIVERY MESSAGES
// =============================================================================

// DeliveryTickMsg advances one user message's delivery status. Each
// submitted message schedules its own pair of ticks, so a slow reply to
// one message never stalls another's ticks.
type DeliveryTickMsg struct {
	ID     string
	Status model.DeliveryStatus

	// Gen is the conversation generation the tick belongs to. Ticks from
	// before a reset carry a stale generation and are dropped.
	Gen int
}

// =============================================================================
// DISPATCH MESSAGES
// =============================================================================

// DispatchResultMsg carries the outcome of one backend dispatch. Results
// may arrive in any order relative to submission.
type DispatchResultMsg struct {
	// UserID is the ID of the user message that triggered the dispatch.
	UserID string

	// Input is the submitted text; its length drives the presentation delay.
	Input string

	// Doc is the normalized markdown document (empty on error).
	Doc string

	Err error
	Gen int
}

// =============================================================================
// PRESENTATION MESSAGES
// =============================================================================

// PresentMsg inserts a fully built bot message after its presentation
// delay has elapsed.
type PresentMsg struct {
	Message *model.Message
	IsError bool
	Gen     int
}

// =============================================================================
// TRANSCRIPT MESSAGES
// =============================================================================

// SaveResultMsg reports a transcript save.
type SaveResultMsg struct {
	ID  string
	Err error
}
