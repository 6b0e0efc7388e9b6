// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat message log.
package model

import (
	"time"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "E-Hub"
	default:
		return string(s)
	}
}

// =============================================================================
// DELIVERY STATUS
// =============================================================================

// DeliveryStatus is the simulated acknowledgment state of a user message.
// It reflects local timers, not backend confirmation: a message reaches
// "delivered" and "read" even when the dispatch behind it fails.
type DeliveryStatus string

const (
	StatusNone      DeliveryStatus = ""          // bot messages carry no status
	StatusSending   DeliveryStatus = "sending"   // just appended
	StatusDelivered DeliveryStatus = "delivered" // after DeliveredAfter
	StatusRead      DeliveryStatus = "read"      // after ReadAfter (terminal)
)

// Delivery timer intervals, measured from message creation. Both timers are
// armed when a user message is appended and fire regardless of the network
// outcome.
const (
	DeliveredAfter = 300 * time.Millisecond
	ReadAfter      = 1000 * time.Millisecond
)

// rank orders the statuses so transitions can be checked for monotonicity.
func (s DeliveryStatus) rank() int {
	switch s {
	case StatusSending:
		return 1
	case StatusDelivered:
		return 2
	case StatusRead:
		return 3
	default:
		return 0
	}
}

// CanAdvanceTo reports whether moving from s to next respects the
// sending -> delivered -> read ordering. Moving backward is never allowed.
func (s DeliveryStatus) CanAdvanceTo(next DeliveryStatus) bool {
	return next.rank() > s.rank()
}

// Glyph returns the check-mark indicator shown next to a user message.
func (s DeliveryStatus) Glyph() string {
	switch s {
	case StatusDelivered:
		return "✓"
	case StatusRead:
		return "✓✓"
	default:
		return ""
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is one entry in the chat transcript.
type Message struct {
	// Identity
	ID     string `json:"id"`
	Sender Sender `json:"sender"`

	// Content: for bot messages this is the composed markdown document
	// (text plus image references) produced by the normalizer.
	Text string `json:"text"`

	// Time is a locale clock string ("15:04") captured at creation.
	// Display metadata only; never used for ordering.
	Time string `json:"time"`

	// Status is set for user messages only and mutates in place as the
	// delivery timers fire. Bot messages keep StatusNone.
	Status DeliveryStatus `json:"status,omitempty"`
}

// NewUserMessage creates a user message in the initial "sending" state.
func NewUserMessage(id, text string) *Message {
	return &Message{
		ID:     id,
		Sender: SenderUser,
		Text:   text,
		Time:   ClockTime(),
		Status: StatusSending,
	}
}

// NewBotMessage creates a bot message. Bot messages have no delivery status
// and are immutable once appended to the log.
func NewBotMessage(id, text string) *Message {
	return &Message{
		ID:     id,
		Sender: SenderBot,
		Text:   text,
		Time:   ClockTime(),
	}
}

// IsUser reports whether the message was authored by the user.
func (m *Message) IsUser() bool {
	return m.Sender == SenderUser
}

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Text)
	if len(runes) <= maxLen {
		return m.Text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// ClockTime formats the current wall clock as the "HH:MM" string stored in
// Message.Time.
func ClockTime() string {
	return time.Now().Format("15:04")
}
