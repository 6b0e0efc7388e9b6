// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat message log.
package model

import (
	"log"
	"sync"
)

// =============================================================================
// INTEGRITY DIAGNOSTICS
// =============================================================================

// IntegrityIssue describes one problem found by the log consistency check.
// Issues are diagnostic only: they are reported, never acted on.
type IntegrityIssue struct {
	Kind  string // "duplicate-id" or "missing-id"
	ID    string // offending ID ("" for missing-id)
	Index int    // position in the log
}

// WarnFunc receives integrity and patch diagnostics. The default writes to
// the standard logger; the TUI and tests install their own sink.
type WarnFunc func(format string, args ...any)

// =============================================================================
// MESSAGE LOG
// =============================================================================

// Log is the ordered, append/patch-only message collection. An entry's
// position never changes once appended; only the delivery status of user
// messages mutates in place. All pipeline components share one Log and
// mutate it exclusively through Append, Patch and Reset.
//
// Methods are safe for concurrent use, though under the Bubble Tea runtime
// every mutation happens on the single Update goroutine anyway.
type Log struct {
	mu      sync.RWMutex
	entries []*Message
	warnf   WarnFunc
}

// NewLog creates an empty message log.
func NewLog() *Log {
	return &Log{warnf: log.Printf}
}

// SetWarnFunc replaces the diagnostic sink. A nil sink silences diagnostics.
func (l *Log) SetWarnFunc(fn WarnFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if fn == nil {
		fn = func(string, ...any) {}
	}
	l.warnf = fn
}

// Append inserts a message at the end of the log and runs the integrity
// check. The check is an observable side effect only: duplicate or missing
// IDs are reported through the warn function and the append still succeeds.
func (l *Log) Append(msg *Message) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, msg)

	for _, issue := range l.checkIntegrityLocked() {
		l.warnf("message log: %s at index %d (id=%q)", issue.Kind, issue.Index, issue.ID)
	}
}

// Patch advances the delivery status of the message with the given ID.
// Status is the only mutable field of a logged message; entry order never
// changes. Missing IDs and non-monotonic transitions are warned about and
// ignored, which makes timers that outlive a Reset harmless no-ops.
func (l *Log) Patch(id string, status DeliveryStatus) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, msg := range l.entries {
		if msg.ID != id {
			continue
		}
		if !msg.Status.CanAdvanceTo(status) {
			l.warnf("message log: ignoring status patch %q -> %q for id %q", msg.Status, status, id)
			return false
		}
		msg.Status = status
		return true
	}

	l.warnf("message log: patch for unknown id %q (status %q)", id, status)
	return false
}

// Reset clears all entries. Only the explicit "start over" action calls
// this; timers and dispatches already in flight keep running and their
// later patches/appends simply find nothing to hit.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// Snapshot returns an immutable ordered copy of the log for rendering.
func (l *Log) Snapshot() []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Message, len(l.entries))
	for i, msg := range l.entries {
		out[i] = *msg
	}
	return out
}

// Get returns a copy of the message with the given ID.
func (l *Log) Get(id string) (Message, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, msg := range l.entries {
		if msg.ID == id {
			return *msg, true
		}
	}
	return Message{}, false
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// IsEmpty reports whether the log has no entries.
func (l *Log) IsEmpty() bool {
	return l.Len() == 0
}

// CheckIntegrity scans the whole log for duplicate or missing IDs.
func (l *Log) CheckIntegrity() []IntegrityIssue {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.checkIntegrityLocked()
}

func (l *Log) checkIntegrityLocked() []IntegrityIssue {
	var issues []IntegrityIssue
	seen := make(map[string]bool, len(l.entries))

	for i, msg := range l.entries {
		if msg.ID == "" {
			issues = append(issues, IntegrityIssue{Kind: "missing-id", Index: i})
			continue
		}
		if seen[msg.ID] {
			issues = append(issues, IntegrityIssue{Kind: "duplicate-id", ID: msg.ID, Index: i})
		}
		seen[msg.ID] = true
	}
	return issues
}
