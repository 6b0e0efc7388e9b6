// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"strings"
	"testing"
)

// =============================================================================
// LOG TESTS
// =============================================================================

func TestLog_AppendPreservesOrder(t *testing.T) {
	l := NewLog()
	l.SetWarnFunc(nil)

	for i := 0; i < 5; i++ {
		l.Append(NewUserMessage(fmt.Sprintf("u_%d", i), fmt.Sprintf("message %d", i)))
	}

	snap := l.Snapshot()
	if len(snap) != 5 {
		t.Fatalf("Snapshot() returned %d messages, want 5", len(snap))
	}
	for i, msg := range snap {
		want := fmt.Sprintf("u_%d", i)
		if msg.ID != want {
			t.Errorf("entry %d has id %q, want %q", i, msg.ID, want)
		}
	}
}

func TestLog_PatchAdvancesStatus(t *testing.T) {
	l := NewLog()
	l.SetWarnFunc(nil)
	l.Append(NewUserMessage("u_1", "hello"))

	if !l.Patch("u_1", StatusDelivered) {
		t.Error("Patch to delivered should succeed")
	}
	if !l.Patch("u_1", StatusRead) {
		t.Error("Patch to read should succeed")
	}

	msg, ok := l.Get("u_1")
	if !ok {
		t.Fatal("Get(u_1) should find the message")
	}
	if msg.Status != StatusRead {
		t.Errorf("status = %q, want %q", msg.Status, StatusRead)
	}
}

func TestLog_PatchIsMonotonic(t *testing.T) {
	tests := []struct {
		name string
		from DeliveryStatus
		to   DeliveryStatus
		want bool
	}{
		{"sending to delivered", StatusSending, StatusDelivered, true},
		{"sending to read", StatusSending, StatusRead, true},
		{"delivered to read", StatusDelivered, StatusRead, true},
		{"delivered back to sending", StatusDelivered, StatusSending, false},
		{"read back to delivered", StatusRead, StatusDelivered, false},
		{"read to read", StatusRead, StatusRead, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLog()
			l.SetWarnFunc(nil)
			msg := NewUserMessage("u_1", "hello")
			msg.Status = tc.from
			l.Append(msg)

			if got := l.Patch("u_1", tc.to); got != tc.want {
				t.Errorf("Patch(%q -> %q) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestLog_PatchUnknownIDIsNoOp(t *testing.T) {
	var warnings []string
	l := NewLog()
	l.SetWarnFunc(func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	})
	l.Append(NewUserMessage("u_1", "hello"))

	if l.Patch("u_missing", StatusDelivered) {
		t.Error("Patch on unknown id should return false")
	}
	if len(warnings) == 0 {
		t.Fatal("Patch on unknown id should warn")
	}
	if !strings.Contains(warnings[len(warnings)-1], "u_missing") {
		t.Errorf("warning should mention the id, got %q", warnings[len(warnings)-1])
	}

	// The log itself must be untouched.
	msg, _ := l.Get("u_1")
	if msg.Status != StatusSending {
		t.Errorf("existing message mutated by failed patch: status = %q", msg.Status)
	}
}

// Patches arriving after a reset must find nothing to hit. This is the
// timer-outlives-reset scenario: delivery timers are not cancelable, so
// their callbacks degrade to warnings on the now-absent id.
func TestLog_PatchAfterResetIsNoOp(t *testing.T) {
	l := NewLog()
	l.SetWarnFunc(nil)
	l.Append(NewUserMessage("u_1", "hello"))
	l.Reset()

	if l.Patch("u_1", StatusDelivered) {
		t.Error("Patch after Reset should be a no-op")
	}
	if l.Len() != 0 {
		t.Errorf("log should stay empty after Reset, got %d entries", l.Len())
	}
}

func TestLog_DuplicateIDWarnsWithoutCorruption(t *testing.T) {
	var warnings []string
	l := NewLog()
	l.SetWarnFunc(func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	})

	l.Append(NewUserMessage("u_1", "first"))
	l.Append(NewUserMessage("u_1", "second"))

	if len(warnings) == 0 {
		t.Fatal("appending a duplicate id should produce a warning")
	}
	if !strings.Contains(warnings[len(warnings)-1], "duplicate-id") {
		t.Errorf("warning should name duplicate-id, got %q", warnings[len(warnings)-1])
	}

	// Render order must survive: both entries present, in append order.
	snap := l.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("log should keep both entries, got %d", len(snap))
	}
	if snap[0].Text != "first" || snap[1].Text != "second" {
		t.Error("duplicate-id diagnostic must not reorder or merge entries")
	}
}

func TestLog_MissingIDWarns(t *testing.T) {
	l := NewLog()
	l.SetWarnFunc(nil)
	l.Append(&Message{Sender: SenderUser, Text: "no id"})

	issues := l.CheckIntegrity()
	if len(issues) != 1 {
		t.Fatalf("CheckIntegrity() found %d issues, want 1", len(issues))
	}
	if issues[0].Kind != "missing-id" {
		t.Errorf("issue kind = %q, want missing-id", issues[0].Kind)
	}
}

func TestLog_SnapshotIsDetached(t *testing.T) {
	l := NewLog()
	l.SetWarnFunc(nil)
	l.Append(NewUserMessage("u_1", "hello"))

	snap := l.Snapshot()
	snap[0].Text = "mutated"
	snap[0].Status = StatusRead

	msg, _ := l.Get("u_1")
	if msg.Text != "hello" || msg.Status != StatusSending {
		t.Error("mutating a snapshot must not affect the log")
	}
}

// =============================================================================
// ID GENERATOR TESTS
// =============================================================================

func TestIDGenerator_UniqueWithinSameTick(t *testing.T) {
	g := NewIDGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		id := g.Next(PrefixUser)
		if seen[id] {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = true
	}
}

func TestIDGenerator_PrefixesDistinguishRoles(t *testing.T) {
	g := NewIDGenerator()

	tests := []struct {
		prefix string
	}{
		{PrefixUser},
		{PrefixBot},
		{PrefixBotError},
	}

	for _, tc := range tests {
		id := g.Next(tc.prefix)
		if !strings.HasPrefix(id, tc.prefix+"_") {
			t.Errorf("Next(%q) = %q, want %q_ prefix", tc.prefix, id, tc.prefix)
		}
	}
}

func TestIDGenerator_ConcurrentCallsStayUnique(t *testing.T) {
	g := NewIDGenerator()

	const workers = 8
	const perWorker = 500

	ids := make(chan string, workers*perWorker)
	done := make(chan struct{})
	for w := 0; w < workers; w++ {
		go func() {
			for i := 0; i < perWorker; i++ {
				ids <- g.Next(PrefixBot)
			}
			done <- struct{}{}
		}()
	}
	for w := 0; w < workers; w++ {
		<-done
	}
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id under concurrency: %q", id)
		}
		seen[id] = true
	}
}

// =============================================================================
// STATUS TESTS
// =============================================================================

func TestDeliveryStatus_Glyph(t *testing.T) {
	tests := []struct {
		status DeliveryStatus
		want   string
	}{
		{StatusSending, ""},
		{StatusDelivered, "✓"},
		{StatusRead, "✓✓"},
		{StatusNone, ""},
	}

	for _, tc := range tests {
		if got := tc.status.Glyph(); got != tc.want {
			t.Errorf("Glyph(%q) = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestMessage_BotMessagesHaveNoStatus(t *testing.T) {
	msg := NewBotMessage("b_1", "hi there")
	if msg.Status != StatusNone {
		t.Errorf("bot message status = %q, want none", msg.Status)
	}
	if msg.IsUser() {
		t.Error("bot message should not report IsUser")
	}
}
