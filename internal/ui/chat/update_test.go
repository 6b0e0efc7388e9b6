// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ehub-tui/internal/backend"
	"github.com/jeranaias/ehub-tui/internal/config"
	"github.com/jeranaias/ehub-tui/internal/model"
)

func newTestModel() *Model {
	return New(config.Default(), backend.NewClient(), nil)
}

// deliver runs a command and feeds every resulting message back through
// Update, expanding batches.
func deliver(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			deliver(t, m, c)
		}
	default:
		m.Update(msg)
	}
}

func TestSubmitAppendsSendingMessage(t *testing.T) {
	m := newTestModel()

	cmd := m.submit("Hello")
	if cmd == nil {
		t.Fatal("submit returned no command")
	}

	snap := m.log.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("log has %d messages, want 1", len(snap))
	}
	if snap[0].Sender != model.SenderUser || snap[0].Text != "Hello" {
		t.Errorf("unexpected message %+v", snap[0])
	}
	if snap[0].Status != model.StatusSending {
		t.Errorf("status = %v, want StatusSending", snap[0].Status)
	}
	if !m.TypingActive() {
		t.Error("typing indicator should be active after submit")
	}
	if m.showGreeting {
		t.Error("greeting should hide after the first message")
	}
}

func TestSubmitBlankIsNoOp(t *testing.T) {
	m := newTestModel()
	if cmd := m.submit("   "); cmd != nil {
		t.Error("blank submit should return nil")
	}
	if !m.log.IsEmpty() {
		t.Error("blank submit should not append")
	}
}

func TestDeliveryTickAdvancesStatus(t *testing.T) {
	m := newTestModel()
	m.submit("Hello")
	id := m.log.Snapshot()[0].ID

	m.Update(DeliveryTickMsg{ID: id, Status: model.StatusDelivered, Gen: m.gen})
	if got, _ := m.log.Get(id); got.Status != model.StatusDelivered {
		t.Errorf("status = %v, want StatusDelivered", got.Status)
	}

	m.Update(DeliveryTickMsg{ID: id, Status: model.StatusRead, Gen: m.gen})
	if got, _ := m.log.Get(id); got.Status != model.StatusRead {
		t.Errorf("status = %v, want StatusRead", got.Status)
	}
}

func TestStaleDeliveryTickIsDropped(t *testing.T) {
	m := newTestModel()
	m.submit("Hello")
	id := m.log.Snapshot()[0].ID

	m.Update(DeliveryTickMsg{ID: id, Status: model.StatusDelivered, Gen: m.gen - 1})
	if got, _ := m.log.Get(id); got.Status != model.StatusSending {
		t.Errorf("stale tick advanced status to %v", got.Status)
	}
}

func TestDispatchSuccessPresentsExactlyOneReply(t *testing.T) {
	m := newTestModel()
	m.submit("Hello")
	id := m.log.Snapshot()[0].ID

	_, cmd := m.Update(DispatchResultMsg{UserID: id, Doc: "Hi!", Gen: m.gen})
	if cmd == nil {
		t.Fatal("dispatch result produced no presentation command")
	}
	// Reply is not visible until the presentation timer fires, and the
	// typing indicator stays on for that whole window.
	if !m.TypingActive() {
		t.Error("typing indicator cleared before the reply was presented")
	}
	if len(m.log.Snapshot()) != 1 {
		t.Fatal("reply appeared before its presentation delay")
	}

	deliver(t, m, cmd)

	if m.TypingActive() {
		t.Error("typing indicator should clear when the reply appears")
	}
	snap := m.log.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("log has %d messages, want 2", len(snap))
	}
	if snap[1].Sender != model.SenderBot || snap[1].Text != "Hi!" {
		t.Errorf("bot message = %+v", snap[1])
	}
}

func TestDispatchErrorPresentsImmediately(t *testing.T) {
	m := newTestModel()
	m.submit("Hello")
	id := m.log.Snapshot()[0].ID

	start := time.Now()
	_, cmd := m.Update(DispatchResultMsg{UserID: id, Err: errors.New("boom"), Gen: m.gen})
	deliver(t, m, cmd)
	if time.Since(start) > 100*time.Millisecond {
		t.Error("error bubble should present without delay")
	}
	if m.TypingActive() {
		t.Error("typing indicator should clear when the dispatch fails")
	}

	snap := m.log.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("log has %d messages, want 2", len(snap))
	}
	if snap[1].Text != ErrorBubbleText {
		t.Errorf("error text = %q", snap[1].Text)
	}
	if !isErrorMessage(&snap[1]) {
		t.Errorf("message %q not recognized as an error bubble", snap[1].ID)
	}
	// Delivery timers keep running regardless of the failure.
	m.Update(DeliveryTickMsg{ID: id, Status: model.StatusRead, Gen: m.gen})
	if got, _ := m.log.Get(id); got.Status != model.StatusRead {
		t.Errorf("status = %v, want StatusRead even after a failed dispatch", got.Status)
	}
}

func TestTypingIndicatorRefCountsDispatches(t *testing.T) {
	m := newTestModel()
	m.submit("first")
	m.submit("second")
	snap := m.log.Snapshot()

	_, cmdA := m.Update(DispatchResultMsg{UserID: snap[0].ID, Doc: "a", Gen: m.gen})
	deliver(t, m, cmdA)
	if !m.TypingActive() {
		t.Error("indicator should stay visible while a dispatch is outstanding")
	}

	_, cmdB := m.Update(DispatchResultMsg{UserID: snap[1].ID, Doc: "b", Gen: m.gen})
	if !m.TypingActive() {
		t.Error("indicator should stay on until the last reply is presented")
	}
	deliver(t, m, cmdB)
	if m.TypingActive() {
		t.Error("indicator should clear once every reply is presented")
	}
}

func TestOutOfOrderResultsAppendInArrivalOrder(t *testing.T) {
	m := newTestModel()
	m.submit("first")
	m.submit("second")
	snap := m.log.Snapshot()

	// The reply to the second message arrives first.
	_, cmdB := m.Update(DispatchResultMsg{UserID: snap[1].ID, Doc: "reply-2", Gen: m.gen})
	deliver(t, m, cmdB)
	_, cmdA := m.Update(DispatchResultMsg{UserID: snap[0].ID, Doc: "reply-1", Gen: m.gen})
	deliver(t, m, cmdA)

	got := m.log.Snapshot()
	if len(got) != 4 {
		t.Fatalf("log has %d messages, want 4", len(got))
	}
	if got[2].Text != "reply-2" || got[3].Text != "reply-1" {
		t.Errorf("replies in order %q, %q; want arrival order", got[2].Text, got[3].Text)
	}
}

func TestResetDropsInFlightWork(t *testing.T) {
	m := newTestModel()
	m.submit("Hello")
	id := m.log.Snapshot()[0].ID
	oldGen := m.gen

	m.reset()

	if !m.log.IsEmpty() {
		t.Error("reset should clear the log")
	}
	if m.TypingActive() {
		t.Error("reset should clear the typing indicator")
	}
	if !m.showGreeting {
		t.Error("reset should restore the greeting")
	}

	// A result from before the reset must not produce a bubble.
	_, cmd := m.Update(DispatchResultMsg{UserID: id, Doc: "late", Gen: oldGen})
	if cmd != nil {
		t.Error("stale dispatch result should be dropped")
	}
	m.Update(DeliveryTickMsg{ID: id, Status: model.StatusRead, Gen: oldGen})
	if !m.log.IsEmpty() {
		t.Error("stale messages leaked into the reset log")
	}

	// A presentation scheduled before the reset is likewise dropped and
	// must not touch the zeroed typing count.
	m.Update(PresentMsg{Message: model.NewBotMessage("b_9_9", "late"), Gen: oldGen})
	if !m.log.IsEmpty() {
		t.Error("stale presentation leaked into the reset log")
	}
	if m.typing.Pending() != 0 {
		t.Errorf("typing count = %d after stale presentation, want 0", m.typing.Pending())
	}
}

func TestQuickReplySubmits(t *testing.T) {
	m := newTestModel()

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})

	snap := m.log.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("log has %d messages, want 1", len(snap))
	}
	if snap[0].Text != "Show me an AI learning roadmap" {
		t.Errorf("quick reply text = %q", snap[0].Text)
	}
}

func TestDigitsTypeNormallyAfterGreeting(t *testing.T) {
	m := newTestModel()
	m.submit("hello")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	if m.input.Value() != "1" {
		t.Errorf("input = %q, want the digit typed literally", m.input.Value())
	}
	if len(m.log.Snapshot()) != 1 {
		t.Error("digit after greeting should not submit a quick reply")
	}
}

func TestPresentationDelay(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Duration
	}{
		{"empty", "", 500 * time.Millisecond},
		{"short", "0123456789", 620 * time.Millisecond},
		{"at cap", strings.Repeat("b", 75), 1400 * time.Millisecond},
		{"beyond cap", strings.Repeat("b", 500), 1400 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := presentationDelay(tt.input); got != tt.want {
				t.Errorf("presentationDelay(%d runes) = %v, want %v", len([]rune(tt.input)), got, tt.want)
			}
		})
	}
}
