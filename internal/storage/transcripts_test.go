// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jeranaias/ehub-tui/internal/model"
)

func openTestStore(t *testing.T) *TranscriptStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "transcripts.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleMessages() []model.Message {
	return []model.Message{
		{ID: "u_1_0", Sender: model.SenderUser, Text: "Hello there", Time: "09:15", Status: model.StatusRead},
		{ID: "b_2_1", Sender: model.SenderBot, Text: "Hi! How can I help?", Time: "09:16"},
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, "", sampleMessages())
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if id == "" {
		t.Fatal("Save() returned empty ID")
	}

	got, err := store.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Title != "Hello there" {
		t.Errorf("Title = %q", got.Title)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("len(Messages) = %d, want 2", len(got.Messages))
	}
	if got.Messages[0].ID != "u_1_0" || got.Messages[0].Sender != model.SenderUser {
		t.Errorf("first message = %+v", got.Messages[0])
	}
	if got.Messages[0].Status != model.StatusRead {
		t.Errorf("Status = %v, want StatusRead", got.Messages[0].Status)
	}
	if got.Messages[1].Sender != model.SenderBot {
		t.Errorf("second sender = %v", got.Messages[1].Sender)
	}
	if got.Messages[0].Time != "09:15" {
		t.Errorf("Time = %q, want %q", got.Messages[0].Time, "09:15")
	}
}

func TestSaveReplacesMessages(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, "", sampleMessages())
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	longer := append(sampleMessages(),
		model.Message{ID: "u_3_2", Sender: model.SenderUser, Text: "Follow up", Time: "09:20"})
	if _, err := store.Save(ctx, id, longer); err != nil {
		t.Fatalf("re-Save() error: %v", err)
	}

	got, err := store.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(got.Messages) != 3 {
		t.Errorf("len(Messages) = %d, want 3 after re-save", len(got.Messages))
	}
}

func TestLoadNotFound(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Load(context.Background(), "t_missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first, _ := store.Save(ctx, "", sampleMessages())
	time.Sleep(5 * time.Millisecond)
	second, _ := store.Save(ctx, "", []model.Message{
		{ID: "u_9_0", Sender: model.SenderUser, Text: "Newer chat", Time: model.ClockTime()},
	})

	metas, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("len(metas) = %d, want 2", len(metas))
	}
	// Most recent first.
	if metas[0].ID != second {
		t.Errorf("metas[0].ID = %q, want %q", metas[0].ID, second)
	}
	if metas[1].ID != first {
		t.Errorf("metas[1].ID = %q, want %q", metas[1].ID, first)
	}
	if metas[1].MessageCount != 2 {
		t.Errorf("MessageCount = %d, want 2", metas[1].MessageCount)
	}
}

func TestDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, _ := store.Save(ctx, "", sampleMessages())
	if err := store.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := store.Load(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() after delete = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() = %v, want ErrNotFound", err)
	}
}

func TestClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.Save(ctx, "", sampleMessages())
	store.Save(ctx, "", sampleMessages())

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	metas, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(metas) != 0 {
		t.Errorf("len(metas) = %d after Clear, want 0", len(metas))
	}
}

func TestTranscriptTitleFallback(t *testing.T) {
	got := transcriptTitle([]model.Message{
		{ID: "b_1_0", Sender: model.SenderBot, Text: "Hi!"},
	})
	if got != "New conversation" {
		t.Errorf("title = %q", got)
	}
}
