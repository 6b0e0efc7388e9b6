// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists chat transcripts to a local SQLite database.
package storage

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/ehub-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound = errors.New("transcript not found")
)

// =============================================================================
// TYPES
// =============================================================================

// TranscriptMeta describes a saved transcript without its messages.
type TranscriptMeta struct {
	ID           string
	Title        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	MessageCount int
}

// Transcript is a saved conversation with its full message list.
type Transcript struct {
	TranscriptMeta
	Messages []model.Message
}

// =============================================================================
// TRANSCRIPT STORE
// =============================================================================

// TranscriptStore persists transcripts in SQLite.
type TranscriptStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS transcripts (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS messages (
	transcript_id TEXT NOT NULL REFERENCES transcripts(id) ON DELETE CASCADE,
	position      INTEGER NOT NULL,
	id            TEXT NOT NULL,
	sender        TEXT NOT NULL,
	text          TEXT NOT NULL,
	status        TEXT NOT NULL,
	sent_at       TEXT NOT NULL,
	PRIMARY KEY (transcript_id, position)
);
CREATE INDEX IF NOT EXISTS idx_messages_transcript ON messages(transcript_id);
`

// Open opens (or creates) the transcript database at path.
func Open(path string) (*TranscriptStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to configure database: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &TranscriptStore{db: db}, nil
}

// Close closes the underlying database.
func (s *TranscriptStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// SAVE
// =============================================================================

// Save persists a transcript and returns its ID. An empty id creates a new
// transcript; a known id replaces its messages.
func (s *TranscriptStore) Save(ctx context.Context, id string, messages []model.Message) (string, error) {
	if id == "" {
		id = generateTranscriptID()
	}

	now := time.Now()
	title := transcriptTitle(messages)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO transcripts (id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, updated_at = excluded.updated_at`,
		id, title, now.UnixMilli(), now.UnixMilli())
	if err != nil {
		return "", fmt.Errorf("failed to save transcript: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE transcript_id = ?`, id); err != nil {
		return "", err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO messages (transcript_id, position, id, sender, text, status, sent_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for i, m := range messages {
		_, err := stmt.ExecContext(ctx, id, i, m.ID, string(m.Sender), m.Text, string(m.Status), m.Time)
		if err != nil {
			return "", fmt.Errorf("failed to save message %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// transcriptTitle derives a title from the first user message.
func transcriptTitle(messages []model.Message) string {
	for _, m := range messages {
		if m.Sender == model.SenderUser && m.Text != "" {
			t := model.Message{Text: strings.ReplaceAll(m.Text, "\n", " ")}
			return t.Preview(50)
		}
	}
	return "New conversation"
}

// =============================================================================
// LOAD / LIST
// =============================================================================

// Load retrieves a full transcript by ID.
func (s *TranscriptStore) Load(ctx context.Context, id string) (*Transcript, error) {
	var t Transcript
	var created, updated int64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, created_at, updated_at FROM transcripts WHERE id = ?`, id).
		Scan(&t.ID, &t.Title, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	t.CreatedAt = time.UnixMilli(created)
	t.UpdatedAt = time.UnixMilli(updated)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sender, text, status, sent_at
		FROM messages WHERE transcript_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m model.Message
		var sender, status string
		if err := rows.Scan(&m.ID, &sender, &m.Text, &status, &m.Time); err != nil {
			return nil, err
		}
		m.Sender = model.Sender(sender)
		m.Status = model.DeliveryStatus(status)
		t.Messages = append(t.Messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	t.MessageCount = len(t.Messages)
	return &t, nil
}

// List returns metadata for all transcripts, most recent first.
func (s *TranscriptStore) List(ctx context.Context) ([]TranscriptMeta, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.title, t.created_at, t.updated_at, COUNT(m.id)
		FROM transcripts t
		LEFT JOIN messages m ON m.transcript_id = t.id
		GROUP BY t.id
		ORDER BY t.updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metas []TranscriptMeta
	for rows.Next() {
		var meta TranscriptMeta
		var created, updated int64
		if err := rows.Scan(&meta.ID, &meta.Title, &created, &updated, &meta.MessageCount); err != nil {
			return nil, err
		}
		meta.CreatedAt = time.UnixMilli(created)
		meta.UpdatedAt = time.UnixMilli(updated)
		metas = append(metas, meta)
	}
	return metas, rows.Err()
}

// =============================================================================
// DELETE
// =============================================================================

// Delete removes a transcript and its messages.
func (s *TranscriptStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transcripts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes every transcript.
func (s *TranscriptStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM transcripts`)
	return err
}

// =============================================================================
// HELPERS
// =============================================================================

func generateTranscriptID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return "t_" + hex.EncodeToString(b)
}
