// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server implements the ehub development backend.
//
// It serves the same wire contract the real assistant backend speaks:
// POST /chat with {"message": "..."} returning a JSON object whose
// optional fields (reply, images, imageUrl, imageBase64) cover every
// shape the client normalizer handles. Useful for offline development
// and for exercising the client end to end.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/jeranaias/ehub-tui/internal/config"
)

// =============================================================================
// WIRE TYPES
// =============================================================================

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply       string   `json:"reply"`
	Images      []string `json:"images,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	ImageBase64 string   `json:"imageBase64,omitempty"`
	ImageMime   string   `json:"imageMime,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// maxRequestBytes bounds one chat request body.
const maxRequestBytes = 64 * 1024

// =============================================================================
// SERVER
// =============================================================================

// Server is the development chat backend.
type Server struct {
	cfg    *config.Config
	engine *BotEngine

	// Delay simulates backend latency before each reply.
	Delay time.Duration
}

// New creates a development server from config.
func New(cfg *config.Config) *Server {
	return &Server{
		cfg:    cfg,
		engine: NewBotEngine(),
	}
}

// Handler returns the full HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/chat", s.handleChat)
	mux.HandleFunc("/health", s.handleHealth)

	limiter := NewIPRateLimiter(s.cfg.Server.RateLimit)
	return Recover(RequestID(Logging(limiter.Middleware(mux))))
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("SERVER: listening on %s", s.cfg.Server.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// =============================================================================
// HANDLERS
// =============================================================================

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req chatRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message must not be empty")
		return
	}

	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-r.Context().Done():
			return
		}
	}

	reply := s.engine.Respond(sessionKey(r), req.Message)

	writeJSON(w, http.StatusOK, chatResponse{
		Reply:       reply.Text,
		Images:      reply.Images,
		ImageURL:    reply.ImageURL,
		ImageBase64: reply.ImageBase64,
		ImageMime:   reply.ImageMime,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sessionKey identifies a conversation for context tracking. The client
// sends no session header, so the remote address is the best we have.
func sessionKey(r *http.Request) string {
	return clientIP(r)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("SERVER: failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
