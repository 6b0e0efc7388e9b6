// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the E-Hub assistant backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeBadStatus
)

// Sentinel errors for easy checking.
var (
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrUnreachable = &ClientError{Type: ErrTypeConnection, Message: "backend unreachable"}
)

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// MaxResponseBytes caps how much of a response body is read (base64 image
// payloads can be large, anything beyond this is abuse).
const MaxResponseBytes = 8 * 1024 * 1024

// DefaultTimeout is the client-enforced bound on one dispatch.
const DefaultTimeout = 20000 * time.Millisecond

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the chat endpoint, e.g. "http://127.0.0.1:5000/chat".
	BaseURL string

	// Timeout bounds one dispatch end to end (default: 20s).
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:5000/chat",
		Timeout: DefaultTimeout,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client dispatches user messages to the assistant backend.
//
// The Client is thread-safe for concurrent use; each Send is an independent
// fire-and-forget call with no ordering relationship to any other.
//
// Example:
//
//	client := backend.NewClient()
//	resp, err := client.Send(ctx, "Show me an AI learning roadmap")
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:5000/chat"
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// =============================================================================
// DISPATCH
// =============================================================================

// Send posts one composed message and returns the raw response.
//
// Failures collapse into the ClientError taxonomy: timeouts surface as
// ErrTimeout, connection problems as ErrUnreachable, and non-2xx statuses
// as ErrTypeBadStatus. The caller treats all of them identically, so the
// distinction exists only for diagnostics.
func (c *Client) Send(ctx context.Context, text string) (*RawResponse, error) {
	body, err := json.Marshal(ChatRequest{Message: text})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnknown, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeoutErr(err) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drain(resp.Body)
		return nil, &ClientError{
			Type:    ErrTypeBadStatus,
			Message: "chat request failed: " + resp.Status,
		}
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes))
	if err != nil {
		if isTimeoutErr(err) {
			return nil, ErrTimeout
		}
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to read response", Cause: err}
	}

	return Decode(payload), nil
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// SetBaseURL updates the chat endpoint. Used by config hot reload; calls
// already in flight keep the URL they started with.
func (c *Client) SetBaseURL(baseURL string) {
	if baseURL != "" {
		c.config.BaseURL = baseURL
	}
}

// isTimeoutErr recognizes the shapes a client-side timeout arrives in:
// a context deadline, or a url.Error with the timeout flag set (which is
// what http.Client.Timeout produces).
func isTimeoutErr(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Timeout()
	}
	return false
}

// drain discards the remainder of a response body so the connection can be
// reused.
func drain(r io.Reader) {
	io.Copy(io.Discard, io.LimitReader(r, MaxResponseBytes))
}
