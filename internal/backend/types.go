// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the E-Hub assistant backend.
package backend

import (
	"encoding/json"
)

// =============================================================================
// WIRE TYPES
// =============================================================================

// ChatRequest is the JSON body of an outbound dispatch.
type ChatRequest struct {
	Message string `json:"message"`
}

// RawResponse is the backend's reply as received. All recognized fields are
// optional and any unrecognized shape is legal; Raw always holds the full
// payload so the normalizer can fall back to serializing it.
type RawResponse struct {
	// Primary text, in precedence order.
	Reply   string `json:"reply,omitempty"`
	Message string `json:"message,omitempty"`

	// Generated images, in the order they must be rendered after the text.
	Images      []string `json:"images,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	ImageBase64 string   `json:"imageBase64,omitempty"`
	ImageMime   string   `json:"imageMime,omitempty"`

	// Raw is the undecoded payload.
	Raw json.RawMessage `json:"-"`
}

// Text returns the first non-empty primary text field.
func (r *RawResponse) Text() string {
	if r.Reply != "" {
		return r.Reply
	}
	return r.Message
}

// Decode parses a payload into a RawResponse. A payload that is not a JSON
// object is not an error: the recognized fields stay empty and Raw keeps
// the bytes for fallback serialization.
func Decode(payload []byte) *RawResponse {
	resp := &RawResponse{Raw: json.RawMessage(payload)}
	// Best effort; shape violations are tolerated by contract.
	_ = json.Unmarshal(payload, resp)
	return resp
}
