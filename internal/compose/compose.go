// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package compose normalizes heterogeneous backend responses into one
// renderable markdown document.
package compose

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/jeranaias/ehub-tui/internal/backend"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// Fallback is the document produced when the response yields no content at
// all, not even a serializable payload.
const Fallback = "No response"

// DefaultImageMime is assumed for base64 payloads without a MIME hint.
const DefaultImageMime = "image/png"

// =============================================================================
// EXTRACTOR PIPELINE
// =============================================================================

// An extractor pulls zero or more markdown fragments out of a response.
// Extractors are independent of each other; the pipeline order below is the
// fixed reading order of the composed document.
type extractor func(r *backend.RawResponse) []string

// imageExtractors runs the image shapes in their contract order: images[]
// entries, then the standalone imageUrl, then the base64 payload.
var imageExtractors = []extractor{
	extractImageArray,
	extractImageURL,
	extractImageBase64,
}

// Document composes the renderable markdown document for a backend reply.
// The text block comes first and always ends with a blank-line separator;
// image fragments follow, themselves joined with blank lines.
//
// Document is a pure function of its input: composing the same response
// twice yields the same string.
func Document(r *backend.RawResponse) string {
	if r == nil {
		return Fallback
	}

	var doc string
	if t := extractText(r); len(t) > 0 {
		doc = t[0] + "\n\n"
	}

	var images []string
	for _, extract := range imageExtractors {
		images = append(images, extract(r)...)
	}
	doc += strings.Join(images, "\n\n")

	if strings.TrimSpace(doc) != "" {
		return doc
	}

	if s := serializeRaw(r.Raw); s != "" {
		return s
	}
	return Fallback
}

// extractText yields the primary text block, preferring "reply" over
// "message".
func extractText(r *backend.RawResponse) []string {
	if text := r.Text(); strings.TrimSpace(text) != "" {
		return []string{text}
	}
	return nil
}

// extractImageArray converts each images[] URL into a markdown image tag,
// preserving array order. Empty entries are dropped, as the original
// contract does.
func extractImageArray(r *backend.RawResponse) []string {
	var parts []string
	for _, u := range r.Images {
		if u != "" {
			parts = append(parts, imageTag(u))
		}
	}
	return parts
}

// extractImageURL yields the standalone imageUrl field.
func extractImageURL(r *backend.RawResponse) []string {
	if r.ImageURL != "" {
		return []string{imageTag(r.ImageURL)}
	}
	return nil
}

// extractImageBase64 converts the base64 payload into a data URI tag,
// honoring the optional MIME hint.
func extractImageBase64(r *backend.RawResponse) []string {
	if r.ImageBase64 == "" {
		return nil
	}
	return []string{imageTag(DataURI(r.ImageBase64, r.ImageMime))}
}

// imageTag wraps a URL or data URI in the renderer's image convention.
func imageTag(uri string) string {
	return "![](" + uri + ")"
}

// =============================================================================
// DATA URI CONVERSION
// =============================================================================

// DataURI turns a base64 payload into a data URI. Payloads that already are
// fully-qualified data URIs pass through untouched; otherwise the MIME hint
// is applied, defaulting to image/png.
func DataURI(b64, mime string) string {
	if b64 == "" {
		return ""
	}
	if strings.HasPrefix(b64, "data:") {
		return b64
	}
	if mime == "" {
		mime = DefaultImageMime
	}
	return "data:" + mime + ";base64," + b64
}

// =============================================================================
// FALLBACK SERIALIZATION
// =============================================================================

// serializeRaw renders the whole raw payload as compact JSON for the
// fallback document. Payloads with no information content ({} , [], null,
// "") serialize to "" so the caller falls through to the fixed fallback.
func serializeRaw(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		// Not JSON; show it as-is rather than dropping the turn.
		return strings.TrimSpace(string(trimmed))
	}

	switch buf.String() {
	case "{}", "[]", "null", `""`:
		return ""
	}
	return buf.String()
}
