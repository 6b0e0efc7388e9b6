// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package compose normalizes heterogeneous backend responses into one
// renderable markdown document.
//
// A backend reply can mix up to four content shapes: a primary text field,
// an array of image URLs, a single image URL, and a base64-encoded image
// payload. Document reconciles any subset of those into a single string in
// a fixed reading order — text first, then images — using an ordered list
// of independent extractors rather than shape-sniffing conditionals. The
// ordering is a contract: it determines what the user reads first.
//
// Normalization never fails a turn. An empty or unparseable response
// degrades to a serialization of the raw payload, and finally to the
// literal "No response".
package compose
