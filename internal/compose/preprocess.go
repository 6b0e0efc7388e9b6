// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package compose normalizes heterogeneous backend responses into one
// renderable markdown document.
package compose

import (
	"regexp"
	"strings"
)

// brTag matches HTML line breaks in any of their spellings.
var brTag = regexp.MustCompile(`(?i)<br\s*/?>`)

// Preprocess cleans a composed document before markdown rendering.
// Backends habitually leak HTML line breaks, CRLF line endings and escaped
// entities into their text fields; renderers expect plain markdown.
func Preprocess(raw string) string {
	t := brTag.ReplaceAllString(raw, "\n")
	t = strings.ReplaceAll(t, "\r\n", "\n")
	t = strings.ReplaceAll(t, "&lt;", "<")
	t = strings.ReplaceAll(t, "&gt;", ">")
	t = strings.ReplaceAll(t, "&amp;", "&")
	return t
}
