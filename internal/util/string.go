// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// =============================================================================
// DISPLAY WIDTH HELPERS
// =============================================================================

// DisplayWidth returns the number of terminal cells s occupies.
// Wide CJK runes count as two cells.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateWidth truncates s to at most width display cells, appending an
// ellipsis when anything was cut. Width below 2 returns an empty string.
func TruncateWidth(s string, width int) string {
	if width < 2 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight pads s with spaces to exactly width display cells,
// truncating first when it is too long.
func PadRight(s string, width int) string {
	s = TruncateWidth(s, width)
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// FirstLine returns s up to the first newline, trimmed.
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
