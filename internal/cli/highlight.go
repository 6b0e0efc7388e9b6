// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// =============================================================================
// CODE BLOCK HIGHLIGHTING
// =============================================================================

// HighlightCodeBlocks syntax-highlights fenced code blocks in a markdown
// document for terminal output, leaving prose untouched. Used when the
// full markdown renderer is disabled.
func HighlightCodeBlocks(doc string) string {
	lines := strings.Split(doc, "\n")
	var out strings.Builder

	var inBlock bool
	var lang string
	var block []string

	flush := func() {
		code := strings.Join(block, "\n")
		var buf strings.Builder
		if err := quick.Highlight(&buf, code, lang, "terminal256", "monokai"); err != nil {
			out.WriteString(code)
		} else {
			out.WriteString(strings.TrimRight(buf.String(), "\n"))
		}
		out.WriteString("\n")
		block = block[:0]
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if inBlock {
				flush()
				inBlock = false
			} else {
				inBlock = true
				lang = strings.TrimPrefix(trimmed, "```")
				if lang == "" {
					lang = "text"
				}
			}
			continue
		}
		if inBlock {
			block = append(block, line)
		} else {
			out.WriteString(line)
			out.WriteString("\n")
		}
	}

	// Unterminated fence: emit what we collected.
	if inBlock {
		flush()
	}

	return strings.TrimRight(out.String(), "\n")
}
