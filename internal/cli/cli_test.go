// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"
)

func TestParseCommands(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want Command
	}{
		{"no args", nil, CmdTUI},
		{"chat", []string{"chat"}, CmdChat},
		{"serve", []string{"serve"}, CmdServe},
		{"transcripts", []string{"transcripts"}, CmdTranscripts},
		{"sessions alias", []string{"sessions"}, CmdTranscripts},
		{"config", []string{"config"}, CmdConfig},
		{"version", []string{"version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"unknown falls to help", []string{"bogus"}, CmdHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.raw); got.Command != tt.want {
				t.Errorf("Parse(%v).Command = %v, want %v", tt.raw, got.Command, tt.want)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	args := Parse([]string{"chat", "--backend", "http://localhost:9999/chat", "--plain", "-q"})
	if args.BackendURL != "http://localhost:9999/chat" {
		t.Errorf("BackendURL = %q", args.BackendURL)
	}
	if !args.Plain {
		t.Error("Plain should be set")
	}
	if !args.Quiet {
		t.Error("Quiet should be set")
	}
}

func TestParseSubcommand(t *testing.T) {
	args := Parse([]string{"transcripts", "show", "t_abc123"})
	if args.Command != CmdTranscripts {
		t.Fatalf("Command = %v", args.Command)
	}
	if args.Subcommand != "show" {
		t.Errorf("Subcommand = %q", args.Subcommand)
	}
	if len(args.Raw) != 1 || args.Raw[0] != "t_abc123" {
		t.Errorf("Raw = %v", args.Raw)
	}
}

func TestArgParser(t *testing.T) {
	p := NewArgParser([]string{"show", "--format=json", "--backend", "http://x/chat", "--verbose", "extra"})

	if p.Subcommand() != "show" {
		t.Errorf("Subcommand = %q", p.Subcommand())
	}
	if p.Flag("format") != "json" {
		t.Errorf("Flag(format) = %q", p.Flag("format"))
	}
	if p.Flag("backend") != "http://x/chat" {
		t.Errorf("Flag(backend) = %q", p.Flag("backend"))
	}
	if !p.BoolFlag("verbose") {
		t.Error("BoolFlag(verbose) should be true")
	}
	if got := p.Positional(); len(got) != 2 || got[1] != "extra" {
		t.Errorf("Positional = %v", got)
	}
}

func TestArgParserExplicitBool(t *testing.T) {
	p := NewArgParser([]string{"--plain=false", "--json=true"})
	if p.BoolFlag("plain") {
		t.Error("plain=false should parse as false")
	}
	if !p.BoolFlag("json") {
		t.Error("json=true should parse as true")
	}
}

func TestHighlightCodeBlocks(t *testing.T) {
	doc := "Before\n```go\npackage main\n```\nAfter"
	got := HighlightCodeBlocks(doc)

	if !strings.Contains(got, "Before") || !strings.Contains(got, "After") {
		t.Error("prose lines lost")
	}
	if strings.Contains(got, "```") {
		t.Error("fences should be stripped")
	}
	if !strings.Contains(got, "package") {
		t.Error("code content lost")
	}
}

func TestHighlightCodeBlocksUnterminated(t *testing.T) {
	doc := "text\n```python\nprint(1)"
	got := HighlightCodeBlocks(doc)
	if !strings.Contains(got, "print") {
		t.Error("unterminated fence content lost")
	}
}
