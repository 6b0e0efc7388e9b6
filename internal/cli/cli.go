// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses arguments and runs the ehub commands.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI         Command = iota // Default: full-screen chat
	CmdChat                       // Line-based REPL chat
	CmdServe                      // Development mock backend
	CmdTranscripts                // Saved transcript management
	CmdConfig                     // Config inspection
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	Command Command

	// Global flags
	BackendURL string // --backend overrides the configured endpoint
	Plain      bool   // --plain disables markdown rendering in the REPL
	Quiet      bool

	// Command-specific
	Subcommand string
	Raw        []string
}

const usageText = `ehub - terminal chat client for the E-Hub assistant

Usage:
  ehub                 Start the full-screen chat TUI
  ehub chat            Start a line-based chat REPL
  ehub serve           Run the development mock backend
  ehub transcripts     Manage saved transcripts (list, show, delete, clear, export)
  ehub config          Show or initialize configuration
  ehub version         Print version information

Global flags:
  --backend URL        Chat endpoint (overrides config and EHUB_BACKEND_URL)
  --plain              Disable markdown rendering (chat REPL)
  -q, --quiet          Minimal output

Configuration:
  ~/.ehub/config.toml  (or config.json; TOML wins when both exist)

Environment:
  EHUB_BACKEND_URL     Chat endpoint
  EHUB_TIMEOUT_MS      Dispatch timeout in milliseconds
  EHUB_LISTEN          Bind address for ehub serve
  EHUB_TRANSCRIPTS     Transcript database path
`

// Usage prints the help text.
func Usage() {
	fmt.Print(usageText)
}

// Parse interprets os.Args-style arguments (without the program name).
func Parse(raw []string) *Args {
	args := &Args{Command: CmdTUI}

	p := NewArgParser(raw)
	args.BackendURL = p.Flag("backend")
	args.Plain = p.BoolFlag("plain")
	args.Quiet = p.BoolFlag("quiet") || p.BoolFlag("q")

	if p.BoolFlag("help") || p.BoolFlag("h") {
		args.Command = CmdHelp
		return args
	}
	if p.BoolFlag("version") || p.BoolFlag("v") {
		args.Command = CmdVersion
		return args
	}

	switch p.Subcommand() {
	case "":
		args.Command = CmdTUI
	case "chat":
		args.Command = CmdChat
	case "serve":
		args.Command = CmdServe
	case "transcripts", "sessions":
		args.Command = CmdTranscripts
	case "config":
		args.Command = CmdConfig
	case "version":
		args.Command = CmdVersion
	case "help":
		args.Command = CmdHelp
	default:
		fmt.Fprintf(os.Stderr, "ehub: unknown command %q\n\n", p.Subcommand())
		args.Command = CmdHelp
	}

	rest := p.Positional()
	if len(rest) > 1 {
		args.Subcommand = rest[1]
		args.Raw = rest[2:]
	}

	return args
}

// Run dispatches the parsed command. Returns a process exit code.
func Run(args *Args) int {
	switch args.Command {
	case CmdChat:
		return runChat(args)
	case CmdServe:
		return runServe(args)
	case CmdTranscripts:
		return runTranscripts(args)
	case CmdConfig:
		return runConfig(args)
	case CmdVersion:
		printVersion()
		return 0
	case CmdHelp:
		Usage()
		return 0
	default:
		return runTUI(args)
	}
}

func printVersion() {
	fmt.Printf("ehub %s (%s, %s, %s/%s)\n",
		Version, GitCommit, BuildDate, runtime.GOOS, runtime.GOARCH)
}

// fail prints an error to stderr and returns a nonzero exit code.
func fail(err error) int {
	fmt.Fprintln(os.Stderr, "ehub: "+strings.TrimSpace(err.Error()))
	return 1
}
