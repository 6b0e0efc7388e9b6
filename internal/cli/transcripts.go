// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// transcripts.go - "ehub transcripts" manages saved conversations.
//
// Subcommands:
//   list             List saved transcripts (default)
//   show <id>        Print a transcript
//   export <id>      Print a transcript as markdown
//   delete <id>      Delete a transcript
//   clear            Delete all transcripts

package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/ehub-tui/internal/config"
	"github.com/jeranaias/ehub-tui/internal/storage"
	"github.com/jeranaias/ehub-tui/internal/util"
)

func runTranscripts(args *Args) int {
	cfg, err := config.Load()
	if err != nil {
		return fail(err)
	}
	path, err := cfg.TranscriptsPath()
	if err != nil {
		return fail(err)
	}
	store, err := storage.Open(path)
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	ctx := context.Background()

	switch args.Subcommand {
	case "", "list":
		return listTranscripts(ctx, store)

	case "show":
		if len(args.Raw) == 0 {
			return fail(errors.New("usage: ehub transcripts show <id>"))
		}
		return showTranscript(ctx, store, args.Raw[0], false)

	case "export":
		if len(args.Raw) == 0 {
			return fail(errors.New("usage: ehub transcripts export <id>"))
		}
		return showTranscript(ctx, store, args.Raw[0], true)

	case "delete":
		if len(args.Raw) == 0 {
			return fail(errors.New("usage: ehub transcripts delete <id>"))
		}
		if err := store.Delete(ctx, args.Raw[0]); err != nil {
			return fail(err)
		}
		fmt.Println("Deleted", args.Raw[0])
		return 0

	case "clear":
		if err := store.Clear(ctx); err != nil {
			return fail(err)
		}
		fmt.Println("All transcripts deleted.")
		return 0

	default:
		return fail(fmt.Errorf("unknown subcommand %q", args.Subcommand))
	}
}

func listTranscripts(ctx context.Context, store *storage.TranscriptStore) int {
	metas, err := store.List(ctx)
	if err != nil {
		return fail(err)
	}
	if len(metas) == 0 {
		fmt.Println("No transcripts saved.")
		return 0
	}

	fmt.Println(util.PadRight("ID", 20) + " " +
		util.PadRight("Updated", 17) + " " +
		util.PadRight("Msgs", 5) + " Title")
	for _, m := range metas {
		fmt.Println(util.PadRight(m.ID, 20) + " " +
			util.PadRight(m.UpdatedAt.Format("2006-01-02 15:04"), 17) + " " +
			util.PadRight(strconv.Itoa(m.MessageCount), 5) + " " +
			util.TruncateWidth(m.Title, 40))
	}
	return 0
}

func showTranscript(ctx context.Context, store *storage.TranscriptStore, id string, asMarkdown bool) int {
	t, err := store.Load(ctx, id)
	if err != nil {
		return fail(err)
	}

	if asMarkdown {
		fmt.Print(exportMarkdown(t))
		return 0
	}

	fmt.Printf("%s (%s, %d messages)\n\n", t.Title, t.ID, t.MessageCount)
	for _, msg := range t.Messages {
		label := msg.Sender.DisplayName()
		fmt.Printf("[%s] %s: %s\n", msg.Time, label, msg.Text)
	}
	return 0
}

// exportMarkdown renders a transcript as a markdown document.
func exportMarkdown(t *storage.Transcript) string {
	var sb strings.Builder
	sb.WriteString("# " + t.Title + "\n\n")
	sb.WriteString("Saved: " + t.UpdatedAt.Format("2006-01-02 15:04") + "\n\n---\n\n")
	for _, msg := range t.Messages {
		label := "**" + msg.Sender.DisplayName() + "**"
		sb.WriteString(label + " (" + msg.Time + "):\n\n")
		sb.WriteString(msg.Text)
		sb.WriteString("\n\n---\n\n")
	}
	return sb.String()
}
