// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// serve.go - "ehub serve" runs the development mock backend so the chat
// client can be exercised without a real assistant deployment.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jeranaias/ehub-tui/internal/config"
	"github.com/jeranaias/ehub-tui/internal/server"
)

func runServe(args *Args) int {
	cfg, err := config.Load()
	if err != nil {
		return fail(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !args.Quiet {
		fmt.Printf("ehub serve: mock backend on http://%s/chat (Ctrl+C to stop)\n", cfg.Server.Listen)
	}

	if err := server.New(cfg).ListenAndServe(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fail(err)
	}
	return 0
}
