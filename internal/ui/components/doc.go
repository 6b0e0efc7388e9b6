// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the ehub TUI:
// message bubbles, the typing indicator, the markdown renderer, and the
// welcome card with quick replies.
package components
