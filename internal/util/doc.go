// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers: display-width aware string
// truncation and padding for terminal rendering, and atomic file writes
// for config and transcript persistence.
package util
