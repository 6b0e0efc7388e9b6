// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat message log.
//
// The package provides three building blocks:
//
//   - Message: one entry in the transcript, authored by the user or the bot.
//     User messages carry a simulated delivery status (sending -> delivered
//     -> read); bot messages are immutable once appended.
//   - IDGenerator: process-unique, creation-ordered message IDs with a
//     caller-supplied role prefix.
//   - Log: the append/patch-only message collection that every other
//     component mutates through Append/Patch/Reset. It is the single source
//     of truth for what gets rendered.
//
// The log performs a diagnostic integrity check on every append: duplicate
// or missing IDs are reported through a pluggable warn function but never
// interrupt rendering.
package model
