// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the chat view and its message pipeline.
//
// The pipeline is single-threaded: every mutation of chat state happens
// inside Update. Network dispatches and timers run as Bubble Tea commands
// and deliver their results back as messages, so no locking is needed on
// the transcript itself.
//
// Lifecycle of one user message:
//
//  1. Submit appends it with status "sending" and fires three commands:
//     the backend dispatch, and two per-message timers that advance the
//     status to "delivered" and "read" on a fixed schedule.
//  2. The dispatch result is normalized into a single markdown document.
//  3. A presentation timer proportional to the reply length delays the
//     bot bubble, with the typing indicator visible while any dispatch
//     is outstanding. Failures present immediately as an error bubble.
package chat
