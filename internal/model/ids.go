// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat message log.
package model

import (
	"strconv"
	"sync"
	"time"
)

// =============================================================================
// ID GENERATOR
// =============================================================================

// ID prefixes distinguish message roles at a glance when reading logs or
// stored transcripts.
const (
	PrefixUser     = "u"
	PrefixBot      = "b"
	PrefixBotError = "b_err"
)

// IDGenerator produces process-unique message IDs of the form
// "<prefix>_<unix-millis>_<counter>". The counter is strictly increasing,
// so IDs stay unique even when many are generated within the same clock
// tick, and lexical inspection preserves creation order per prefix.
type IDGenerator struct {
	mu      sync.Mutex
	counter uint64

	// now is swappable for tests.
	now func() time.Time
}

// NewIDGenerator creates a generator with the counter starting at 1.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// Next returns the next unique ID for the given prefix.
func (g *IDGenerator) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.counter++
	ms := g.now().UnixMilli()
	return prefix + "_" + strconv.FormatInt(ms, 10) + "_" + strconv.FormatUint(g.counter, 10)
}
