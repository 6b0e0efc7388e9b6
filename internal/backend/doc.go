// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the E-Hub assistant backend.
//
// The wire contract is a single POST to the configured endpoint with a JSON
// body {"message": "<text>"}. The response is a loose JSON object in which
// every field is optional:
//
//	{
//	  "reply":       "...",          // primary text (or "message")
//	  "images":      ["https://..."],
//	  "imageUrl":    "https://...",
//	  "imageBase64": "...",          // raw base64 or full data URI
//	  "imageMime":   "image/jpeg"
//	}
//
// Any other shape is accepted: the raw payload is retained on RawResponse
// so the normalizer can degrade gracefully.
//
// One Send call is issued per user submission. There is no retry, no
// deduplication and no queueing; concurrent calls are independent and no
// ordering between them is enforced. Each call is bounded by the client
// timeout (20s by default), after which it fails with ErrTimeout — which
// callers are expected to treat like any other dispatch failure.
package backend
