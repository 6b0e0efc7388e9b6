// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"strings"
	"sync"
)

// =============================================================================
// BOT ENGINE
// =============================================================================

// Reply is one canned assistant response along with the follow-up context
// it leaves behind for the next message.
type Reply struct {
	Text        string
	Images      []string
	ImageURL    string
	ImageBase64 string
	ImageMime   string

	// nextContext carries conversation state ("" clears it).
	nextContext string
}

// BotEngine produces rule-based replies for the development server.
// Conversation context is tracked per session key so a "career" question
// can steer how the next message is interpreted.
type BotEngine struct {
	mu       sync.Mutex
	contexts map[string]string
}

// NewBotEngine creates a bot engine with no active contexts.
func NewBotEngine() *BotEngine {
	return &BotEngine{contexts: make(map[string]string)}
}

// Respond returns a reply for input, advancing the session's context.
func (e *BotEngine) Respond(session, input string) Reply {
	e.mu.Lock()
	ctx := e.contexts[session]
	e.mu.Unlock()

	r := evaluate(strings.ToLower(input), ctx)

	e.mu.Lock()
	if r.nextContext == "" {
		delete(e.contexts, session)
	} else {
		e.contexts[session] = r.nextContext
	}
	e.mu.Unlock()

	return r
}

// tiny 1x1 transparent PNG, used for the base64 demo shape
const demoPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func evaluate(text, ctx string) Reply {
	// Contextual flow first.
	if ctx == "career" {
		switch {
		case strings.Contains(text, "ai"):
			return Reply{Text: "🧠 AI/ML Path:\n1️⃣ Learn Python\n2️⃣ Math for ML\n3️⃣ Study Algorithms\n4️⃣ Build Projects\n5️⃣ Learn Deep Learning 🚀"}
		case strings.Contains(text, "web"):
			return Reply{Text: "🌐 Web Dev Path:\n→ HTML, CSS, JS\n→ React.js\n→ Node.js / Express\n→ Build 3+ Projects 💻"}
		case strings.Contains(text, "app"):
			return Reply{Text: "📱 App Dev Path:\n→ Learn React Native or Flutter\n→ Practice small UI apps\n→ Integrate APIs\n→ Publish on Play Store!"}
		}
	}

	// Image demo shapes so a client can exercise every response field.
	switch {
	case strings.Contains(text, "gallery"):
		return Reply{
			Text: "Here are a few study resources:",
			Images: []string{
				"https://placehold.co/240x135.png",
				"https://placehold.co/240x136.png",
			},
		}
	case strings.Contains(text, "logo"):
		return Reply{
			Text:     "Here is the E-Hub logo:",
			ImageURL: "https://placehold.co/128x128.png",
		}
	case strings.Contains(text, "badge"):
		return Reply{
			Text:        "Your learner badge:",
			ImageBase64: demoPNG,
			ImageMime:   "image/png",
		}
	}

	// General responses.
	switch {
	case strings.Contains(text, "hello"), strings.Contains(text, "hi"):
		return Reply{Text: "👋 Hey there! How can I assist you today?"}
	case strings.Contains(text, "career"), strings.Contains(text, "guidance"):
		return Reply{
			Text:        "🎯 Career guidance is my thing! Which field interests you most?\n👉 AI/ML\n👉 Web Dev\n👉 App Dev",
			nextContext: "career",
		}
	case strings.Contains(text, "bye"), strings.Contains(text, "thank"):
		return Reply{Text: "😊 You're always welcome! Keep learning and growing with E-Hub!"}
	}

	return Reply{Text: "🤔 I'm still learning! Could you be more specific?"}
}
