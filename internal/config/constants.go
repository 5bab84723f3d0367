package config

import "time"

const (
	// Reply request timeout
	RequestTimeout = 90 * time.Second

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Greeting seeded into a fresh or cleared conversation
	Greeting = "👋 Hi! I'm the Dragon Coders support assistant. Ask me about our products, services, pricing or documentation."
)

// QuickReplies are the fixed payloads offered as one-tap shortcuts.
// They bypass the input field entirely.
var QuickReplies = []string{
	"What services do you offer?",
	"How do I create a support ticket?",
	"Talk to a human agent",
}
