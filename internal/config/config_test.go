package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8069", cfg.ServerURL)
	assert.Equal(t, "/customer_support/chatbot/message", cfg.MessagePath)
	assert.Equal(t, "/customer_support/chatbot/clear", cfg.ClearPath)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SUPPORT_SERVER_URL", "https://support.example.com")
	t.Setenv("SUPPORT_MESSAGE_PATH", "/chat/message")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://support.example.com", cfg.ServerURL)
	assert.Equal(t, "/chat/message", cfg.MessagePath)
}

func TestEndpointTrimsTrailingSlash(t *testing.T) {
	cfg := &Config{ServerURL: "http://localhost:8069/"}
	assert.Equal(t, "http://localhost:8069/chat", cfg.Endpoint("/chat"))
}
