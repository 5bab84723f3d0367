package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Reply endpoint
	ServerURL   string `env:"SUPPORT_SERVER_URL" envDefault:"http://localhost:8069"`
	MessagePath string `env:"SUPPORT_MESSAGE_PATH" envDefault:"/customer_support/chatbot/message"`
	ClearPath   string `env:"SUPPORT_CLEAR_PATH" envDefault:"/customer_support/chatbot/clear"`

	// Telegram front end (cmd/bot only)
	BotToken string `env:"BOT_TOKEN"`

	// Terminal front end (cmd/chat only). Empty disables file logging.
	LogFile string `env:"CHAT_LOG_FILE"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Endpoint joins the server URL with a route path.
func (c *Config) Endpoint(path string) string {
	return strings.TrimSuffix(c.ServerURL, "/") + path
}
