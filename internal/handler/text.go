package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleText processes plain text messages as chat submissions. It is wired
// as the default text handler in main; commands never reach it.
func (h *Handler) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	msg := update.Message

	if strings.HasPrefix(msg.Text, "/") {
		return
	}

	session, existed := h.session(ctx, b, msg.Chat.ID)
	if !existed {
		session.Initialize()
	}
	session.Submit(ctx, msg.Text)
}
