package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	session, existed := h.session(ctx, b, update.Message.Chat.ID)
	if existed {
		// Already greeted; /start on a live conversation changes nothing.
		return
	}
	session.Initialize()
}
