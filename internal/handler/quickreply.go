package handler

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/dorjigee198/support-chat/internal/config"
)

// handleQuickReply submits the fixed payload a quick-reply button carries,
// bypassing the input field entirely.
func (h *Handler) handleQuickReply(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, _, ok := callbackOrigin(update)
	if !ok {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
	})

	idx, err := strconv.Atoi(strings.TrimPrefix(update.CallbackQuery.Data, "qr_"))
	if err != nil || idx < 0 || idx >= len(config.QuickReplies) {
		return
	}

	session, existed := h.session(ctx, b, chatID)
	if !existed {
		session.Initialize()
	}
	session.Submit(ctx, config.QuickReplies[idx])
}
