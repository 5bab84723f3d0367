package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func (h *Handler) handleClear(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	session, existed := h.session(ctx, b, update.Message.Chat.ID)
	if !existed {
		session.Initialize()
		return
	}
	// The Telegram view resolves confirmation asynchronously: this sends
	// the yes/no keyboard and the confirm callback below does the reset.
	session.Clear(ctx)
}

func (h *Handler) handleClearConfirm(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, ok := callbackOrigin(update)
	if !ok {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
	})

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      "🔄 Conversation cleared.",
	})

	session, existed := h.session(ctx, b, chatID)
	if !existed {
		// A fresh session already equals the cleared state.
		session.Initialize()
		return
	}
	session.Reset(ctx)
}

func (h *Handler) handleClearCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, ok := callbackOrigin(update)
	if !ok {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
	})

	// Declined: the conversation stays untouched, only the prompt goes away.
	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
}

// callbackOrigin extracts the chat and message a callback query came from.
func callbackOrigin(update *models.Update) (chatID int64, messageID int, ok bool) {
	if update.CallbackQuery == nil {
		return 0, 0, false
	}
	msg := update.CallbackQuery.Message.Message
	if msg == nil {
		return 0, 0, false
	}
	return msg.Chat.ID, msg.ID, true
}
