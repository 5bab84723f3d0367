package handler

import (
	"github.com/go-telegram/bot"
)

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/clear", bot.MatchTypePrefix, h.handleClear)

	// Clear confirmation callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "clear_confirm", bot.MatchTypeExact, h.handleClearConfirm)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "clear_cancel", bot.MatchTypeExact, h.handleClearCancel)

	// Quick reply callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "qr_", bot.MatchTypePrefix, h.handleQuickReply)
}
