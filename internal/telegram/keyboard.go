package telegram

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// InlineButton creates a single inline keyboard button.
func InlineButton(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

// InlineKeyboard creates an inline keyboard from rows of buttons.
func InlineKeyboard(rows ...[]models.InlineKeyboardButton) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: rows,
	}
}

// ButtonRow creates a row of inline buttons.
func ButtonRow(buttons ...models.InlineKeyboardButton) []models.InlineKeyboardButton {
	return buttons
}

// QuickReplyKeyboard builds one button per quick-reply payload. Callback
// data carries the payload index, not the text, to stay inside Telegram's
// 64-byte callback data limit.
func QuickReplyKeyboard(payloads []string) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(payloads))
	for i, p := range payloads {
		rows = append(rows, ButtonRow(InlineButton(p, fmt.Sprintf("qr_%d", i))))
	}
	return InlineKeyboard(rows...)
}

// ConfirmClearKeyboard is the yes/no prompt shown before clearing a
// conversation.
func ConfirmClearKeyboard() *models.InlineKeyboardMarkup {
	return InlineKeyboard(ButtonRow(
		InlineButton("✅ Clear", "clear_confirm"),
		InlineButton("✖️ Cancel", "clear_cancel"),
	))
}
