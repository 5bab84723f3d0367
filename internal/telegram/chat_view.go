package telegram

import (
	"context"
	"log/slog"
	"sync"

	"github.com/go-telegram/bot"

	"github.com/dorjigee198/support-chat/internal/config"
	"github.com/dorjigee198/support-chat/internal/domain"
)

// ChatView renders a session into a single Telegram chat. The chat itself
// is the conversation log and the compose box is the input field, so user
// messages are never re-sent; only bot and error messages go out.
type ChatView struct {
	ctx    context.Context
	bot    *bot.Bot
	chatID int64

	mu         sync.Mutex
	stopTyping context.CancelFunc
	statusID   int
}

func NewChatView(ctx context.Context, b *bot.Bot, chatID int64) *ChatView {
	return &ChatView{ctx: ctx, bot: b, chatID: chatID}
}

// A Telegram chat always carries both surfaces.
func (v *ChatView) HasLog() bool   { return true }
func (v *ChatView) HasInput() bool { return true }

func (v *ChatView) AppendMessage(msg domain.Message) {
	switch msg.Role {
	case domain.RoleUser:
		// Already visible in the chat; nothing to render.
	case domain.RoleBot:
		markup := QuickReplyKeyboard(config.QuickReplies)
		if err := SendLongMessage(v.ctx, v.bot, v.chatID, msg.Text, markup); err != nil {
			slog.Error("send bot message", "error", err, "chat_id", v.chatID, "message_id", msg.ID)
		}
	case domain.RoleError:
		if _, err := v.bot.SendMessage(v.ctx, &bot.SendMessageParams{
			ChatID: v.chatID,
			Text:   "❌ " + msg.Text,
		}); err != nil {
			slog.Error("send error message", "error", err, "chat_id", v.chatID, "message_id", msg.ID)
		}
	}
}

func (v *ChatView) ResetLog(msgs []domain.Message) {
	for _, msg := range msgs {
		v.AppendMessage(msg)
	}
}

// ShowPending starts the typing indicator and a status message. The
// session guarantees at most one pending marker, so no guard is needed
// beyond remembering the cancel function.
func (v *ChatView) ShowPending() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.stopTyping = StartTyping(v.ctx, v.bot, v.chatID)
	statusMsg, err := v.bot.SendMessage(v.ctx, &bot.SendMessageParams{
		ChatID: v.chatID,
		Text:   "⏳ Thinking...",
	})
	if err != nil {
		slog.Warn("send status message", "error", err, "chat_id", v.chatID)
		return
	}
	v.statusID = statusMsg.ID
}

func (v *ChatView) HidePending() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.stopTyping != nil {
		v.stopTyping()
		v.stopTyping = nil
	}
	if v.statusID != 0 {
		v.bot.DeleteMessage(v.ctx, &bot.DeleteMessageParams{
			ChatID:    v.chatID,
			MessageID: v.statusID,
		})
		v.statusID = 0
	}
}

// Message text always arrives with the update, so there is never anything
// to read back or clear.
func (v *ChatView) ReadInput() string { return "" }
func (v *ChatView) ClearInput()       {}

// ConfirmClear sends the yes/no keyboard and reports "not confirmed"; the
// callback handler calls Reset once the user taps confirm.
func (v *ChatView) ConfirmClear() bool {
	if _, err := v.bot.SendMessage(v.ctx, &bot.SendMessageParams{
		ChatID:      v.chatID,
		Text:        "Clear this conversation?",
		ReplyMarkup: ConfirmClearKeyboard(),
	}); err != nil {
		slog.Error("send clear confirmation", "error", err, "chat_id", v.chatID)
	}
	return false
}
