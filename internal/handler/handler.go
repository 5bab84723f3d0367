package handler

import (
	"context"
	"sync"

	"github.com/go-telegram/bot"

	"github.com/dorjigee198/support-chat/internal/service"
	tg "github.com/dorjigee198/support-chat/internal/telegram"
)

// Handler routes Telegram updates into per-chat chat sessions.
type Handler struct {
	bot     *bot.Bot
	replies service.ReplySender

	mu       sync.Mutex
	sessions map[int64]*service.ChatSession
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot     *bot.Bot
	Replies service.ReplySender
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:      deps.Bot,
		replies:  deps.Replies,
		sessions: make(map[int64]*service.ChatSession),
	}
}

// session returns the chat's session, activating a fresh one on first use.
// The bool reports whether the session already existed.
func (h *Handler) session(ctx context.Context, b *bot.Bot, chatID int64) (*service.ChatSession, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s, ok := h.sessions[chatID]; ok {
		return s, true
	}
	view := tg.NewChatView(ctx, b, chatID)
	s := service.NewChatSession(view, h.replies)
	h.sessions[chatID] = s
	return s, false
}
