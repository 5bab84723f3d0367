package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/dorjigee198/support-chat/internal/config"
	"github.com/dorjigee198/support-chat/internal/domain"
)

// Generic error texts rendered when the server response matches no known
// shape. The two cases are deliberately kept distinct: "result present but
// unrecognizable" reads differently from "no result at all".
const (
	TextUnexpectedFormat = "Unexpected response format from server."
	TextNoReply          = "Sorry, I could not get a response. Please try again."
)

// ReplySender abstracts the reply endpoint for the session controller.
type ReplySender interface {
	Send(ctx context.Context, text string) (string, error)
	ClearHistory(ctx context.Context) error
}

// View is the display surface a session renders into. Implementations must
// tolerate being called from the goroutine that runs Submit; the session
// never calls two view methods concurrently.
type View interface {
	// HasLog and HasInput report whether the surface provides a
	// conversation log and an input field. Both are required for the
	// session to activate.
	HasLog() bool
	HasInput() bool

	AppendMessage(msg domain.Message)
	ResetLog(msgs []domain.Message)

	ShowPending()
	HidePending()

	ReadInput() string
	ClearInput()

	// ConfirmClear asks the user whether the conversation should be
	// cleared. Surfaces whose confirmation is asynchronous may always
	// return false and call Reset themselves once the user confirms.
	ConfirmClear() bool
}

// ChatSession mediates between user input, the reply endpoint and the
// displayed conversation log. One session per view activation; the log
// lives exactly as long as the session.
type ChatSession struct {
	view    View
	replies ReplySender

	mu      sync.Mutex
	log     []domain.Message
	pending bool
	active  bool
}

func NewChatSession(view View, replies ReplySender) *ChatSession {
	return &ChatSession{view: view, replies: replies}
}

// Initialize seeds the greeting message. It silently does nothing when the
// view lacks a log surface or an input field; the session detects its own
// inapplicability instead of failing.
func (s *ChatSession) Initialize() {
	if s.view == nil || !s.view.HasLog() || !s.view.HasInput() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	s.active = true
	s.append(domain.NewMessage(domain.RoleBot, config.Greeting))
}

// Submit sends one message to the reply endpoint. An empty text means
// "read and trim the input field, then clear it"; non-empty text is a
// quick-reply payload that bypasses the field entirely. A blank result is
// a complete no-op: nothing appended, nothing sent.
//
// The user message is appended strictly before the request is issued and
// the resulting message strictly after the outcome is known. Overlapping
// calls are not serialized, but the pending marker is never duplicated.
func (s *ChatSession) Submit(ctx context.Context, text string) {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}

	fromInput := text == ""
	if fromInput {
		text = s.view.ReadInput()
	}
	text = strings.TrimSpace(text)
	if text == "" {
		s.mu.Unlock()
		return
	}

	userMsg := domain.NewMessage(domain.RoleUser, text)
	s.append(userMsg)
	if fromInput {
		s.view.ClearInput()
	}
	if !s.pending {
		s.pending = true
		s.view.ShowPending()
	}
	s.mu.Unlock()

	reply, err := s.replies.Send(ctx, text)
	if err != nil {
		slog.Error("reply exchange failed", "error", err, "message_id", userMsg.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending {
		s.pending = false
		s.view.HidePending()
	}
	s.append(resultMessage(reply, err))
}

// Clear empties the log and re-seeds the greeting, but only after the view
// confirms the action with the user. A declined confirmation has no effect.
func (s *ChatSession) Clear(ctx context.Context) {
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()

	if !active || !s.view.ConfirmClear() {
		return
	}
	s.Reset(ctx)
}

// Reset unconditionally clears the log. Front ends whose confirmation
// happens out of band (inline keyboards) call this once the user has
// confirmed. The server-side history is cleared best effort; a failure is
// logged but never surfaced into the conversation.
func (s *ChatSession) Reset(ctx context.Context) {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	greeting := domain.NewMessage(domain.RoleBot, config.Greeting)
	s.log = []domain.Message{greeting}
	s.view.ResetLog([]domain.Message{greeting})
	s.mu.Unlock()

	if err := s.replies.ClearHistory(ctx); err != nil {
		slog.Warn("clear remote history", "error", err)
	}
}

// Messages returns a copy of the conversation log.
func (s *ChatSession) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.log))
	copy(out, s.log)
	return out
}

// Pending reports whether a reply is currently outstanding.
func (s *ChatSession) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// append must be called with s.mu held.
func (s *ChatSession) append(msg domain.Message) {
	s.log = append(s.log, msg)
	s.view.AppendMessage(msg)
}

func resultMessage(reply string, err error) domain.Message {
	switch {
	case err == nil:
		return domain.NewMessage(domain.RoleBot, reply)
	case errors.Is(err, domain.ErrUnexpectedFormat):
		return domain.NewMessage(domain.RoleError, TextUnexpectedFormat)
	case errors.Is(err, domain.ErrNoReply):
		return domain.NewMessage(domain.RoleError, TextNoReply)
	default:
		return domain.NewMessage(domain.RoleError, "Error: "+err.Error())
	}
}
