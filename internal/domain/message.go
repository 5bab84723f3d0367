package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who a conversation message is attributed to.
type Role string

const (
	RoleUser  Role = "user"
	RoleBot   Role = "bot"
	RoleError Role = "error"
)

// Message is a single entry in the conversation log. Messages are
// immutable once appended; only the whole log may be cleared.
type Message struct {
	ID        uuid.UUID
	Role      Role
	Text      string
	CreatedAt time.Time
}

// NewMessage creates a message with a fresh ID and timestamp.
func NewMessage(role Role, text string) Message {
	return Message{
		ID:        uuid.New(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now(),
	}
}
