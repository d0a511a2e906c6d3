package entity

import (
	"time"

	"github.com/google/uuid"
)

const DefaultChatTitle = "New Chat"

// ChatMessage is one turn inside a session. Sessions are created with an
// empty message list; this API never appends to it.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	UserName  string
	Title     string
	Messages  []ChatMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}
