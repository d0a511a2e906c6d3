package dto

import (
	"time"

	"quickchat-be/internal/entity"

	"github.com/google/uuid"
)

type DeleteChatRequest struct {
	ChatId uuid.UUID `json:"chatId" validate:"required"`
}

type ChatSessionResponse struct {
	Id        uuid.UUID            `json:"id"`
	UserId    uuid.UUID            `json:"user_id"`
	UserName  string               `json:"user_name"`
	Title     string               `json:"title"`
	Messages  []entity.ChatMessage `json:"messages"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}
