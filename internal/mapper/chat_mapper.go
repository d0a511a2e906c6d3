package mapper

import (
	"encoding/json"

	"quickchat-be/internal/entity"
	"quickchat-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	// A malformed messages column degrades to an empty history rather than
	// failing the whole read.
	messages := []entity.ChatMessage{}
	if len(s.Messages) > 0 {
		_ = json.Unmarshal([]byte(s.Messages), &messages)
	}

	return &entity.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		UserName:  s.UserName,
		Title:     s.Title,
		Messages:  messages,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	messages := s.Messages
	if messages == nil {
		messages = []entity.ChatMessage{}
	}
	raw, _ := json.Marshal(messages)

	return &model.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		UserName:  s.UserName,
		Title:     s.Title,
		Messages:  datatypes.JSON(raw),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *ChatMapper) ChatSessionsToEntities(models []*model.ChatSession) []*entity.ChatSession {
	entities := make([]*entity.ChatSession, len(models))
	for i, s := range models {
		entities[i] = m.ChatSessionToEntity(s)
	}
	return entities
}
