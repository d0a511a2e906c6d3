package mapper_test

import (
	"testing"
	"time"

	"quickchat-be/internal/entity"
	"quickchat-be/internal/mapper"
	"quickchat-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestChatSessionMessagesColumn(t *testing.T) {
	m := mapper.NewChatMapper()

	t.Run("nil messages persist as empty array", func(t *testing.T) {
		session := &entity.ChatSession{
			Id:     uuid.New(),
			UserId: uuid.New(),
			Title:  entity.DefaultChatTitle,
		}
		stored := m.ChatSessionToModel(session)
		assert.JSONEq(t, "[]", string(stored.Messages))

		back := m.ChatSessionToEntity(stored)
		require.NotNil(t, back.Messages)
		assert.Empty(t, back.Messages)
	})

	t.Run("messages survive the round trip", func(t *testing.T) {
		session := &entity.ChatSession{
			Id:     uuid.New(),
			UserId: uuid.New(),
			Title:  entity.DefaultChatTitle,
			Messages: []entity.ChatMessage{
				{Role: "user", Content: "hello", CreatedAt: time.Now().UTC().Truncate(time.Second)},
			},
		}
		back := m.ChatSessionToEntity(m.ChatSessionToModel(session))
		require.Len(t, back.Messages, 1)
		assert.Equal(t, "hello", back.Messages[0].Content)
	})

	t.Run("malformed column degrades to empty history", func(t *testing.T) {
		stored := &model.ChatSession{
			Id:       uuid.New(),
			UserId:   uuid.New(),
			Title:    entity.DefaultChatTitle,
			Messages: datatypes.JSON("{broken"),
		}
		back := m.ChatSessionToEntity(stored)
		assert.Empty(t, back.Messages)
	})
}
