package service

import (
	"context"
	"fmt"
	"time"

	"quickchat-be/internal/entity"
	"quickchat-be/internal/repository/contract"
	"quickchat-be/internal/repository/specification"
	"quickchat-be/pkg/events"
	pktNats "quickchat-be/pkg/nats"

	"github.com/google/uuid"
)

type IChatService interface {
	Create(ctx context.Context, owner *entity.User) (*entity.ChatSession, error)
	List(ctx context.Context, userId uuid.UUID) ([]*entity.ChatSession, error)
	Delete(ctx context.Context, userId, chatId uuid.UUID) error
}

type chatService struct {
	sessionRepo    contract.ChatSessionRepository
	eventPublisher *pktNats.Publisher
}

func NewChatService(sessionRepo contract.ChatSessionRepository, eventPublisher *pktNats.Publisher) IChatService {
	return &chatService{
		sessionRepo:    sessionRepo,
		eventPublisher: eventPublisher,
	}
}

func (s *chatService) Create(ctx context.Context, owner *entity.User) (*entity.ChatSession, error) {
	session := &entity.ChatSession{
		Id:       uuid.New(),
		UserId:   owner.Id,
		UserName: owner.FullName,
		Title:    entity.DefaultChatTitle,
		Messages: []entity.ChatMessage{},
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeChatCreated, owner.Id, session.Id)

	return session, nil
}

func (s *chatService) List(ctx context.Context, userId uuid.UUID) ([]*entity.ChatSession, error) {
	return s.sessionRepo.FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
}

func (s *chatService) Delete(ctx context.Context, userId, chatId uuid.UUID) error {
	// Owner scope plus id; a miss (foreign or unknown id) deletes nothing and
	// still succeeds.
	err := s.sessionRepo.DeleteMatching(ctx,
		specification.ByID{ID: chatId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}

	s.publish(ctx, events.TypeChatDeleted, userId, chatId)

	return nil
}

func (s *chatService) publish(ctx context.Context, eventType string, userId, sessionId uuid.UUID) {
	if s.eventPublisher == nil {
		return
	}
	event := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"user_id":    userId,
			"session_id": sessionId,
			"time":       time.Now().Format(time.RFC822),
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}
