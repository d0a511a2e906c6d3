package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"quickchat-be/internal/entity"
	"quickchat-be/internal/repository/contract"
	"quickchat-be/internal/repository/specification"

	"github.com/patrickmn/go-cache"
)

// ChatSessionRepository mirrors the Postgres implementation against an
// in-process cache, interpreting the same query specifications.
type ChatSessionRepository struct {
	cache *cache.Cache
}

func NewChatSessionRepository() *ChatSessionRepository {
	return &ChatSessionRepository{
		cache: cache.New(cache.NoExpiration, 10*time.Minute),
	}
}

var _ contract.ChatSessionRepository = (*ChatSessionRepository)(nil)

func (r *ChatSessionRepository) Create(_ context.Context, session *entity.ChatSession) error {
	s := *session
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = now
	}
	if s.Messages == nil {
		s.Messages = []entity.ChatMessage{}
	}
	r.cache.Set(s.Id.String(), &s, cache.NoExpiration)
	*session = s
	return nil
}

func (r *ChatSessionRepository) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	var result []*entity.ChatSession
	for _, item := range r.cache.Items() {
		s := item.Object.(*entity.ChatSession)
		if matchSession(s, specs) {
			copied := *s
			result = append(result, &copied)
		}
	}
	applyOrder(result, specs)
	return result, nil
}

func (r *ChatSessionRepository) DeleteMatching(_ context.Context, specs ...specification.Specification) error {
	for key, item := range r.cache.Items() {
		if matchSession(item.Object.(*entity.ChatSession), specs) {
			r.cache.Delete(key)
		}
	}
	return nil
}

func matchSession(s *entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if s.Id != sp.ID {
				return false
			}
		case specification.OwnedBy:
			if s.UserId != sp.UserID {
				return false
			}
		}
	}
	return true
}

func applyOrder(sessions []*entity.ChatSession, specs []specification.Specification) {
	for _, spec := range specs {
		order, ok := spec.(specification.OrderBy)
		if !ok || !strings.EqualFold(order.Field, "updated_at") {
			continue
		}
		sort.SliceStable(sessions, func(i, j int) bool {
			if order.Desc {
				return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
			}
			return sessions[i].UpdatedAt.Before(sessions[j].UpdatedAt)
		})
	}
}
