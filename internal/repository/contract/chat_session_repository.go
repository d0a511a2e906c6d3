package contract

import (
	"context"

	"quickchat-be/internal/entity"
	"quickchat-be/internal/repository/specification"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	// DeleteMatching removes every session matching the given specifications.
	// Matching nothing is not an error.
	DeleteMatching(ctx context.Context, specs ...specification.Specification) error
}
