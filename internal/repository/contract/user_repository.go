package contract

import (
	"context"

	"quickchat-be/internal/entity"
	"quickchat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
}
