package memory

import (
	"context"
	"time"

	"quickchat-be/internal/entity"
	"quickchat-be/internal/repository/contract"
	"quickchat-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// UserRepository is a cache-backed implementation of the user contract,
// used by the test suites and for running the API without Postgres.
type UserRepository struct {
	cache *cache.Cache
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		cache: cache.New(cache.NoExpiration, 10*time.Minute),
	}
}

var _ contract.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(_ context.Context, user *entity.User) error {
	u := *user
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.UpdatedAt = time.Now()
	r.cache.Set(u.Id.String(), &u, cache.NoExpiration)
	*user = u
	return nil
}

func (r *UserRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if x, found := r.cache.Get(id.String()); found {
		u := *(x.(*entity.User))
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepository) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, item := range r.cache.Items() {
		u := item.Object.(*entity.User)
		if matchUser(u, specs) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func matchUser(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email != s.Email {
				return false
			}
		}
	}
	return true
}
