package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"quickchat-be/internal/config"
	"quickchat-be/internal/dto"
	"quickchat-be/internal/entity"
	"quickchat-be/internal/repository/memory"
	"quickchat-be/internal/repository/specification"
	"quickchat-be/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:   testSecret,
			ExpiryHours: 1,
			CookieName:  "jwt",
		},
	}
}

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// failingUserRepo simulates the storage layer being unavailable.
type failingUserRepo struct{}

var errStorageDown = errors.New("storage unavailable")

func (f failingUserRepo) Create(context.Context, *entity.User) error { return errStorageDown }
func (f failingUserRepo) FindById(context.Context, uuid.UUID) (*entity.User, error) {
	return nil, errStorageDown
}
func (f failingUserRepo) FindOne(context.Context, ...specification.Specification) (*entity.User, error) {
	return nil, errStorageDown
}

func TestRegisterAndLogin(t *testing.T) {
	svc := service.NewAuthService(memory.NewUserRepository(), testConfig(), nil)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, &dto.RegisterRequest{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Ada Lovelace", user.FullName)
	require.NotNil(t, user.PasswordHash)
	assert.NotEqual(t, "password123", *user.PasswordHash)

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, _, err := svc.Register(ctx, &dto.RegisterRequest{
			FullName: "Ada Again",
			Email:    "ada@example.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, service.ErrEmailRegistered)
	})

	t.Run("login with correct password", func(t *testing.T) {
		got, token, err := svc.Login(ctx, &dto.LoginRequest{
			Email:    "ada@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, user.Id, got.Id)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, &dto.LoginRequest{
			Email:    "ada@example.com",
			Password: "not-the-password",
		})
		assert.ErrorIs(t, err, service.ErrBadCredentials)
	})

	t.Run("login with unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, &dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, service.ErrBadCredentials)
	})
}

func TestVerifyToken(t *testing.T) {
	repo := memory.NewUserRepository()
	svc := service.NewAuthService(repo, testConfig(), nil)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, &dto.RegisterRequest{
		FullName: "Grace Hopper",
		Email:    "grace@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	t.Run("valid token resolves user without password", func(t *testing.T) {
		got, err := svc.VerifyToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, user.Id, got.Id)
		assert.Equal(t, "Grace Hopper", got.FullName)
		assert.Nil(t, got.PasswordHash)
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := svc.VerifyToken(ctx, "")
		assert.ErrorIs(t, err, service.ErrNoToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := svc.VerifyToken(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := signTestToken(t, testSecret, jwt.MapClaims{
			"user_id": user.Id.String(),
			"exp":     time.Now().Add(-time.Minute).Unix(),
		})
		_, err := svc.VerifyToken(ctx, expired)
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("token signed with wrong secret", func(t *testing.T) {
		forged := signTestToken(t, "other-secret", jwt.MapClaims{
			"user_id": user.Id.String(),
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		_, err := svc.VerifyToken(ctx, forged)
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("token without user id claim", func(t *testing.T) {
		anonymous := signTestToken(t, testSecret, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		_, err := svc.VerifyToken(ctx, anonymous)
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("valid token for deleted user", func(t *testing.T) {
		orphaned := signTestToken(t, testSecret, jwt.MapClaims{
			"user_id": uuid.NewString(),
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		_, err := svc.VerifyToken(ctx, orphaned)
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})

	t.Run("storage fault is not folded into unauthorized", func(t *testing.T) {
		broken := service.NewAuthService(failingUserRepo{}, testConfig(), nil)
		_, err := broken.VerifyToken(ctx, token)
		require.Error(t, err)
		assert.NotErrorIs(t, err, service.ErrNoToken)
		assert.NotErrorIs(t, err, service.ErrInvalidToken)
		assert.NotErrorIs(t, err, service.ErrUserNotFound)
	})
}
