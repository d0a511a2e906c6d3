package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quickchat-be/internal/config"
	"quickchat-be/internal/dto"
	"quickchat-be/internal/entity"
	"quickchat-be/internal/repository/contract"
	"quickchat-be/internal/repository/specification"
	"quickchat-be/pkg/events"
	pktNats "quickchat-be/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Verification failures the middleware needs to tell apart. They all end up
// as 401, but each carries its own client-facing message.
var (
	ErrNoToken      = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid token")
	ErrUserNotFound = errors.New("user not found")

	ErrBadCredentials  = errors.New("invalid credentials")
	ErrEmailRegistered = errors.New("email already registered")
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*entity.User, string, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*entity.User, string, error)
	// VerifyToken validates a signed token and resolves it to the referenced
	// user, with the password hash stripped from the projection.
	VerifyToken(ctx context.Context, tokenStr string) (*entity.User, error)
	TokenTTL() time.Duration
}

type authService struct {
	userRepo       contract.UserRepository
	jwtSecret      []byte
	tokenTTL       time.Duration
	eventPublisher *pktNats.Publisher
}

func NewAuthService(userRepo contract.UserRepository, cfg *config.Config, eventPublisher *pktNats.Publisher) IAuthService {
	return &authService{
		userRepo:       userRepo,
		jwtSecret:      []byte(cfg.Auth.JWTSecret),
		tokenTTL:       time.Duration(cfg.Auth.ExpiryHours) * time.Hour,
		eventPublisher: eventPublisher,
	}
}

func (s *authService) TokenTTL() time.Duration {
	return s.tokenTTL
}

func (s *authService) signToken(userId uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*entity.User, string, error) {
	existing, err := s.userRepo.FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: &hashStr,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	signedToken, err := s.signToken(user.Id)
	if err != nil {
		return nil, "", err
	}

	s.publish(ctx, events.TypeUserRegistered, user.Id)

	return user, signedToken, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*entity.User, string, error) {
	user, err := s.userRepo.FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, "", err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, "", ErrBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrBadCredentials
	}

	signedToken, err := s.signToken(user.Id)
	if err != nil {
		return nil, "", err
	}

	s.publish(ctx, events.TypeUserLogin, user.Id)

	return user, signedToken, nil
}

func (s *authService) VerifyToken(ctx context.Context, tokenStr string) (*entity.User, error) {
	if tokenStr == "" {
		return nil, ErrNoToken
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userIdStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindById(ctx, userId)
	if err != nil {
		// Storage faults stay distinct from the unauthorized kinds; the
		// middleware turns them into a 500.
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	user.PasswordHash = nil
	return user, nil
}

func (s *authService) publish(ctx context.Context, eventType string, userId uuid.UUID) {
	if s.eventPublisher == nil {
		return
	}
	event := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"user_id": userId,
			"time":    time.Now().Format(time.RFC822),
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}
