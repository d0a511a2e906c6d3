package bootstrap

import (
	"log"

	"quickchat-be/internal/config"
	"quickchat-be/internal/controller"
	"quickchat-be/internal/pkg/logger"
	"quickchat-be/internal/pkg/serverutils"
	"quickchat-be/internal/repository/implementation"
	"quickchat-be/internal/service"
	pktNats "quickchat-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController controller.IAuthController
	ChatController controller.IChatController

	// Middleware guarding every chat route
	AuthMiddleware fiber.Handler

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// NATS is best-effort: a missing broker downgrades to no event publishing.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Repositories
	userRepo := implementation.NewUserRepository(db)
	sessionRepo := implementation.NewChatSessionRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg, natsPub)
	chatService := service.NewChatService(sessionRepo, natsPub)

	// Middleware
	authMiddleware := serverutils.NewAuthMiddleware(authService, cfg.Auth.CookieName, sysLogger)

	return &Container{
		AuthController: controller.NewAuthController(authService, cfg.Auth.CookieName),
		ChatController: controller.NewChatController(chatService),
		AuthMiddleware: authMiddleware,
		Logger:         sysLogger,
	}
}
