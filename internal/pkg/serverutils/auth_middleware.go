package serverutils

import (
	"context"
	"errors"

	"quickchat-be/internal/entity"
	"quickchat-be/internal/pkg/logger"
	"quickchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// userLocalsKey is where the gate stores the resolved user for the request.
const userLocalsKey = "auth_user"

// TokenVerifier is the slice of the auth service the gate needs.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, tokenStr string) (*entity.User, error)
}

// NewAuthMiddleware builds the request gate for every protected route. The
// token travels in a cookie; any verification failure short-circuits with a
// kind-specific 401 message, and anything unexpected (storage down, etc.)
// becomes a 500 instead of being folded into unauthorized.
func NewAuthMiddleware(verifier TokenVerifier, cookieName string, log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := ctx.Cookies(cookieName)

		user, err := verifier.VerifyToken(ctx.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNoToken):
				return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized - No token provided"})
			case errors.Is(err, service.ErrInvalidToken):
				return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized - Invalid token"})
			case errors.Is(err, service.ErrUserNotFound):
				return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized - User not found"})
			default:
				log.Error("auth", "error verifying credentials", map[string]interface{}{"error": err.Error()})
				return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal Server Error"})
			}
		}

		ctx.Locals(userLocalsKey, user)
		return ctx.Next()
	}
}

// CurrentUser returns the user attached by the auth middleware. Nil means the
// route was reached without passing the gate.
func CurrentUser(ctx *fiber.Ctx) *entity.User {
	user, _ := ctx.Locals(userLocalsKey).(*entity.User)
	return user
}
