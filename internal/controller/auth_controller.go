package controller

import (
	"errors"
	"time"

	"quickchat-be/internal/dto"
	"quickchat-be/internal/entity"
	"quickchat-be/internal/pkg/serverutils"
	"quickchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	authService service.IAuthService
	cookieName  string
}

func NewAuthController(authService service.IAuthService, cookieName string) IAuthController {
	return &authController{
		authService: authService,
		cookieName:  cookieName,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)
	h.Post("/logout", c.Logout)
	h.Get("/me", authMiddleware, c.Me)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	user, token, err := c.authService.Register(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailRegistered) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return err
	}

	c.setAuthCookie(ctx, token)
	return ctx.Status(fiber.StatusCreated).JSON(dto.AuthResponse{
		Message: "User registered successfully",
		User:    toUserDTO(user),
	})
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	user, token, err := c.authService.Login(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
		}
		return err
	}

	c.setAuthCookie(ctx, token)
	return ctx.Status(fiber.StatusOK).JSON(dto.AuthResponse{
		Message: "Login successful",
		User:    toUserDTO(user),
	})
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	ctx.Cookie(&fiber.Cookie{
		Name:     c.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Logged out successfully"})
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	user := serverutils.CurrentUser(ctx)
	return ctx.Status(fiber.StatusOK).JSON(toUserDTO(user))
}

func (c *authController) setAuthCookie(ctx *fiber.Ctx, token string) {
	ctx.Cookie(&fiber.Cookie{
		Name:     c.cookieName,
		Value:    token,
		Expires:  time.Now().Add(c.authService.TokenTTL()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

func toUserDTO(user *entity.User) dto.UserDTO {
	return dto.UserDTO{
		Id:       user.Id,
		Email:    user.Email,
		FullName: user.FullName,
	}
}
