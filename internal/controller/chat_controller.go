package controller

import (
	"quickchat-be/internal/dto"
	"quickchat-be/internal/entity"
	"quickchat-be/internal/pkg/serverutils"
	"quickchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	Create(ctx *fiber.Ctx) error
	GetChats(ctx *fiber.Ctx) error
	DeleteChat(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{chatService: chatService}
}

func (c *chatController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/chat")
	h.Use(authMiddleware)
	h.Post("/create", c.Create)
	h.Get("/getchats", c.GetChats)
	h.Delete("/deletechat", c.DeleteChat)
}

func (c *chatController) Create(ctx *fiber.Ctx) error {
	user := serverutils.CurrentUser(ctx)

	if _, err := c.chatService.Create(ctx.Context(), user); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Chat created successfully"})
}

func (c *chatController) GetChats(ctx *fiber.Ctx) error {
	user := serverutils.CurrentUser(ctx)

	sessions, err := c.chatService.List(ctx.Context(), user.Id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(toChatSessionResponses(sessions))
}

func (c *chatController) DeleteChat(ctx *fiber.Ctx) error {
	user := serverutils.CurrentUser(ctx)

	var req dto.DeleteChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.chatService.Delete(ctx.Context(), user.Id, req.ChatId); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Chat deleted successfully"})
}

func toChatSessionResponses(sessions []*entity.ChatSession) []dto.ChatSessionResponse {
	// Always a JSON array, never null.
	out := make([]dto.ChatSessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, dto.ChatSessionResponse{
			Id:        s.Id,
			UserId:    s.UserId,
			UserName:  s.UserName,
			Title:     s.Title,
			Messages:  s.Messages,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return out
}
