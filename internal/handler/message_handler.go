package handler

import (
	"strings"

	"github.com/Pranavipulluri/break-even/internal/domain"
	"github.com/Pranavipulluri/break-even/internal/dto"
	"github.com/Pranavipulluri/break-even/internal/middleware"
	"github.com/Pranavipulluri/break-even/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MessageHandler struct {
	messageRepo *repository.MessageRepository
}

func NewMessageHandler(messageRepo *repository.MessageRepository) *MessageHandler {
	return &MessageHandler{messageRepo: messageRepo}
}

// Submit - POST /public/messages (mini-website contact form)
func (h *MessageHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_REQUEST", "Invalid request body",
		))
	}

	required := []struct{ name, value string }{
		{"sender_name", req.SenderName},
		{"sender_email", req.SenderEmail},
		{"message", req.Body},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
				"VALIDATION_ERROR", field.name+" is required",
			))
		}
	}

	businessID, ok := parseBusinessID(req.BusinessID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "business_id is not valid",
		))
	}

	message := &domain.Message{
		BusinessID:  businessID,
		SenderName:  req.SenderName,
		SenderEmail: strings.ToLower(strings.TrimSpace(req.SenderEmail)),
		Subject:     req.Subject,
		Body:        req.Body,
	}

	if err := h.messageRepo.Create(message); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Internal server error. Please try again later.",
		))
	}

	return c.JSON(dto.SuccessResponse(fiber.Map{"message_id": message.ID.String()}, "Message sent"))
}

// List - GET /messages (dashboard)
func (h *MessageHandler) List(c *fiber.Ctx) error {
	unreadOnly := c.QueryBool("unread", false)
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	messages, total, err := h.messageRepo.List(middleware.GetBusinessID(c), unreadOnly, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Failed to fetch messages",
		))
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	return c.JSON(dto.SuccessWithMeta(messages, &dto.Meta{
		CurrentPage: page,
		PerPage:     limit,
		TotalPages:  int(totalPages),
		TotalCount:  total,
	}))
}

// Reply - POST /messages/:id/reply (dashboard)
func (h *MessageHandler) Reply(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("INVALID_ID", "ID is not valid"))
	}

	var req dto.ReplyMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}
	if strings.TrimSpace(req.Reply) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "reply is required",
		))
	}

	if _, err := h.messageRepo.FindByID(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse("NOT_FOUND", "Message not found"))
	}

	if err := h.messageRepo.Reply(id, req.Reply); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Failed to save reply",
		))
	}

	return c.JSON(dto.SuccessResponse(nil, "Reply sent"))
}

// MarkRead - PATCH /messages/:id/read (dashboard)
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("INVALID_ID", "ID is not valid"))
	}

	if _, err := h.messageRepo.FindByID(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse("NOT_FOUND", "Message not found"))
	}

	if err := h.messageRepo.MarkRead(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Failed to mark message as read",
		))
	}

	return c.JSON(dto.SuccessResponse(nil, "Message marked as read"))
}
