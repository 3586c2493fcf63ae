package handler

import (
	"strings"

	"github.com/Pranavipulluri/break-even/internal/dto"
	"github.com/Pranavipulluri/break-even/internal/service"
	"github.com/gofiber/fiber/v2"
)

type QRHandler struct {
	qrService *service.QRService
}

func NewQRHandler(qrService *service.QRService) *QRHandler {
	return &QRHandler{qrService: qrService}
}

// Generate - POST /qrcode
//
// With object storage configured the image is uploaded and its URL
// returned; without it the PNG bytes are sent inline.
func (h *QRHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateQRRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_REQUEST", "Invalid request body",
		))
	}

	url := strings.TrimSpace(req.URL)
	if url == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "url is required",
		))
	}

	if h.qrService.HasStorage() {
		imageURL, err := h.qrService.GenerateAndStore(c.Context(), url, req.Size)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
				"INTERNAL_ERROR", "Failed to generate QR code",
			))
		}
		return c.JSON(dto.SuccessResponse(dto.GenerateQRResponse{ImageURL: imageURL}, "QR code generated"))
	}

	png, err := h.qrService.GeneratePNG(url, req.Size)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Failed to generate QR code",
		))
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
