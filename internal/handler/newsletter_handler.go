package handler

import (
	"log"
	"strings"

	"github.com/Pranavipulluri/break-even/internal/domain"
	"github.com/Pranavipulluri/break-even/internal/dto"
	"github.com/Pranavipulluri/break-even/internal/metrics"
	"github.com/Pranavipulluri/break-even/internal/repository"
	"github.com/Pranavipulluri/break-even/internal/service"
	"github.com/gofiber/fiber/v2"
)

type NewsletterHandler struct {
	subscriberRepo *repository.SubscriberRepository
	enricher       *service.EnrichmentService
}

func NewNewsletterHandler(subscriberRepo *repository.SubscriberRepository, enricher *service.EnrichmentService) *NewsletterHandler {
	return &NewsletterHandler{
		subscriberRepo: subscriberRepo,
		enricher:       enricher,
	}
}

// Subscribe - POST /public/newsletter (mini-website newsletter form)
func (h *NewsletterHandler) Subscribe(c *fiber.Ctx) error {
	var req dto.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_REQUEST", "Invalid request body",
		))
	}

	if strings.TrimSpace(req.NewsletterName) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "name is required",
		))
	}
	if strings.TrimSpace(req.NewsletterEmail) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "email is required",
		))
	}
	if !isValidEmail(req.NewsletterEmail) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Please enter a valid email address",
		))
	}

	businessID, ok := parseBusinessID(req.BusinessID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "business_id is not valid",
		))
	}

	interests := splitInterests(req.NewsletterInterests)

	subscriber, isNew, err := h.subscriberRepo.Upsert(repository.SubscriberUpsert{
		Email:         req.NewsletterEmail,
		BusinessID:    businessID,
		Name:          req.NewsletterName,
		Phone:         req.NewsletterPhone,
		Source:        "newsletter_signup",
		Interests:     interests,
		WebsiteSource: defaultWebsiteSource(req.WebsiteSource),
		Metadata: domain.JSONB{
			"signup_method":      "mini_website",
			"interests_selected": len(interests),
		},
	})
	if err != nil {
		log.Printf("failed to upsert subscriber: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Internal server error. Please try again later.",
		))
	}

	metrics.RecordSubmission("newsletter")
	h.enricher.NewsletterSubscribed(subscriber, isNew)

	message := "Thank you! Your newsletter preferences have been updated."
	if isNew {
		message = "Welcome! You've successfully subscribed to our newsletter."
	}

	return c.JSON(dto.SuccessResponse(dto.SubscribeResponse{
		SubscriberID: subscriber.ID.String(),
		IsNew:        isNew,
	}, message))
}

func splitInterests(raw string) []string {
	var interests []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			interests = append(interests, part)
		}
	}
	if len(interests) == 0 {
		interests = []string{"general"}
	}
	return interests
}
