package handler

import (
	"log"
	"strings"

	"github.com/Pranavipulluri/break-even/internal/domain"
	"github.com/Pranavipulluri/break-even/internal/dto"
	"github.com/Pranavipulluri/break-even/internal/metrics"
	"github.com/Pranavipulluri/break-even/internal/middleware"
	"github.com/Pranavipulluri/break-even/internal/repository"
	"github.com/Pranavipulluri/break-even/internal/scoring"
	"github.com/Pranavipulluri/break-even/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InterestHandler struct {
	interestRepo *repository.InterestRepository
	enricher     *service.EnrichmentService
}

func NewInterestHandler(interestRepo *repository.InterestRepository, enricher *service.EnrichmentService) *InterestHandler {
	return &InterestHandler{
		interestRepo: interestRepo,
		enricher:     enricher,
	}
}

// Submit - POST /public/interest (mini-website product-interest form)
func (h *InterestHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitInterestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_REQUEST", "Invalid request body",
		))
	}

	required := []struct{ name, value string }{
		{"name", req.InterestName},
		{"email", req.InterestEmail},
		{"interested products", req.InterestedProducts},
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

	leadScore := scoring.LeadScore(scoring.LeadSubmission{
		Phone:              req.InterestPhone,
		InterestedProducts: req.InterestedProducts,
		BudgetRange:        req.BudgetRange,
		PurchaseTimeline:   req.PurchaseTimeline,
		NewsletterSignup:   req.NewsletterSignup,
	})

	interest := &domain.ProductInterest{
		CustomerName:       req.InterestName,
		CustomerEmail:      strings.ToLower(strings.TrimSpace(req.InterestEmail)),
		CustomerPhone:      req.InterestPhone,
		InterestedProducts: req.InterestedProducts,
		BudgetRange:        req.BudgetRange,
		PurchaseTimeline:   req.PurchaseTimeline,
		LeadScore:          leadScore,
		Status:             domain.LeadStatusNew,
		WebsiteSource:      defaultWebsiteSource(req.WebsiteSource),
		BusinessID:         businessID,
		IPAddress:          clientIP(c),
		UserAgent:          c.Get("User-Agent"),
	}

	if err := h.interestRepo.Create(interest); err != nil {
		log.Printf("failed to store product interest: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Internal server error. Please try again later.",
		))
	}

	metrics.RecordSubmission("interest")
	h.enricher.InterestSubmitted(interest, req.NewsletterSignup)

	return c.JSON(dto.SuccessResponse(dto.SubmitInterestResponse{
		InterestID: interest.ID.String(),
		LeadScore:  leadScore,
	}, "Thank you for your interest! We'll be in touch soon with more information about our products."))
}

// List - GET /interests (dashboard)
func (h *InterestHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	interests, total, err := h.interestRepo.List(middleware.GetBusinessID(c), status, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Failed to fetch product interests",
		))
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	return c.JSON(dto.SuccessWithMeta(interests, &dto.Meta{
		CurrentPage: page,
		PerPage:     limit,
		TotalPages:  int(totalPages),
		TotalCount:  total,
	}))
}

// UpdateStatus - PATCH /interests/:id/status (dashboard sales workflow)
func (h *InterestHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("INVALID_ID", "ID is not valid"))
	}

	var req dto.UpdateInterestStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	switch domain.LeadStatus(req.Status) {
	case domain.LeadStatusNew, domain.LeadStatusContacted, domain.LeadStatusQualified,
		domain.LeadStatusConverted, domain.LeadStatusClosed:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "status is not valid",
		))
	}

	if _, err := h.interestRepo.FindByID(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse("NOT_FOUND", "Product interest not found"))
	}

	if err := h.interestRepo.UpdateStatus(id, domain.LeadStatus(req.Status)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Failed to update status",
		))
	}

	return c.JSON(dto.SuccessResponse(nil, "Status updated"))
}
