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
)

type FeedbackHandler struct {
	feedbackRepo *repository.FeedbackRepository
	enricher     *service.EnrichmentService
}

func NewFeedbackHandler(feedbackRepo *repository.FeedbackRepository, enricher *service.EnrichmentService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackRepo: feedbackRepo,
		enricher:     enricher,
	}
}

// Submit - POST /public/feedback (mini-website feedback form)
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_REQUEST", "Invalid request body",
		))
	}

	required := []struct{ name, value string }{
		{"customer_name", req.CustomerName},
		{"customer_email", req.CustomerEmail},
		{"feedback_message", req.FeedbackMessage},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
				"VALIDATION_ERROR", field.name+" is required",
			))
		}
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Rating must be between 1 and 5",
		))
	}

	businessID, ok := parseBusinessID(req.BusinessID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "business_id is not valid",
		))
	}

	sentiment := scoring.AnalyzeSentiment(req.FeedbackMessage)

	category := req.FeedbackCategory
	if category == "" {
		category = "general"
	}

	feedback := &domain.Feedback{
		CustomerName:    req.CustomerName,
		CustomerEmail:   strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		CustomerPhone:   req.CustomerPhone,
		Message:         req.FeedbackMessage,
		Category:        category,
		Rating:          req.Rating,
		ProductInterest: req.ProductInterest,
		FollowUp:        req.FollowUp,
		SentimentLabel:  sentiment.Label,
		SentimentScore:  sentiment.Score,
		WebsiteSource:   defaultWebsiteSource(req.WebsiteSource),
		BusinessID:      businessID,
		IPAddress:       clientIP(c),
		UserAgent:       c.Get("User-Agent"),
	}

	// The feedback row is the one write that decides the response; the
	// subscriber/analytics side effects are best-effort afterwards.
	if err := h.feedbackRepo.Create(feedback); err != nil {
		log.Printf("failed to store feedback: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Internal server error. Please try again later.",
		))
	}

	metrics.RecordSubmission("feedback")
	h.enricher.FeedbackSubmitted(feedback, req.NewsletterSignup)

	return c.JSON(dto.SuccessResponse(dto.SubmitFeedbackResponse{
		FeedbackID: feedback.ID.String(),
		Sentiment: dto.SentimentDTO{
			Label: sentiment.Label,
			Score: sentiment.Score,
		},
	}, "Thank you for your feedback! We appreciate your input and will review it carefully."))
}

// Recent - GET /public/feedback/recent (positive/neutral feedback for
// display on the mini website itself)
func (h *FeedbackHandler) Recent(c *fiber.Ctx) error {
	businessID, ok := parseBusinessID(c.Query("business_id"))
	if !ok || businessID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Business ID is required",
		))
	}

	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 50 {
		limit = 10
	}

	feedbacks, err := h.feedbackRepo.ListRecentPublic(businessID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Internal server error. Please try again later.",
		))
	}

	responses := make([]dto.PublicFeedbackResponse, 0, len(feedbacks))
	for _, f := range feedbacks {
		name := f.CustomerName
		if name == "" {
			name = "Anonymous Customer"
		}
		responses = append(responses, dto.PublicFeedbackResponse{
			CustomerName:     name,
			FeedbackMessage:  f.Message,
			Rating:           f.Rating,
			Sentiment:        f.SentimentLabel,
			FeedbackCategory: f.Category,
			CreatedAt:        f.CreatedAt,
		})
	}

	return c.JSON(dto.SuccessResponse(responses, ""))
}

// List - GET /feedback (dashboard)
func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	sentiment := c.Query("sentiment")
	category := c.Query("category")
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	feedbacks, total, err := h.feedbackRepo.List(middleware.GetBusinessID(c), sentiment, category, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Failed to fetch feedback",
		))
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	return c.JSON(dto.SuccessWithMeta(feedbacks, &dto.Meta{
		CurrentPage: page,
		PerPage:     limit,
		TotalPages:  int(totalPages),
		TotalCount:  total,
	}))
}

// Stats - GET /feedback/stats (dashboard)
func (h *FeedbackHandler) Stats(c *fiber.Ctx) error {
	total, positive, neutral, negative, avgRating, err := h.feedbackRepo.GetStats(middleware.GetBusinessID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Failed to fetch feedback statistics",
		))
	}

	return c.JSON(dto.SuccessResponse(dto.FeedbackStatsResponse{
		Total:         total,
		Positive:      positive,
		Neutral:       neutral,
		Negative:      negative,
		AverageRating: avgRating,
	}, ""))
}
