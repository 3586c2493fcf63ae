package handler

import (
	"github.com/Pranavipulluri/break-even/internal/dto"
	"github.com/Pranavipulluri/break-even/internal/middleware"
	"github.com/Pranavipulluri/break-even/internal/repository"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	feedbackRepo   *repository.FeedbackRepository
	interestRepo   *repository.InterestRepository
	subscriberRepo *repository.SubscriberRepository
	messageRepo    *repository.MessageRepository
}

func NewDashboardHandler(
	feedbackRepo *repository.FeedbackRepository,
	interestRepo *repository.InterestRepository,
	subscriberRepo *repository.SubscriberRepository,
	messageRepo *repository.MessageRepository,
) *DashboardHandler {
	return &DashboardHandler{
		feedbackRepo:   feedbackRepo,
		interestRepo:   interestRepo,
		subscriberRepo: subscriberRepo,
		messageRepo:    messageRepo,
	}
}

// Stats - GET /dashboard/stats
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	businessID := middleware.GetBusinessID(c)

	totalFeedback, _, _, _, avgRating, err := h.feedbackRepo.GetStats(businessID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Failed to fetch dashboard stats",
		))
	}

	totalLeads, newLeads, avgLeadScore, err := h.interestRepo.GetStats(businessID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Failed to fetch dashboard stats",
		))
	}

	subscribers, err := h.subscriberRepo.Count(businessID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Failed to fetch dashboard stats",
		))
	}

	unread, err := h.messageRepo.CountUnread(businessID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Failed to fetch dashboard stats",
		))
	}

	return c.JSON(dto.SuccessResponse(dto.DashboardStatsResponse{
		TotalFeedback:    totalFeedback,
		AverageRating:    avgRating,
		TotalLeads:       totalLeads,
		NewLeads:         newLeads,
		AverageLeadScore: avgLeadScore,
		Subscribers:      subscribers,
		UnreadMessages:   unread,
	}, ""))
}
