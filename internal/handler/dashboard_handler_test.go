package handler

import (
	"net/http"
	"testing"

	"github.com/Pranavipulluri/break-even/internal/domain"
	"github.com/Pranavipulluri/break-even/internal/dto"
	"github.com/Pranavipulluri/break-even/internal/repository"
	"github.com/Pranavipulluri/break-even/internal/scoring"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStatsRequiresAuth(t *testing.T) {
	env := setupTestEnv(t)

	req := newGetRequest(t, "/api/v1/dashboard/stats", "")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDashboardStatsAggregates(t *testing.T) {
	env := setupTestEnv(t)

	businessID := uuid.New()

	rating := 5
	require.NoError(t, env.feedbackRepo.Create(&domain.Feedback{
		CustomerName: "A", CustomerEmail: "a@example.com", Message: "good", Category: "general",
		Rating: &rating, SentimentLabel: scoring.SentimentPositive, WebsiteSource: "shop",
		BusinessID: &businessID,
	}))
	require.NoError(t, env.interestRepo.Create(&domain.ProductInterest{
		CustomerName: "B", CustomerEmail: "b@example.com", InterestedProducts: "Widget",
		LeadScore: 40, Status: domain.LeadStatusNew, WebsiteSource: "shop",
		BusinessID: &businessID,
	}))
	require.NoError(t, env.interestRepo.Create(&domain.ProductInterest{
		CustomerName: "C", CustomerEmail: "c@example.com", InterestedProducts: "Widget",
		LeadScore: 60, Status: domain.LeadStatusContacted, WebsiteSource: "shop",
		BusinessID: &businessID,
	}))
	_, _, err := env.subscriberRepo.Upsert(repository.SubscriberUpsert{
		Email:      "d@example.com",
		BusinessID: &businessID,
		Source:     "newsletter_signup",
		Interests:  []string{"general"},
	})
	require.NoError(t, err)

	token := env.tokenForBusiness(t, &businessID)
	req := newGetRequest(t, "/api/v1/dashboard/stats", token)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	var data dto.DashboardStatsResponse
	decodeData(t, body, &data)

	assert.Equal(t, int64(1), data.TotalFeedback)
	assert.InDelta(t, 5.0, data.AverageRating, 0.001)
	assert.Equal(t, int64(2), data.TotalLeads)
	assert.Equal(t, int64(1), data.NewLeads)
	assert.InDelta(t, 50.0, data.AverageLeadScore, 0.001)
	assert.Equal(t, int64(1), data.Subscribers)
	assert.Equal(t, int64(0), data.UnreadMessages)
}
