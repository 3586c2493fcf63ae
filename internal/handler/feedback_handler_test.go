package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/Pranavipulluri/break-even/internal/domain"
	"github.com/Pranavipulluri/break-even/internal/dto"
	"github.com/Pranavipulluri/break-even/internal/scoring"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitFeedbackRequiresFields(t *testing.T) {
	env := setupTestEnv(t)

	resp := env.postJSON(t, "/api/v1/public/feedback", dto.SubmitFeedbackRequest{
		CustomerName:    "Jane",
		FeedbackMessage: "great product",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	assert.False(t, body.Success)
	assert.Equal(t, "customer_email is required", body.Message)
}

func TestSubmitFeedbackRejectsOutOfRangeRating(t *testing.T) {
	env := setupTestEnv(t)

	rating := 6
	resp := env.postJSON(t, "/api/v1/public/feedback", dto.SubmitFeedbackRequest{
		CustomerName:    "Jane",
		CustomerEmail:   "jane@example.com",
		FeedbackMessage: "great product",
		Rating:          &rating,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	assert.Equal(t, "Rating must be between 1 and 5", body.Message)
}

func TestSubmitFeedbackStoresAndScores(t *testing.T) {
	env := setupTestEnv(t)

	message := "excellent service, love the amazing product"
	rating := 5
	resp := env.postJSON(t, "/api/v1/public/feedback", dto.SubmitFeedbackRequest{
		CustomerName:    "Jane",
		CustomerEmail:   "Jane@Example.com",
		FeedbackMessage: message,
		Rating:          &rating,
		WebsiteSource:   "shop.example.com",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	require.True(t, body.Success)

	var data dto.SubmitFeedbackResponse
	decodeData(t, body, &data)

	want := scoring.AnalyzeSentiment(message)
	assert.Equal(t, want.Label, data.Sentiment.Label)
	assert.InDelta(t, want.Score, data.Sentiment.Score, 0.0001)

	id, err := uuid.Parse(data.FeedbackID)
	require.NoError(t, err)

	stored, err := env.feedbackRepo.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", stored.CustomerEmail, "Email should be normalized")
	assert.Equal(t, want.Label, stored.SentimentLabel)
}

// Enrichment runs synchronously in tests, so the analytics rows and the
// daily aggregate must exist as soon as the response comes back.
func TestSubmitFeedbackRunsEnrichment(t *testing.T) {
	env := setupTestEnv(t)

	rating := 4
	resp := env.postJSON(t, "/api/v1/public/feedback", dto.SubmitFeedbackRequest{
		CustomerName:     "Jane",
		CustomerEmail:    "jane@example.com",
		FeedbackMessage:  "good stuff",
		Rating:           &rating,
		NewsletterSignup: true,
		WebsiteSource:    "shop.example.com",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeEnvelope(t, resp)

	subscriber, err := env.subscriberRepo.FindByEmail("jane@example.com", nil)
	require.NoError(t, err)
	require.NotNil(t, subscriber, "Newsletter opt-in should create a subscriber")
	assert.Contains(t, []string(subscriber.Interests), "feedback")

	events, err := env.analyticsRepo.CountEventsByType(nil, domain.EventFeedbackSubmission)
	require.NoError(t, err)
	assert.Equal(t, int64(1), events)

	stat, err := env.analyticsRepo.GetDailyFeedbackStat("shop.example.com", time.Now().Format("2006-01-02"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), stat.TotalFeedback)
	assert.Equal(t, int64(4), stat.TotalRating)
}

func TestSubmitFeedbackWithoutNewsletterSkipsSubscriber(t *testing.T) {
	env := setupTestEnv(t)

	resp := env.postJSON(t, "/api/v1/public/feedback", dto.SubmitFeedbackRequest{
		CustomerName:    "Jane",
		CustomerEmail:   "jane@example.com",
		FeedbackMessage: "average at best",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeEnvelope(t, resp)

	subscriber, err := env.subscriberRepo.FindByEmail("jane@example.com", nil)
	require.NoError(t, err)
	assert.Nil(t, subscriber)
}

func TestRecentFeedbackRequiresBusinessID(t *testing.T) {
	env := setupTestEnv(t)

	req := newGetRequest(t, "/api/v1/public/feedback/recent", "")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecentFeedbackOnlyShowsDisplayable(t *testing.T) {
	env := setupTestEnv(t)

	businessID := uuid.New()
	good := 5
	bad := 1
	seed := []domain.Feedback{
		{CustomerName: "A", CustomerEmail: "a@example.com", Message: "love it", Category: "general",
			Rating: &good, SentimentLabel: scoring.SentimentPositive, WebsiteSource: "shop", BusinessID: &businessID},
		{CustomerName: "B", CustomerEmail: "b@example.com", Message: "terrible", Category: "general",
			Rating: &bad, SentimentLabel: scoring.SentimentNegative, WebsiteSource: "shop", BusinessID: &businessID},
	}
	for i := range seed {
		require.NoError(t, env.feedbackRepo.Create(&seed[i]))
	}

	req := newGetRequest(t, "/api/v1/public/feedback/recent?business_id="+businessID.String(), "")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	var data []dto.PublicFeedbackResponse
	decodeData(t, body, &data)

	require.Len(t, data, 1)
	assert.Equal(t, "A", data[0].CustomerName)
}

func TestFeedbackListRequiresAuth(t *testing.T) {
	env := setupTestEnv(t)

	req := newGetRequest(t, "/api/v1/feedback/", "")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFeedbackStatsScopedToTokenBusiness(t *testing.T) {
	env := setupTestEnv(t)

	businessID := uuid.New()
	otherID := uuid.New()
	rating := 4
	require.NoError(t, env.feedbackRepo.Create(&domain.Feedback{
		CustomerName: "A", CustomerEmail: "a@example.com", Message: "good", Category: "general",
		Rating: &rating, SentimentLabel: scoring.SentimentPositive, WebsiteSource: "shop", BusinessID: &businessID,
	}))
	require.NoError(t, env.feedbackRepo.Create(&domain.Feedback{
		CustomerName: "B", CustomerEmail: "b@example.com", Message: "bad", Category: "general",
		SentimentLabel: scoring.SentimentNegative, WebsiteSource: "shop", BusinessID: &otherID,
	}))

	token := env.tokenForBusiness(t, &businessID)
	req := newGetRequest(t, "/api/v1/feedback/stats", token)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	var data dto.FeedbackStatsResponse
	decodeData(t, body, &data)

	assert.Equal(t, int64(1), data.Total)
	assert.Equal(t, int64(1), data.Positive)
	assert.InDelta(t, 4.0, data.AverageRating, 0.001)
}
