package handler

import (
	"net/http"
	"testing"

	"github.com/Pranavipulluri/break-even/internal/domain"
	"github.com/Pranavipulluri/break-even/internal/dto"
	"github.com/Pranavipulluri/break-even/internal/scoring"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitInterestRequiresProducts(t *testing.T) {
	env := setupTestEnv(t)

	resp := env.postJSON(t, "/api/v1/public/interest", dto.SubmitInterestRequest{
		InterestName:  "Jane",
		InterestEmail: "jane@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	assert.Equal(t, "interested products is required", body.Message)
}

func TestSubmitInterestScoresLead(t *testing.T) {
	env := setupTestEnv(t)

	req := dto.SubmitInterestRequest{
		InterestName:       "Jane",
		InterestEmail:      "jane@example.com",
		InterestPhone:      "555-0101",
		InterestedProducts: "Premium Widget",
		BudgetRange:        "1000_5000",
		PurchaseTimeline:   "immediately",
		NewsletterSignup:   true,
	}
	resp := env.postJSON(t, "/api/v1/public/interest", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	require.True(t, body.Success)

	var data dto.SubmitInterestResponse
	decodeData(t, body, &data)

	want := scoring.LeadScore(scoring.LeadSubmission{
		Phone:              req.InterestPhone,
		InterestedProducts: req.InterestedProducts,
		BudgetRange:        req.BudgetRange,
		PurchaseTimeline:   req.PurchaseTimeline,
		NewsletterSignup:   req.NewsletterSignup,
	})
	assert.Equal(t, want, data.LeadScore)

	id, err := uuid.Parse(data.InterestID)
	require.NoError(t, err)

	stored, err := env.interestRepo.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusNew, stored.Status)
	assert.Equal(t, want, stored.LeadScore)
}

// Two submissions from the same email must fold into a single subscriber
// whose interest tags are the union of both.
func TestRepeatInterestSubmissionsMergeSubscriber(t *testing.T) {
	env := setupTestEnv(t)

	first := env.postJSON(t, "/api/v1/public/interest", dto.SubmitInterestRequest{
		InterestName:       "Jane",
		InterestEmail:      "jane@example.com",
		InterestedProducts: "Widget A",
		NewsletterSignup:   true,
	})
	require.Equal(t, http.StatusOK, first.StatusCode)
	decodeEnvelope(t, first)

	second := env.postJSON(t, "/api/v1/public/interest", dto.SubmitInterestRequest{
		InterestName:       "Jane",
		InterestEmail:      "JANE@example.com",
		InterestedProducts: "Widget B",
		NewsletterSignup:   true,
	})
	require.Equal(t, http.StatusOK, second.StatusCode)
	decodeEnvelope(t, second)

	var count int64
	require.NoError(t, env.db.Model(&domain.Subscriber{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "One subscriber row per email")

	subscriber, err := env.subscriberRepo.FindByEmail("jane@example.com", nil)
	require.NoError(t, err)
	require.NotNil(t, subscriber)
	assert.ElementsMatch(t, []string{"products", "promotions"}, []string(subscriber.Interests))
}

func TestSubmitInterestRecordsAnalytics(t *testing.T) {
	env := setupTestEnv(t)

	resp := env.postJSON(t, "/api/v1/public/interest", dto.SubmitInterestRequest{
		InterestName:       "Jane",
		InterestEmail:      "jane@example.com",
		InterestedProducts: "Widget A",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeEnvelope(t, resp)

	events, err := env.analyticsRepo.CountEventsByType(nil, domain.EventProductInterest)
	require.NoError(t, err)
	assert.Equal(t, int64(1), events)
}

func TestUpdateInterestStatus(t *testing.T) {
	env := setupTestEnv(t)

	businessID := uuid.New()
	interest := &domain.ProductInterest{
		CustomerName:       "Jane",
		CustomerEmail:      "jane@example.com",
		InterestedProducts: "Widget A",
		Status:             domain.LeadStatusNew,
		WebsiteSource:      "shop",
		BusinessID:         &businessID,
	}
	require.NoError(t, env.interestRepo.Create(interest))

	token := env.tokenForBusiness(t, &businessID)
	resp := env.patchJSON(t, "/api/v1/interests/"+interest.ID.String()+"/status",
		dto.UpdateInterestStatusRequest{Status: "contacted"}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeEnvelope(t, resp)

	updated, err := env.interestRepo.FindByID(interest.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusContacted, updated.Status)
}

func TestUpdateInterestStatusRejectsUnknownValue(t *testing.T) {
	env := setupTestEnv(t)

	businessID := uuid.New()
	interest := &domain.ProductInterest{
		CustomerName:       "Jane",
		CustomerEmail:      "jane@example.com",
		InterestedProducts: "Widget A",
		Status:             domain.LeadStatusNew,
		WebsiteSource:      "shop",
		BusinessID:         &businessID,
	}
	require.NoError(t, env.interestRepo.Create(interest))

	token := env.tokenForBusiness(t, &businessID)
	resp := env.patchJSON(t, "/api/v1/interests/"+interest.ID.String()+"/status",
		dto.UpdateInterestStatusRequest{Status: "escalated"}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decodeEnvelope(t, resp)

	unchanged, err := env.interestRepo.FindByID(interest.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusNew, unchanged.Status)
}
