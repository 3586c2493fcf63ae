package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadScore_BaseScore(t *testing.T) {
	assert.Equal(t, 10, LeadScore(LeadSubmission{}))
}

func TestLeadScore_Bounds(t *testing.T) {
	inputs := []LeadSubmission{
		{},
		{Phone: "+1 555 0100"},
		{BudgetRange: "over_5000", PurchaseTimeline: "immediately"},
		{
			Phone:              "+1 555 0100",
			InterestedProducts: strings.Repeat("handmade ceramic mugs ", 5),
			BudgetRange:        "over_5000",
			PurchaseTimeline:   "immediately",
			NewsletterSignup:   true,
		},
		{BudgetRange: "garbage", PurchaseTimeline: "garbage"},
	}
	for _, in := range inputs {
		score := LeadScore(in)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}

func TestLeadScore_CapAt100(t *testing.T) {
	in := LeadSubmission{
		Phone:              "+1 555 0100",
		InterestedProducts: strings.Repeat("p", 51),
		BudgetRange:        "over_5000",
		PurchaseTimeline:   "immediately",
		NewsletterSignup:   true,
	}
	// 10 + 15 + 25 + 30 + 10 + 10 = 100 exactly
	assert.Equal(t, 100, LeadScore(in))
}

func TestLeadScore_BudgetTiers(t *testing.T) {
	tiers := map[string]int{
		"under_100": 5,
		"100_500":   10,
		"500_1000":  15,
		"1000_5000": 20,
		"over_5000": 25,
	}
	for band, points := range tiers {
		assert.Equal(t, 10+points, LeadScore(LeadSubmission{BudgetRange: band}), "band %q", band)
	}
}

func TestLeadScore_TimelineTiers(t *testing.T) {
	tiers := map[string]int{
		"immediately":    30,
		"within_week":    25,
		"within_month":   20,
		"within_quarter": 15,
		"just_browsing":  5,
	}
	for band, points := range tiers {
		assert.Equal(t, 10+points, LeadScore(LeadSubmission{PurchaseTimeline: band}), "band %q", band)
	}
}

func TestLeadScore_UnrecognizedTiersContributeZero(t *testing.T) {
	assert.Equal(t, 10, LeadScore(LeadSubmission{BudgetRange: "1_billion", PurchaseTimeline: "someday"}))
}

func TestLeadScore_Monotonicity(t *testing.T) {
	base := LeadSubmission{
		InterestedProducts: "mugs",
		BudgetRange:        "100_500",
		PurchaseTimeline:   "within_month",
	}

	withPhone := base
	withPhone.Phone = "+1 555 0100"
	assert.GreaterOrEqual(t, LeadScore(withPhone), LeadScore(base))

	withOptIn := base
	withOptIn.NewsletterSignup = true
	assert.GreaterOrEqual(t, LeadScore(withOptIn), LeadScore(base))

	withDetail := base
	withDetail.InterestedProducts = strings.Repeat("mugs and plates ", 4)
	assert.GreaterOrEqual(t, LeadScore(withDetail), LeadScore(base))
}

func TestLeadScore_DescriptionLengthThreshold(t *testing.T) {
	at50 := LeadScore(LeadSubmission{InterestedProducts: strings.Repeat("p", 50)})
	at51 := LeadScore(LeadSubmission{InterestedProducts: strings.Repeat("p", 51)})
	assert.Equal(t, 10, at50)
	assert.Equal(t, 20, at51)
}
