package scoring

// LeadSubmission is the structured input for lead scoring. Phone,
// BudgetRange and PurchaseTimeline may be empty; unrecognized enum values
// simply contribute nothing.
type LeadSubmission struct {
	Phone              string
	InterestedProducts string
	BudgetRange        string
	PurchaseTimeline   string
	NewsletterSignup   bool
}

var budgetScores = map[string]int{
	"under_100": 5,
	"100_500":   10,
	"500_1000":  15,
	"1000_5000": 20,
	"over_5000": 25,
}

var timelineScores = map[string]int{
	"immediately":    30,
	"within_week":    25,
	"within_month":   20,
	"within_quarter": 15,
	"just_browsing":  5,
}

// LeadScore maps a product-interest submission to an integer in [0, 100].
// Base 10 for the submission itself, plus fixed bumps for a phone number,
// the budget band, the purchase timeline, newsletter opt-in and a detailed
// (>50 chars) product description. Capped at 100.
func LeadScore(in LeadSubmission) int {
	score := 10

	if in.Phone != "" {
		score += 15
	}
	score += budgetScores[in.BudgetRange]
	score += timelineScores[in.PurchaseTimeline]
	if in.NewsletterSignup {
		score += 10
	}
	if len(in.InterestedProducts) > 50 {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}
