package dto

// SubmitInterestRequest is the mini-website product-interest form payload.
// Field names match the form inputs the generated sites post.
type SubmitInterestRequest struct {
	InterestName       string `json:"interest_name"`
	InterestEmail      string `json:"interest_email"`
	InterestPhone      string `json:"interest_phone"`
	InterestedProducts string `json:"interested_products"`
	BudgetRange        string `json:"budget_range"`
	PurchaseTimeline   string `json:"purchase_timeline"`
	NewsletterSignup   bool   `json:"newsletter_signup"`
	WebsiteSource      string `json:"website_source"`
	BusinessID         string `json:"business_id"`
}

type SubmitInterestResponse struct {
	InterestID string `json:"interest_id"`
	LeadScore  int    `json:"lead_score"`
}

type UpdateInterestStatusRequest struct {
	Status string `json:"status"`
}
