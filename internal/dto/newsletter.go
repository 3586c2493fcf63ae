package dto

// SubscribeRequest is the mini-website newsletter signup payload.
type SubscribeRequest struct {
	NewsletterName      string `json:"newsletter_name"`
	NewsletterEmail     string `json:"newsletter_email"`
	NewsletterPhone     string `json:"newsletter_phone"`
	NewsletterInterests string `json:"newsletter_interests"`
	WebsiteSource       string `json:"website_source"`
	BusinessID          string `json:"business_id"`
}

type SubscribeResponse struct {
	SubscriberID string `json:"subscriber_id"`
	IsNew        bool   `json:"is_new"`
}
