package dto

import "time"

// SubmitFeedbackRequest is the mini-website feedback form payload.
type SubmitFeedbackRequest struct {
	CustomerName     string `json:"customer_name"`
	CustomerEmail    string `json:"customer_email"`
	CustomerPhone    string `json:"customer_phone"`
	FeedbackMessage  string `json:"feedback_message"`
	FeedbackCategory string `json:"feedback_category"`
	Rating           *int   `json:"rating"`
	ProductInterest  string `json:"product_interest"`
	FollowUp         bool   `json:"follow_up"`
	NewsletterSignup bool   `json:"newsletter_signup"`
	WebsiteSource    string `json:"website_source"`
	BusinessID       string `json:"business_id"`
}

type SentimentDTO struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type SubmitFeedbackResponse struct {
	FeedbackID string       `json:"feedback_id"`
	Sentiment  SentimentDTO `json:"sentiment"`
}

// PublicFeedbackResponse is the sanitized shape shown on mini websites.
type PublicFeedbackResponse struct {
	CustomerName     string    `json:"customer_name"`
	FeedbackMessage  string    `json:"feedback_message"`
	Rating           *int      `json:"rating,omitempty"`
	Sentiment        string    `json:"sentiment"`
	FeedbackCategory string    `json:"feedback_category"`
	CreatedAt        time.Time `json:"created_at"`
}

type FeedbackStatsResponse struct {
	Total         int64   `json:"total"`
	Positive      int64   `json:"positive"`
	Neutral       int64   `json:"neutral"`
	Negative      int64   `json:"negative"`
	AverageRating float64 `json:"average_rating"`
}
