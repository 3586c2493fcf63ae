package dto

// SubmitMessageRequest is the mini-website contact form payload.
type SubmitMessageRequest struct {
	SenderName  string `json:"sender_name"`
	SenderEmail string `json:"sender_email"`
	Subject     string `json:"subject"`
	Body        string `json:"message"`
	BusinessID  string `json:"business_id"`
}

type ReplyMessageRequest struct {
	Reply string `json:"reply"`
}

// DashboardStatsResponse aggregates the headline numbers the dashboard
// shows on its landing page.
type DashboardStatsResponse struct {
	TotalFeedback    int64   `json:"total_feedback"`
	AverageRating    float64 `json:"average_rating"`
	TotalLeads       int64   `json:"total_leads"`
	NewLeads         int64   `json:"new_leads"`
	AverageLeadScore float64 `json:"average_lead_score"`
	Subscribers      int64   `json:"subscribers"`
	UnreadMessages   int64   `json:"unread_messages"`
}

type GenerateQRRequest struct {
	URL  string `json:"url"`
	Size int    `json:"size"`
}

type GenerateQRResponse struct {
	ImageURL string `json:"image_url"`
}
