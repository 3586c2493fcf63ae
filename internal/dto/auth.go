package dto

import "time"

// RegisterRequest is the mini-website account creation payload.
type RegisterRequest struct {
	RegisterName     string `json:"register_name"`
	RegisterEmail    string `json:"register_email"`
	RegisterPassword string `json:"register_password"`
	RegisterPhone    string `json:"register_phone"`
	MarketingEmails  bool   `json:"marketing_emails"`
	WebsiteSource    string `json:"website_source"`
	BusinessID       string `json:"business_id"`
}

type LoginRequest struct {
	LoginEmail    string `json:"login_email"`
	LoginPassword string `json:"login_password"`
	BusinessID    string `json:"business_id"`
}

// CustomerDTO is the account summary returned after register/login.
// Never includes the password hash.
type CustomerDTO struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	LoginCount int        `json:"login_count"`
	CreatedAt  time.Time  `json:"created_at"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}

type AuthResponse struct {
	Customer CustomerDTO `json:"customer"`
	Token    string      `json:"token"`
}
