package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Enum types
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusClosed    LeadStatus = "closed"
)

type AnalyticsEventType string

const (
	EventFeedbackSubmission   AnalyticsEventType = "feedback_submission"
	EventProductInterest      AnalyticsEventType = "product_interest"
	EventNewsletterSignup     AnalyticsEventType = "newsletter_signup"
	EventCustomerRegistration AnalyticsEventType = "customer_registration"
)

// JSONB type for GORM
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("cannot scan %T into JSONB", value)
	}
}

func setUUIDIfEmpty(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// Feedback - a single submission from a mini-website feedback form.
// Rows are write-once: nothing in this service updates or deletes them.
type Feedback struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerName    string     `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail   string     `gorm:"type:varchar(255);not null;index" json:"customer_email"`
	CustomerPhone   string     `gorm:"type:varchar(50)" json:"customer_phone"`
	Message         string     `gorm:"type:text;not null" json:"feedback_message"`
	Category        string     `gorm:"type:varchar(100);not null;default:'general'" json:"feedback_category"`
	Rating          *int       `gorm:"type:smallint" json:"rating,omitempty"`
	ProductInterest string     `gorm:"type:text" json:"product_interest"`
	FollowUp        bool       `gorm:"not null;default:false" json:"follow_up"`
	SentimentLabel  string     `gorm:"type:varchar(20);not null;index" json:"sentiment"`
	SentimentScore  float64    `gorm:"not null;default:0" json:"sentiment_score"`
	WebsiteSource   string     `gorm:"type:varchar(255);not null;default:'unknown';index" json:"website_source"`
	BusinessID      *uuid.UUID `gorm:"type:uuid;index" json:"business_id,omitempty"`
	IPAddress       string     `gorm:"type:varchar(64)" json:"-"`
	UserAgent       string     `gorm:"type:varchar(512)" json:"-"`
	CreatedAt       time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Feedback) TableName() string { return "customer_feedback" }

func (m *Feedback) BeforeCreate(tx *gorm.DB) error {
	setUUIDIfEmpty(&m.ID)
	return nil
}

// ProductInterest - a product-interest (lead) submission. Immutable at
// creation; only Status is mutated afterwards, by the sales workflow.
type ProductInterest struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerName       string     `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail      string     `gorm:"type:varchar(255);not null;index" json:"customer_email"`
	CustomerPhone      string     `gorm:"type:varchar(50)" json:"customer_phone"`
	InterestedProducts string     `gorm:"type:text;not null" json:"interested_products"`
	BudgetRange        string     `gorm:"type:varchar(50)" json:"budget_range"`
	PurchaseTimeline   string     `gorm:"type:varchar(50)" json:"purchase_timeline"`
	LeadScore          int        `gorm:"not null;default:0" json:"lead_score"`
	Status             LeadStatus `gorm:"type:varchar(20);not null;default:'new';index" json:"status"`
	WebsiteSource      string     `gorm:"type:varchar(255);not null;default:'unknown';index" json:"website_source"`
	BusinessID         *uuid.UUID `gorm:"type:uuid;index" json:"business_id,omitempty"`
	IPAddress          string     `gorm:"type:varchar(64)" json:"-"`
	UserAgent          string     `gorm:"type:varchar(512)" json:"-"`
	CreatedAt          time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ProductInterest) TableName() string { return "product_interests" }

func (m *ProductInterest) BeforeCreate(tx *gorm.DB) error {
	setUUIDIfEmpty(&m.ID)
	return nil
}

// Subscriber - newsletter subscriber, at most one row per
// (email, business_id). Interests accumulate as a set across submissions.
type Subscriber struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_subscriber_email_business" json:"email"`
	BusinessID    *uuid.UUID     `gorm:"type:uuid;uniqueIndex:idx_subscriber_email_business" json:"business_id,omitempty"`
	Name          string         `gorm:"type:varchar(255)" json:"name"`
	Phone         string         `gorm:"type:varchar(50)" json:"phone"`
	Source        string         `gorm:"type:varchar(100);not null" json:"source"`
	Interests     pq.StringArray `gorm:"type:text[]" json:"interests"`
	WebsiteSource string         `gorm:"type:varchar(255);not null;default:'unknown'" json:"website_source"`
	IsActive      bool           `gorm:"not null;default:true" json:"is_active"`
	Metadata      JSONB          `gorm:"type:jsonb" json:"metadata,omitempty"`
	SubscribedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"subscribed_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Subscriber) TableName() string { return "newsletter_subscribers" }

func (m *Subscriber) BeforeCreate(tx *gorm.DB) error {
	setUUIDIfEmpty(&m.ID)
	return nil
}

// AnalyticsEvent - append-only, one row per ingestion event.
type AnalyticsEvent struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Type          AnalyticsEventType `gorm:"type:varchar(50);not null;index" json:"type"`
	BusinessID    *uuid.UUID         `gorm:"type:uuid;index" json:"business_id,omitempty"`
	WebsiteSource string             `gorm:"type:varchar(255);not null;default:'unknown'" json:"website_source"`
	Rating        *int               `gorm:"type:smallint" json:"rating,omitempty"`
	Sentiment     string             `gorm:"type:varchar(20)" json:"sentiment,omitempty"`
	Category      string             `gorm:"type:varchar(100)" json:"category,omitempty"`
	LeadScore     *int               `json:"lead_score,omitempty"`
	Metadata      JSONB              `gorm:"type:jsonb" json:"metadata,omitempty"`
	Timestamp     time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"timestamp"`
}

func (AnalyticsEvent) TableName() string { return "website_analytics" }

func (m *AnalyticsEvent) BeforeCreate(tx *gorm.DB) error {
	setUUIDIfEmpty(&m.ID)
	return nil
}

// FeedbackDailyStat - per (website_source, date) aggregate, incremented
// atomically on every feedback submission.
type FeedbackDailyStat struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WebsiteSource     string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_feedback_stat_source_date" json:"website_source"`
	Date              string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_feedback_stat_source_date" json:"date"`
	TotalFeedback     int64     `gorm:"not null;default:0" json:"total_feedback"`
	SentimentPositive int64     `gorm:"not null;default:0" json:"sentiment_positive"`
	SentimentNeutral  int64     `gorm:"not null;default:0" json:"sentiment_neutral"`
	SentimentNegative int64     `gorm:"not null;default:0" json:"sentiment_negative"`
	TotalRating       int64     `gorm:"not null;default:0" json:"total_rating"`
	RatingCount       int64     `gorm:"not null;default:0" json:"rating_count"`
	LastUpdated       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"last_updated"`
}

func (FeedbackDailyStat) TableName() string { return "feedback_analytics" }

func (m *FeedbackDailyStat) BeforeCreate(tx *gorm.DB) error {
	setUUIDIfEmpty(&m.ID)
	return nil
}

// Customer - a mini-website customer account, unique per
// (email, business_id). Password is stored as a bcrypt hash only.
type Customer struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string     `gorm:"type:varchar(255);not null" json:"name"`
	Email           string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_customer_email_business" json:"email"`
	BusinessID      *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_customer_email_business" json:"business_id,omitempty"`
	Phone           string     `gorm:"type:varchar(50)" json:"phone"`
	PasswordHash    string     `gorm:"type:varchar(255);not null" json:"-"`
	WebsiteSource   string     `gorm:"type:varchar(255);not null;default:'unknown'" json:"website_source"`
	MarketingEmails bool       `gorm:"not null;default:false" json:"marketing_emails"`
	LoginCount      int        `gorm:"not null;default:0" json:"login_count"`
	LastLoginAt     *time.Time `json:"last_login,omitempty"`
	IsActive        bool       `gorm:"not null;default:true" json:"is_active"`
	IPAddress       string     `gorm:"type:varchar(64)" json:"-"`
	UserAgent       string     `gorm:"type:varchar(512)" json:"-"`
	CreatedAt       time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }

func (m *Customer) BeforeCreate(tx *gorm.DB) error {
	setUUIDIfEmpty(&m.ID)
	return nil
}

// RegistrationLog - append-only audit row per registration attempt.
type RegistrationLog struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email            string     `gorm:"type:varchar(255);not null;index" json:"email"`
	Name             string     `gorm:"type:varchar(255)" json:"name"`
	WebsiteSource    string     `gorm:"type:varchar(255);not null;default:'unknown'" json:"website_source"`
	BusinessID       *uuid.UUID `gorm:"type:uuid;index" json:"business_id,omitempty"`
	RegistrationType string     `gorm:"type:varchar(20);not null" json:"registration_type"`
	IPAddress        string     `gorm:"type:varchar(64)" json:"-"`
	UserAgent        string     `gorm:"type:varchar(512)" json:"-"`
	Timestamp        time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"timestamp"`
}

func (RegistrationLog) TableName() string { return "registration_logs" }

func (m *RegistrationLog) BeforeCreate(tx *gorm.DB) error {
	setUUIDIfEmpty(&m.ID)
	return nil
}

// Product - a catalog item shown on the business's mini-website.
type Product struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID  *uuid.UUID `gorm:"type:uuid;index" json:"business_id,omitempty"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Price       float64    `gorm:"not null;default:0" json:"price"`
	Stock       int        `gorm:"not null;default:0" json:"stock"`
	Category    string     `gorm:"type:varchar(100)" json:"category"`
	SKU         string     `gorm:"type:varchar(100)" json:"sku"`
	ImageURL    string     `gorm:"type:varchar(512)" json:"image"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

func (m *Product) BeforeCreate(tx *gorm.DB) error {
	setUUIDIfEmpty(&m.ID)
	return nil
}

// Message - a customer message from a mini-website contact form, with the
// business's optional reply.
type Message struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID  *uuid.UUID `gorm:"type:uuid;index" json:"business_id,omitempty"`
	SenderName  string     `gorm:"type:varchar(255);not null" json:"sender_name"`
	SenderEmail string     `gorm:"type:varchar(255);not null" json:"sender_email"`
	Subject     string     `gorm:"type:varchar(255)" json:"subject"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	Reply       string     `gorm:"type:text" json:"reply,omitempty"`
	IsRead      bool       `gorm:"not null;default:false;index" json:"is_read"`
	RepliedAt   *time.Time `json:"replied_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Message) TableName() string { return "customer_messages" }

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	setUUIDIfEmpty(&m.ID)
	return nil
}
