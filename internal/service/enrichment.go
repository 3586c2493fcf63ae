package service

import (
	"log"

	"github.com/Pranavipulluri/break-even/internal/domain"
	"github.com/Pranavipulluri/break-even/internal/mail"
	"github.com/Pranavipulluri/break-even/internal/metrics"
	"github.com/Pranavipulluri/break-even/internal/repository"
)

// EnrichmentService performs the secondary writes that follow an ingestion
// event: subscriber upsert, analytics rows and welcome mail. The primary
// record is already committed when these run; a failure here is logged and
// counted but never surfaces to the submitter, who has already received a
// success response.
type EnrichmentService struct {
	subscriberRepo *repository.SubscriberRepository
	analyticsRepo  *repository.AnalyticsRepository
	mailer         *mail.Sender

	// Dispatch runs one enrichment unit. The default detaches it in a
	// goroutine; tests replace it with a synchronous call.
	Dispatch func(fn func())
}

func NewEnrichmentService(
	subscriberRepo *repository.SubscriberRepository,
	analyticsRepo *repository.AnalyticsRepository,
	mailer *mail.Sender,
) *EnrichmentService {
	return &EnrichmentService{
		subscriberRepo: subscriberRepo,
		analyticsRepo:  analyticsRepo,
		mailer:         mailer,
		Dispatch:       func(fn func()) { go fn() },
	}
}

func (s *EnrichmentService) FeedbackSubmitted(feedback *domain.Feedback, newsletterSignup bool) {
	s.Dispatch(func() {
		if newsletterSignup {
			_, _, err := s.subscriberRepo.Upsert(repository.SubscriberUpsert{
				Email:         feedback.CustomerEmail,
				BusinessID:    feedback.BusinessID,
				Name:          feedback.CustomerName,
				Phone:         feedback.CustomerPhone,
				Source:        "feedback_form",
				Interests:     []string{"feedback"},
				WebsiteSource: feedback.WebsiteSource,
			})
			if err != nil {
				log.Printf("feedback enrichment: subscriber upsert failed: %v", err)
				metrics.RecordEnrichmentFailure("subscriber_upsert")
			}
		}

		err := s.analyticsRepo.CreateEvent(&domain.AnalyticsEvent{
			Type:          domain.EventFeedbackSubmission,
			BusinessID:    feedback.BusinessID,
			WebsiteSource: feedback.WebsiteSource,
			Rating:        feedback.Rating,
			Sentiment:     feedback.SentimentLabel,
			Category:      feedback.Category,
			Metadata: domain.JSONB{
				"has_product_interest": feedback.ProductInterest != "",
				"wants_follow_up":      feedback.FollowUp,
				"newsletter_signup":    newsletterSignup,
			},
		})
		if err != nil {
			log.Printf("feedback enrichment: analytics event failed: %v", err)
			metrics.RecordEnrichmentFailure("analytics_event")
		}

		err = s.analyticsRepo.IncrementDailyFeedbackStats(feedback.WebsiteSource, feedback.SentimentLabel, feedback.Rating)
		if err != nil {
			log.Printf("feedback enrichment: daily stat increment failed: %v", err)
			metrics.RecordEnrichmentFailure("daily_stats")
		}
	})
}

func (s *EnrichmentService) InterestSubmitted(interest *domain.ProductInterest, newsletterSignup bool) {
	s.Dispatch(func() {
		if newsletterSignup {
			_, _, err := s.subscriberRepo.Upsert(repository.SubscriberUpsert{
				Email:         interest.CustomerEmail,
				BusinessID:    interest.BusinessID,
				Name:          interest.CustomerName,
				Phone:         interest.CustomerPhone,
				Source:        "product_interest",
				Interests:     []string{"products", "promotions"},
				WebsiteSource: interest.WebsiteSource,
				Metadata: domain.JSONB{
					"interested_products": interest.InterestedProducts,
					"budget_range":        interest.BudgetRange,
					"purchase_timeline":   interest.PurchaseTimeline,
				},
			})
			if err != nil {
				log.Printf("interest enrichment: subscriber upsert failed: %v", err)
				metrics.RecordEnrichmentFailure("subscriber_upsert")
			}
		}

		leadScore := interest.LeadScore
		err := s.analyticsRepo.CreateEvent(&domain.AnalyticsEvent{
			Type:          domain.EventProductInterest,
			BusinessID:    interest.BusinessID,
			WebsiteSource: interest.WebsiteSource,
			LeadScore:     &leadScore,
			Metadata: domain.JSONB{
				"budget_range":      interest.BudgetRange,
				"purchase_timeline": interest.PurchaseTimeline,
				"newsletter_signup": newsletterSignup,
				"has_phone":         interest.CustomerPhone != "",
			},
		})
		if err != nil {
			log.Printf("interest enrichment: analytics event failed: %v", err)
			metrics.RecordEnrichmentFailure("analytics_event")
		}
	})
}

func (s *EnrichmentService) NewsletterSubscribed(subscriber *domain.Subscriber, isNew bool) {
	s.Dispatch(func() {
		err := s.analyticsRepo.CreateEvent(&domain.AnalyticsEvent{
			Type:          domain.EventNewsletterSignup,
			BusinessID:    subscriber.BusinessID,
			WebsiteSource: subscriber.WebsiteSource,
			Metadata: domain.JSONB{
				"interests":         []string(subscriber.Interests),
				"is_new_subscriber": isNew,
				"has_phone":         subscriber.Phone != "",
			},
		})
		if err != nil {
			log.Printf("newsletter enrichment: analytics event failed: %v", err)
			metrics.RecordEnrichmentFailure("analytics_event")
		}

		if isNew && s.mailer.Enabled() {
			if err := s.mailer.SendWelcome(subscriber.Email, subscriber.Name, subscriber.WebsiteSource); err != nil {
				log.Printf("newsletter enrichment: welcome email failed: %v", err)
				metrics.RecordEnrichmentFailure("welcome_email")
			}
		}
	})
}

// DuplicateRegistration audits a rejected registration attempt against an
// email that already has an account.
func (s *EnrichmentService) DuplicateRegistration(existing *domain.Customer, ipAddress, userAgent string) {
	s.Dispatch(func() {
		err := s.analyticsRepo.CreateRegistrationLog(&domain.RegistrationLog{
			Email:            existing.Email,
			Name:             existing.Name,
			WebsiteSource:    existing.WebsiteSource,
			BusinessID:       existing.BusinessID,
			RegistrationType: "returning",
			IPAddress:        ipAddress,
			UserAgent:        userAgent,
		})
		if err != nil {
			log.Printf("registration enrichment: registration log failed: %v", err)
			metrics.RecordEnrichmentFailure("registration_log")
		}
	})
}

func (s *EnrichmentService) CustomerRegistered(customer *domain.Customer) {
	s.Dispatch(func() {
		if customer.MarketingEmails {
			_, _, err := s.subscriberRepo.Upsert(repository.SubscriberUpsert{
				Email:         customer.Email,
				BusinessID:    customer.BusinessID,
				Name:          customer.Name,
				Phone:         customer.Phone,
				Source:        "customer_registration",
				Interests:     []string{"general"},
				WebsiteSource: customer.WebsiteSource,
			})
			if err != nil {
				log.Printf("registration enrichment: subscriber upsert failed: %v", err)
				metrics.RecordEnrichmentFailure("subscriber_upsert")
			}
		}

		err := s.analyticsRepo.CreateEvent(&domain.AnalyticsEvent{
			Type:          domain.EventCustomerRegistration,
			BusinessID:    customer.BusinessID,
			WebsiteSource: customer.WebsiteSource,
			Metadata: domain.JSONB{
				"has_phone":        customer.Phone != "",
				"marketing_emails": customer.MarketingEmails,
			},
		})
		if err != nil {
			log.Printf("registration enrichment: analytics event failed: %v", err)
			metrics.RecordEnrichmentFailure("analytics_event")
		}

		err = s.analyticsRepo.CreateRegistrationLog(&domain.RegistrationLog{
			Email:            customer.Email,
			Name:             customer.Name,
			WebsiteSource:    customer.WebsiteSource,
			BusinessID:       customer.BusinessID,
			RegistrationType: "new",
			IPAddress:        customer.IPAddress,
			UserAgent:        customer.UserAgent,
		})
		if err != nil {
			log.Printf("registration enrichment: registration log failed: %v", err)
			metrics.RecordEnrichmentFailure("registration_log")
		}
	})
}
