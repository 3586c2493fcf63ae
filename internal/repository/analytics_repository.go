package repository

import (
	"time"

	"github.com/Pranavipulluri/break-even/internal/domain"
	"github.com/Pranavipulluri/break-even/internal/scoring"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) CreateEvent(event *domain.AnalyticsEvent) error {
	return r.db.Create(event).Error
}

func (r *AnalyticsRepository) CreateRegistrationLog(entry *domain.RegistrationLog) error {
	return r.db.Create(entry).Error
}

// IncrementDailyFeedbackStats bumps the per-(website_source, day) aggregate
// in a single atomic upsert, so concurrent submissions cannot lose counts.
func (r *AnalyticsRepository) IncrementDailyFeedbackStats(websiteSource, sentiment string, rating *int) error {
	date := time.Now().Format("2006-01-02")

	sentimentCol := "sentiment_neutral"
	switch sentiment {
	case scoring.SentimentPositive:
		sentimentCol = "sentiment_positive"
	case scoring.SentimentNegative:
		sentimentCol = "sentiment_negative"
	}

	ratingValue := 0
	ratingCount := 0
	if rating != nil {
		ratingValue = *rating
		ratingCount = 1
	}

	stat := domain.FeedbackDailyStat{
		WebsiteSource: websiteSource,
		Date:          date,
		TotalFeedback: 1,
		TotalRating:   int64(ratingValue),
		RatingCount:   int64(ratingCount),
		LastUpdated:   time.Now(),
	}
	switch sentimentCol {
	case "sentiment_positive":
		stat.SentimentPositive = 1
	case "sentiment_negative":
		stat.SentimentNegative = 1
	default:
		stat.SentimentNeutral = 1
	}

	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "website_source"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_feedback": gorm.Expr("total_feedback + 1"),
			sentimentCol:     gorm.Expr(sentimentCol + " + 1"),
			"total_rating":   gorm.Expr("total_rating + ?", ratingValue),
			"rating_count":   gorm.Expr("rating_count + ?", ratingCount),
			"last_updated":   time.Now(),
		}),
	}).Create(&stat).Error
}

func (r *AnalyticsRepository) GetDailyFeedbackStat(websiteSource, date string) (*domain.FeedbackDailyStat, error) {
	var stat domain.FeedbackDailyStat
	err := r.db.Where("website_source = ? AND date = ?", websiteSource, date).First(&stat).Error
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

func (r *AnalyticsRepository) CountEventsByType(businessID *uuid.UUID, eventType domain.AnalyticsEventType) (int64, error) {
	var count int64
	err := byBusiness(r.db.Model(&domain.AnalyticsEvent{}), businessID).
		Where("type = ?", eventType).
		Count(&count).Error
	return count, err
}
