package repository

import (
	"github.com/Pranavipulluri/break-even/internal/domain"
	"github.com/Pranavipulluri/break-even/internal/scoring"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(feedback *domain.Feedback) error {
	return r.db.Create(feedback).Error
}

func (r *FeedbackRepository) FindByID(id uuid.UUID) (*domain.Feedback, error) {
	var feedback domain.Feedback
	err := r.db.Where("id = ?", id).First(&feedback).Error
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

// ListRecentPublic returns feedback suitable for public display on a mini
// website: positive or neutral sentiment with a rating of at least 3 stars.
func (r *FeedbackRepository) ListRecentPublic(businessID *uuid.UUID, limit int) ([]domain.Feedback, error) {
	var feedbacks []domain.Feedback
	err := byBusiness(r.db, businessID).
		Where("sentiment_label IN ?", []string{scoring.SentimentPositive, scoring.SentimentNeutral}).
		Where("rating >= ?", 3).
		Order("created_at DESC").
		Limit(limit).
		Find(&feedbacks).Error
	if err != nil {
		return nil, err
	}
	return feedbacks, nil
}

func (r *FeedbackRepository) List(businessID *uuid.UUID, sentiment, category string, page, limit int) ([]domain.Feedback, int64, error) {
	var feedbacks []domain.Feedback
	var total int64

	query := byBusiness(r.db.Model(&domain.Feedback{}), businessID)

	if sentiment != "" {
		query = query.Where("sentiment_label = ?", sentiment)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&feedbacks).Error
	if err != nil {
		return nil, 0, err
	}

	return feedbacks, total, nil
}

func (r *FeedbackRepository) GetStats(businessID *uuid.UUID) (total, positive, neutral, negative int64, avgRating float64, err error) {
	base := func() *gorm.DB {
		return byBusiness(r.db.Model(&domain.Feedback{}), businessID)
	}

	if err = base().Count(&total).Error; err != nil {
		return
	}
	if err = base().Where("sentiment_label = ?", scoring.SentimentPositive).Count(&positive).Error; err != nil {
		return
	}
	if err = base().Where("sentiment_label = ?", scoring.SentimentNeutral).Count(&neutral).Error; err != nil {
		return
	}
	if err = base().Where("sentiment_label = ?", scoring.SentimentNegative).Count(&negative).Error; err != nil {
		return
	}

	var avg *float64
	if err = base().Select("AVG(rating)").Where("rating IS NOT NULL").Scan(&avg).Error; err != nil {
		return
	}
	if avg != nil {
		avgRating = *avg
	}
	return
}
