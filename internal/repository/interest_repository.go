package repository

import (
	"github.com/Pranavipulluri/break-even/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InterestRepository struct {
	db *gorm.DB
}

func NewInterestRepository(db *gorm.DB) *InterestRepository {
	return &InterestRepository{db: db}
}

func (r *InterestRepository) Create(interest *domain.ProductInterest) error {
	return r.db.Create(interest).Error
}

func (r *InterestRepository) FindByID(id uuid.UUID) (*domain.ProductInterest, error) {
	var interest domain.ProductInterest
	err := r.db.Where("id = ?", id).First(&interest).Error
	if err != nil {
		return nil, err
	}
	return &interest, nil
}

func (r *InterestRepository) List(businessID *uuid.UUID, status string, page, limit int) ([]domain.ProductInterest, int64, error) {
	var interests []domain.ProductInterest
	var total int64

	query := byBusiness(r.db.Model(&domain.ProductInterest{}), businessID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Order("lead_score DESC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&interests).Error
	if err != nil {
		return nil, 0, err
	}

	return interests, total, nil
}

// ListAll returns every lead for a business, newest first. Used by the
// spreadsheet export.
func (r *InterestRepository) ListAll(businessID *uuid.UUID) ([]domain.ProductInterest, error) {
	var interests []domain.ProductInterest
	err := byBusiness(r.db, businessID).
		Order("created_at DESC").
		Find(&interests).Error
	if err != nil {
		return nil, err
	}
	return interests, nil
}

func (r *InterestRepository) UpdateStatus(id uuid.UUID, status domain.LeadStatus) error {
	return r.db.Model(&domain.ProductInterest{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *InterestRepository) GetStats(businessID *uuid.UUID) (total, newLeads int64, avgScore float64, err error) {
	base := func() *gorm.DB {
		return byBusiness(r.db.Model(&domain.ProductInterest{}), businessID)
	}

	if err = base().Count(&total).Error; err != nil {
		return
	}
	if err = base().Where("status = ?", domain.LeadStatusNew).Count(&newLeads).Error; err != nil {
		return
	}

	var avg *float64
	if err = base().Select("AVG(lead_score)").Scan(&avg).Error; err != nil {
		return
	}
	if avg != nil {
		avgScore = *avg
	}
	return
}
