package repository

import (
	"time"

	"github.com/Pranavipulluri/break-even/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(customer *domain.Customer) error {
	return r.db.Create(customer).Error
}

func (r *CustomerRepository) FindByID(id uuid.UUID) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.Where("id = ?", id).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByEmail looks up the account for an (email, business) pair. Returns
// nil, nil when no account exists.
func (r *CustomerRepository) FindByEmail(email string, businessID *uuid.UUID) (*domain.Customer, error) {
	var customer domain.Customer
	err := byBusiness(r.db.Where("email = ?", normalizeEmail(email)), businessID).
		First(&customer).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// RecordLogin bumps the login counter and last-login timestamp atomically.
func (r *CustomerRepository) RecordLogin(id uuid.UUID) error {
	return r.db.Model(&domain.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"login_count":   gorm.Expr("login_count + 1"),
			"last_login_at": time.Now(),
			"updated_at":    time.Now(),
		}).Error
}
