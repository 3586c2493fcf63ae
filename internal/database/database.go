package database

import (
	"fmt"

	"github.com/Pranavipulluri/break-even/internal/config"
	"github.com/Pranavipulluri/break-even/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dbCfg := cfg.Database
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host, dbCfg.Port, dbCfg.User, dbCfg.Password, dbCfg.Name, dbCfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.Feedback{},
		&domain.ProductInterest{},
		&domain.Subscriber{},
		&domain.AnalyticsEvent{},
		&domain.FeedbackDailyStat{},
		&domain.Customer{},
		&domain.RegistrationLog{},
		&domain.Product{},
		&domain.Message{},
	)
	if err != nil {
		return err
	}

	// The composite (email, business_id) unique indexes never conflict when
	// business_id is NULL, since SQL treats NULLs as distinct. Partial
	// indexes carry the uniqueness for rows without a business.
	partialIndexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_subscriber_email_no_business
			ON newsletter_subscribers (email) WHERE business_id IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_customer_email_no_business
			ON customers (email) WHERE business_id IS NULL`,
	}
	for _, stmt := range partialIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create partial index: %w", err)
		}
	}
	return nil
}
