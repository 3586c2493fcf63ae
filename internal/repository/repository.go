package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// byBusiness scopes a query to one business. A nil ID means records
// submitted without a business identifier, which "= NULL" would never match.
func byBusiness(db *gorm.DB, businessID *uuid.UUID) *gorm.DB {
	if businessID == nil {
		return db.Where("business_id IS NULL")
	}
	return db.Where("business_id = ?", *businessID)
}
