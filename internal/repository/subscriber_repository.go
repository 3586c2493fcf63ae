package repository

import (
	"strings"
	"time"

	"github.com/Pranavipulluri/break-even/internal/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// SubscriberUpsert carries everything a single opt-in event knows about
// the subscriber.
type SubscriberUpsert struct {
	Email         string
	BusinessID    *uuid.UUID
	Name          string
	Phone         string
	Source        string
	Interests     []string
	WebsiteSource string
	Metadata      domain.JSONB
}

func (r *SubscriberRepository) FindByEmail(email string, businessID *uuid.UUID) (*domain.Subscriber, error) {
	var subscriber domain.Subscriber
	err := byBusiness(r.db.Where("email = ?", normalizeEmail(email)), businessID).
		First(&subscriber).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &subscriber, nil
}

// Upsert creates the subscriber on first opt-in and merge-updates it on
// every later one: interests accumulate as a union, active is re-set, and
// subscribed_at keeps its original value. The unique (email, business_id)
// index — a partial index on email alone covers rows without a business,
// where the composite index would treat NULLs as distinct — plus ON
// CONFLICT keeps the at-most-one-row invariant under concurrent
// submissions. Returns the record and whether it was created.
func (r *SubscriberRepository) Upsert(in SubscriberUpsert) (*domain.Subscriber, bool, error) {
	email := normalizeEmail(in.Email)

	existing, err := r.FindByEmail(email, in.BusinessID)
	if err != nil {
		return nil, false, err
	}

	if existing == nil {
		subscriber := &domain.Subscriber{
			Email:         email,
			BusinessID:    in.BusinessID,
			Name:          in.Name,
			Phone:         in.Phone,
			Source:        in.Source,
			Interests:     dedupe(in.Interests),
			WebsiteSource: in.WebsiteSource,
			IsActive:      true,
			Metadata:      in.Metadata,
			SubscribedAt:  time.Now(),
			UpdatedAt:     time.Now(),
		}
		res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(subscriber)
		if res.Error != nil {
			return nil, false, res.Error
		}
		if res.RowsAffected > 0 {
			return subscriber, true, nil
		}
		// Lost a concurrent-insert race; merge into the winner instead.
		existing, err = r.FindByEmail(email, in.BusinessID)
		if err != nil || existing == nil {
			return nil, false, err
		}
	}

	updates := map[string]interface{}{
		"interests":  mergeInterests(existing.Interests, in.Interests),
		"is_active":  true,
		"updated_at": time.Now(),
	}
	if in.Name != "" {
		updates["name"] = in.Name
	}
	if in.Phone != "" {
		updates["phone"] = in.Phone
	}
	if in.Metadata != nil {
		updates["metadata"] = in.Metadata
	}

	err = r.db.Model(&domain.Subscriber{}).
		Where("id = ?", existing.ID).
		Updates(updates).Error
	if err != nil {
		return nil, false, err
	}

	updated, err := r.FindByEmail(email, in.BusinessID)
	if err != nil {
		return nil, false, err
	}
	return updated, false, nil
}

func (r *SubscriberRepository) Count(businessID *uuid.UUID) (int64, error) {
	var count int64
	err := byBusiness(r.db.Model(&domain.Subscriber{}), businessID).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func dedupe(tags []string) pq.StringArray {
	seen := make(map[string]struct{}, len(tags))
	out := make(pq.StringArray, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func mergeInterests(existing pq.StringArray, added []string) pq.StringArray {
	return dedupe(append(append([]string{}, existing...), added...))
}
