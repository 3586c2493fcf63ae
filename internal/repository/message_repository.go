package repository

import (
	"time"

	"github.com/Pranavipulluri/break-even/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *domain.Message) error {
	return r.db.Create(message).Error
}

func (r *MessageRepository) FindByID(id uuid.UUID) (*domain.Message, error) {
	var message domain.Message
	err := r.db.Where("id = ?", id).First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepository) List(businessID *uuid.UUID, unreadOnly bool, page, limit int) ([]domain.Message, int64, error) {
	var messages []domain.Message
	var total int64

	query := byBusiness(r.db.Model(&domain.Message{}), businessID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

func (r *MessageRepository) MarkRead(id uuid.UUID) error {
	return r.db.Model(&domain.Message{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

// Reply stores the business's reply and marks the message read.
func (r *MessageRepository) Reply(id uuid.UUID, reply string) error {
	now := time.Now()
	return r.db.Model(&domain.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reply":      reply,
			"replied_at": now,
			"is_read":    true,
		}).Error
}

func (r *MessageRepository) CountUnread(businessID *uuid.UUID) (int64, error) {
	var count int64
	err := byBusiness(r.db.Model(&domain.Message{}), businessID).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}
