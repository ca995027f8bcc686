package repository

import (
	"context"
	"errors"
	"time"

	"mun-chits/internal/domain/message"
	chits_errors "mun-chits/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m *message.Message) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	res := r.db.WithContext(ctx).Omit("Sender").Create(m)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return chits_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresMessageRepository) GetByID(ctx context.Context, id uuid.UUID) (message.Message, error) {
	var m message.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return message.Message{}, chits_errors.ErrNotFound
		}
		return message.Message{}, err
	}
	return m, nil
}

func (r *PostgresMessageRepository) Approve(ctx context.Context, id, approverID uuid.UUID, score *float64, at time.Time) error {
	updates := map[string]interface{}{
		"status":      message.StatusApproved,
		"approved_by": approverID,
		"approved_at": at,
		"updated_at":  at,
	}
	if score != nil {
		updates["score"] = *score
	}

	res := r.db.WithContext(ctx).
		Model(&message.Message{}).
		Where("id = ? AND status = ?", id, message.StatusPending).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Nothing updated: either unknown or no longer pending
	var count int64
	if err := r.db.WithContext(ctx).Model(&message.Message{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return chits_errors.ErrNotFound
	}
	return chits_errors.ErrInvalidTransition
}

func (r *PostgresMessageRepository) GetPendingByCommittee(ctx context.Context, committee string) ([]message.Message, error) {
	var messages []message.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Joins("JOIN users ON users.id = messages.sender_id").
		Where("messages.status = ? AND users.committee = ?", message.StatusPending, committee).
		Order("messages.created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
