package repository

import (
	"context"
	"errors"

	"mun-chits/internal/domain/conversation"
	chits_errors "mun-chits/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &PostgresConversationRepository{db: db}
}

func (r *PostgresConversationRepository) Create(ctx context.Context, c *conversation.Conversation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(c).Error; err != nil {
			if isUniqueViolation(err) {
				return chits_errors.ErrAlreadyExists
			}
			return err
		}
		if len(c.Participants) == 0 {
			return nil
		}
		for i := range c.Participants {
			c.Participants[i].ConversationID = c.ID
		}
		return tx.Omit("User").Create(&c.Participants).Error
	})
}

func (r *PostgresConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (conversation.Conversation, error) {
	var c conversation.Conversation
	err := withThread(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return conversation.Conversation{}, chits_errors.ErrNotFound
		}
		return conversation.Conversation{}, err
	}
	return c, nil
}

func (r *PostgresConversationRepository) GetConversationsBetween(ctx context.Context, a, b uuid.UUID) ([]conversation.Conversation, error) {
	var conversations []conversation.Conversation

	// Both users are participants
	subQuery := r.db.Model(&conversation.Participant{}).
		Select("conversation_id").
		Where("user_id IN (?, ?)", a, b).
		Group("conversation_id").
		Having("COUNT(DISTINCT user_id) = 2")

	err := withThread(r.db.WithContext(ctx)).
		Where("id IN (?)", subQuery).
		Order("created_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *PostgresConversationRepository) GetUserConversations(ctx context.Context, userID uuid.UUID) ([]conversation.Conversation, error) {
	var conversations []conversation.Conversation

	subQuery := r.db.Model(&conversation.Participant{}).
		Select("conversation_id").
		Where("user_id = ?", userID)

	err := withThread(r.db.WithContext(ctx)).
		Where("id IN (?)", subQuery).
		Order("created_at ASC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *PostgresConversationRepository) GetUserConversationIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&conversation.Participant{}).
		Where("user_id = ?", userID).
		Order("joined_at ASC").
		Pluck("conversation_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PostgresConversationRepository) GetCommitteeConversations(ctx context.Context, committee string) ([]conversation.Conversation, error) {
	var conversations []conversation.Conversation

	subQuery := r.db.Model(&conversation.Participant{}).
		Select("participants.conversation_id").
		Joins("JOIN users ON users.id = participants.user_id").
		Where("users.committee = ?", committee)

	err := withThread(r.db.WithContext(ctx)).
		Where("id IN (?)", subQuery).
		Order("created_at ASC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}
