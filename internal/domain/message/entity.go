package message

import (
	"database/sql"
	"time"

	"mun-chits/internal/domain/user"

	"github.com/google/uuid"
)

// Status is the moderation state of a message.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
)

// StatusFor returns the status a new message gets for the given routing
// mode. EB-routed messages wait for moderation, direct ones are visible
// immediately.
func StatusFor(isViaEB bool) Status {
	if isViaEB {
		return StatusPending
	}
	return StatusApproved
}

// Message represents the messages table
type Message struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ConversationID uuid.UUID       `gorm:"type:uuid;not null;index:idx_messages_conversation_created,priority:1"`
	SenderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Body           string          `gorm:"type:text;not null"`
	IsViaEB        bool            `gorm:"column:is_via_eb;not null;default:false"`
	Status         Status          `gorm:"type:varchar(16);not null;index"`
	Score          sql.NullFloat64 `gorm:"column:score"`
	ApprovedBy     uuid.NullUUID   `gorm:"type:uuid"`
	ApprovedAt     sql.NullTime
	CreatedAt      time.Time `gorm:"index:idx_messages_conversation_created,priority:2"`
	UpdatedAt      time.Time

	// Relationships
	Sender user.User `gorm:"foreignKey:SenderID"`
}

func (Message) TableName() string {
	return "messages"
}

// IsApproved reports whether the message is visible to its receiver.
func (m Message) IsApproved() bool {
	return m.Status == StatusApproved
}

// ScoreValue returns the score annotation, or 0 when none was given.
func (m Message) ScoreValue() float64 {
	if m.Score.Valid {
		return m.Score.Float64
	}
	return 0
}
