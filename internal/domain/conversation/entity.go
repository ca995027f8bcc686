package conversation

import (
	"time"

	"mun-chits/internal/domain/message"
	"mun-chits/internal/domain/user"

	"github.com/google/uuid"
)

// Conversation represents the conversations table. A conversation always
// has exactly two participants.
type Conversation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	// Relationships
	Participants []Participant     `gorm:"foreignKey:ConversationID"`
	Messages     []message.Message `gorm:"foreignKey:ConversationID"`
}

// Participant represents the participants table. Position keeps the
// participant order: 0 is the user who opened the conversation.
type Participant struct {
	ConversationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_participants_user"`
	Position       int       `gorm:"not null;default:0"`
	JoinedAt       time.Time

	// Relationships
	User user.User `gorm:"foreignKey:UserID"`
}

func (Conversation) TableName() string {
	return "conversations"
}

func (Participant) TableName() string {
	return "participants"
}

// New builds a conversation between opener and other with fresh ids.
func New(openerID, otherID uuid.UUID, now time.Time) Conversation {
	id := uuid.New()
	return Conversation{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		Participants: []Participant{
			{ConversationID: id, UserID: openerID, Position: 0, JoinedAt: now},
			{ConversationID: id, UserID: otherID, Position: 1, JoinedAt: now},
		},
	}
}

// ParticipantIDs returns the participant ids in position order.
func (c Conversation) ParticipantIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(c.Participants))
	for _, p := range c.Participants {
		if p.Position >= 0 && p.Position < len(ids) {
			ids[p.Position] = p.UserID
		}
	}
	return ids
}

// HasParticipant reports whether userID takes part in the conversation.
func (c Conversation) HasParticipant(userID uuid.UUID) bool {
	for _, p := range c.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// Counterpart returns the participant that is not userID.
func (c Conversation) Counterpart(userID uuid.UUID) (Participant, bool) {
	for _, p := range c.Participants {
		if p.UserID != userID {
			return p, true
		}
	}
	return Participant{}, false
}

// RoutingMode reports whether the conversation is EB-routed. The mode is
// fixed by the first message; ok is false while the conversation is empty.
func (c Conversation) RoutingMode() (isViaEB bool, ok bool) {
	first, ok := c.FirstMessage()
	if !ok {
		return false, false
	}
	return first.IsViaEB, true
}

// FirstMessage returns the earliest message of the conversation.
func (c Conversation) FirstMessage() (message.Message, bool) {
	if len(c.Messages) == 0 {
		return message.Message{}, false
	}
	first := c.Messages[0]
	for _, m := range c.Messages[1:] {
		if m.CreatedAt.Before(first.CreatedAt) {
			first = m
		}
	}
	return first, true
}
