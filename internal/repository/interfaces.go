package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mun-chits/internal/domain/conversation"
	"mun-chits/internal/domain/message"
	"mun-chits/internal/domain/user"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_repository.go -package=mocks

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetUserByUsername(ctx context.Context, username string) (user.User, error)

	// GetUsersByRoleAndCommittee returns every user holding role in committee,
	// ordered by username.
	GetUsersByRoleAndCommittee(ctx context.Context, role user.Role, committee string) ([]user.User, error)
	// GetSidebarUsers returns every DELEGATE except excludeID. An empty
	// committee disables the committee filter.
	GetSidebarUsers(ctx context.Context, excludeID uuid.UUID, committee string) ([]user.User, error)
}

type ConversationRepository interface {
	// Create stores the conversation together with its participant rows.
	Create(ctx context.Context, c *conversation.Conversation) error
	// GetByID loads participants (with users) and every message (with
	// senders) in creation order.
	GetByID(ctx context.Context, id uuid.UUID) (conversation.Conversation, error)
	// GetConversationsBetween returns the conversations whose participants
	// are exactly a and b, most recent first.
	GetConversationsBetween(ctx context.Context, a, b uuid.UUID) ([]conversation.Conversation, error)
	GetUserConversations(ctx context.Context, userID uuid.UUID) ([]conversation.Conversation, error)
	GetUserConversationIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	// GetCommitteeConversations returns conversations with at least one
	// participant from committee.
	GetCommitteeConversations(ctx context.Context, committee string) ([]conversation.Conversation, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *message.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (message.Message, error)
	// Approve moves a PENDING message to APPROVED. It returns ErrNotFound for
	// unknown ids and ErrInvalidTransition when the message is not pending.
	Approve(ctx context.Context, id, approverID uuid.UUID, score *float64, at time.Time) error
	GetPendingByCommittee(ctx context.Context, committee string) ([]message.Message, error)
}
