package handler

import (
	"context"

	"mun-chits/internal/services"
	"mun-chits/internal/views"

	"github.com/google/uuid"
)

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

type MessagingService interface {
	SendMessage(ctx context.Context, in services.SendMessageInput) (services.SentChit, error)
	GetMessages(ctx context.Context, selfID, otherUserID uuid.UUID) (views.ThreadView, error)
	GetUserForSidebar(ctx context.Context, selfID uuid.UUID, committee string) ([]views.SidebarUserView, error)
	ReplyMessage(ctx context.Context, in services.ReplyInput) (views.ReplyView, error)
	GetReceivedMessages(ctx context.Context, selfID uuid.UUID) ([]views.ConversationSummaryView[views.DirectMessageItem], error)
	GetSentConversations(ctx context.Context, selfID uuid.UUID) ([]views.ConversationSummaryView[views.SentMessageView], error)
	GetConversationFromID(ctx context.Context, conversationID, selfID uuid.UUID) ([]views.TaggedMessageView, error)
}

type ModerationService interface {
	ListPending(ctx context.Context, ebID uuid.UUID) ([]views.EBRoutedMessageView, error)
	Approve(ctx context.Context, ebID, messageID uuid.UUID, score *float64) (views.EBRoutedMessageView, error)
}

type ArchiveService interface {
	ExportCommittee(ctx context.Context, ebID uuid.UUID) (services.ArchiveResult, error)
}

type AuthService interface {
	Login(ctx context.Context, in services.LoginInput) (services.AuthResponse, error)
	Me(ctx context.Context, actor services.Actor) (services.Profile, error)
}
