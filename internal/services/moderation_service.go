package services

import (
	"context"
	"fmt"
	"time"

	"mun-chits/internal/domain/conversation"
	"mun-chits/internal/domain/message"
	"mun-chits/internal/domain/user"
	"mun-chits/internal/events"
	"mun-chits/internal/repository"
	"mun-chits/internal/views"
	chits_errors "mun-chits/pkg/errors"
	"mun-chits/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ModerationService lets the executive board of a committee release
// EB-routed chits.
type ModerationService struct {
	userRepo         repository.UserRepository
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	notifier         events.Notifier
	log              *logger.Logger
	now              func() time.Time
}

func NewModerationService(
	userRepo repository.UserRepository,
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	notifier events.Notifier,
	log *logger.Logger,
) *ModerationService {
	if log == nil {
		log = logger.NewNop()
	}
	return &ModerationService{
		userRepo:         userRepo,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		notifier:         notifier,
		log:              log,
		now:              time.Now,
	}
}

// ListPending returns the pending chits of the EB's committee, oldest first.
func (s *ModerationService) ListPending(ctx context.Context, ebID uuid.UUID) ([]views.EBRoutedMessageView, error) {
	eb, err := s.requireEB(ctx, ebID)
	if err != nil {
		return nil, err
	}

	pending, err := s.messageRepo.GetPendingByCommittee(ctx, eb.Committee)
	if err != nil {
		return nil, err
	}

	convs := make(map[uuid.UUID]conversation.Conversation)
	out := make([]views.EBRoutedMessageView, 0, len(pending))
	for _, m := range pending {
		conv, ok := convs[m.ConversationID]
		if !ok {
			conv, err = s.conversationRepo.GetByID(ctx, m.ConversationID)
			if err != nil {
				return nil, err
			}
			convs[m.ConversationID] = conv
		}
		receiver, err := s.counterpartUser(ctx, conv, m.SenderID)
		if err != nil {
			return nil, err
		}
		out = append(out, views.NewEBRoutedMessageView(conv.ID, m, receiver))
	}
	return out, nil
}

// Approve releases a pending chit. A nil score leaves the score unset.
func (s *ModerationService) Approve(ctx context.Context, ebID, messageID uuid.UUID, score *float64) (views.EBRoutedMessageView, error) {
	eb, err := s.requireEB(ctx, ebID)
	if err != nil {
		return views.EBRoutedMessageView{}, err
	}

	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return views.EBRoutedMessageView{}, notFoundAs(err, "message not found")
	}
	if msg.Sender.Committee != eb.Committee {
		return views.EBRoutedMessageView{}, fmt.Errorf("%w: message belongs to another committee", chits_errors.ErrForbidden)
	}
	if msg.Status != message.StatusPending {
		return views.EBRoutedMessageView{}, fmt.Errorf("%w: message is already %s", chits_errors.ErrInvalidTransition, msg.Status)
	}

	now := s.now()
	if err := s.messageRepo.Approve(ctx, msg.ID, eb.ID, score, now); err != nil {
		return views.EBRoutedMessageView{}, err
	}
	msg.Status = message.StatusApproved
	msg.ApprovedBy = uuid.NullUUID{UUID: eb.ID, Valid: true}
	msg.ApprovedAt.Time, msg.ApprovedAt.Valid = now, true
	msg.UpdatedAt = now
	if score != nil {
		msg.Score.Float64, msg.Score.Valid = *score, true
	}

	conv, err := s.conversationRepo.GetByID(ctx, msg.ConversationID)
	if err != nil {
		return views.EBRoutedMessageView{}, err
	}
	receiver, err := s.counterpartUser(ctx, conv, msg.SenderID)
	if err != nil {
		return views.EBRoutedMessageView{}, err
	}

	// The receiver sees the chit for the first time now
	if first, ok := conv.FirstMessage(); ok && first.ID == msg.ID {
		pushAll(ctx, s.notifier, s.log, []uuid.UUID{receiver.ID}, events.EventNewMessage, views.NewDirectMessageView(conv.ID, msg))
	} else {
		pushAll(ctx, s.notifier, s.log, []uuid.UUID{receiver.ID}, events.EventReply, views.NewReplyView(msg, nil))
	}
	pushAll(ctx, s.notifier, s.log, []uuid.UUID{msg.SenderID}, events.EventReply, views.NewReplyView(msg, &receiver))

	s.log.Info(ctx, "chit approved",
		zap.String("message_id", msg.ID.String()),
		zap.String("approved_by", eb.ID.String()),
	)
	return views.NewEBRoutedMessageView(conv.ID, msg, receiver), nil
}

func (s *ModerationService) requireEB(ctx context.Context, userID uuid.UUID) (user.User, error) {
	u, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return user.User{}, notFoundAs(err, "user not found")
	}
	if !u.IsEB() {
		return user.User{}, fmt.Errorf("%w: only the executive board can moderate", chits_errors.ErrForbidden)
	}
	return u, nil
}

func (s *ModerationService) counterpartUser(ctx context.Context, conv conversation.Conversation, senderID uuid.UUID) (user.User, error) {
	p, ok := conv.Counterpart(senderID)
	if !ok {
		return user.User{}, fmt.Errorf("%w: receiver not found", chits_errors.ErrNotFound)
	}
	if p.User.ID == p.UserID {
		return p.User, nil
	}
	return s.userRepo.GetUserByID(ctx, p.UserID)
}
