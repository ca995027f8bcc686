package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mun-chits/config"
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

type MessagingService struct {
	userRepo         repository.UserRepository
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	notifier         events.Notifier
	log              *logger.Logger
	policy           string
	now              func() time.Time
}

func NewMessagingService(
	userRepo repository.UserRepository,
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	notifier events.Notifier,
	log *logger.Logger,
	policy string,
) *MessagingService {
	if log == nil {
		log = logger.NewNop()
	}
	if policy == "" {
		policy = config.ConversationPolicyReuse
	}
	return &MessagingService{
		userRepo:         userRepo,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		notifier:         notifier,
		log:              log,
		policy:           policy,
		now:              time.Now,
	}
}

type SendMessageInput struct {
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Body       string
	IsViaEB    bool
}

type ReplyInput struct {
	SenderID       uuid.UUID
	ConversationID uuid.UUID
	Body           string
}

// SentChit is the outcome of SendMessage. Exactly one of Direct and EBRouted
// is set, matching the routing mode.
type SentChit struct {
	Conversation conversation.Conversation
	Message      message.Message
	Direct       *views.DirectMessageView
	EBRouted     *views.EBRoutedMessageView
}

// View returns the payload for the caller.
func (c SentChit) View() interface{} {
	if c.EBRouted != nil {
		return c.EBRouted
	}
	return c.Direct
}

func (s *MessagingService) SendMessage(ctx context.Context, in SendMessageInput) (SentChit, error) {
	if strings.TrimSpace(in.Body) == "" {
		return SentChit{}, fmt.Errorf("%w: message body is required", chits_errors.ErrInvalidInput)
	}
	if in.SenderID == in.ReceiverID {
		return SentChit{}, fmt.Errorf("%w: cannot send a chit to yourself", chits_errors.ErrInvalidInput)
	}

	receiver, err := s.userRepo.GetUserByID(ctx, in.ReceiverID)
	if err != nil {
		return SentChit{}, notFoundAs(err, "receiver not found")
	}
	sender, err := s.userRepo.GetUserByID(ctx, in.SenderID)
	if err != nil {
		return SentChit{}, notFoundAs(err, "sender not found")
	}

	var ebs []user.User
	if in.IsViaEB {
		ebs, err = s.committeeEBs(ctx, sender.Committee)
		if err != nil {
			return SentChit{}, err
		}
	}

	conv, err := s.conversationFor(ctx, sender.ID, receiver.ID, in.IsViaEB)
	if err != nil {
		return SentChit{}, err
	}

	now := s.now()
	msg := message.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		SenderID:       sender.ID,
		Body:           in.Body,
		IsViaEB:        in.IsViaEB,
		Status:         message.StatusFor(in.IsViaEB),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.messageRepo.Create(ctx, &msg); err != nil {
		return SentChit{}, err
	}
	msg.Sender = sender

	result := SentChit{Conversation: conv, Message: msg}
	if in.IsViaEB {
		view := views.NewEBRoutedMessageView(conv.ID, msg, receiver)
		result.EBRouted = &view
		pushAll(ctx, s.notifier, s.log, userIDs(ebs), events.EventNewMessage, view)
	} else {
		view := views.NewDirectMessageView(conv.ID, msg)
		result.Direct = &view
		pushAll(ctx, s.notifier, s.log, []uuid.UUID{receiver.ID}, events.EventNewMessage, view)
	}

	s.log.Info(ctx, "chit sent",
		zap.String("message_id", msg.ID.String()),
		zap.String("conversation_id", conv.ID.String()),
		zap.Bool("is_via_eb", in.IsViaEB),
	)
	return result, nil
}

// conversationFor applies the conversation policy. Under the reuse policy the
// most recent pair conversation with the same routing mode wins; an empty
// conversation matches either mode.
func (s *MessagingService) conversationFor(ctx context.Context, senderID, receiverID uuid.UUID, isViaEB bool) (conversation.Conversation, error) {
	if s.policy == config.ConversationPolicyReuse {
		existing, err := s.conversationRepo.GetConversationsBetween(ctx, senderID, receiverID)
		if err != nil {
			return conversation.Conversation{}, err
		}
		for _, c := range existing {
			mode, ok := c.RoutingMode()
			if !ok || mode == isViaEB {
				return c, nil
			}
		}
	}

	c := conversation.New(senderID, receiverID, s.now())
	if err := s.conversationRepo.Create(ctx, &c); err != nil {
		return conversation.Conversation{}, err
	}
	return c, nil
}

func (s *MessagingService) GetMessages(ctx context.Context, selfID, otherUserID uuid.UUID) (views.ThreadView, error) {
	convs, err := s.conversationRepo.GetConversationsBetween(ctx, selfID, otherUserID)
	if err != nil {
		return views.ThreadView{}, err
	}
	if len(convs) == 0 {
		return views.NewThreadView(nil), nil
	}
	// A pair can hold one direct and one EB-routed conversation. The newest
	// one with visible history wins so pending EB chits never hide it.
	for i := range convs {
		if len(views.Approved(convs[i].Messages)) > 0 {
			return views.NewThreadView(&convs[i]), nil
		}
	}
	return views.NewThreadView(&convs[0]), nil
}

func (s *MessagingService) GetUserForSidebar(ctx context.Context, selfID uuid.UUID, committee string) ([]views.SidebarUserView, error) {
	users, err := s.userRepo.GetSidebarUsers(ctx, selfID, committee)
	if err != nil {
		return nil, err
	}
	return views.ToSidebarUsers(users), nil
}

func (s *MessagingService) ReplyMessage(ctx context.Context, in ReplyInput) (views.ReplyView, error) {
	if strings.TrimSpace(in.Body) == "" {
		return views.ReplyView{}, fmt.Errorf("%w: message body is required", chits_errors.ErrInvalidInput)
	}

	conv, err := s.conversationRepo.GetByID(ctx, in.ConversationID)
	if err != nil {
		return views.ReplyView{}, notFoundAs(err, "conversation not found")
	}
	if !conv.HasParticipant(in.SenderID) {
		return views.ReplyView{}, fmt.Errorf("%w: conversation not found", chits_errors.ErrNotFound)
	}
	isViaEB, ok := conv.RoutingMode()
	if !ok {
		return views.ReplyView{}, fmt.Errorf("%w: conversation has no messages", chits_errors.ErrNotFound)
	}

	sender, err := s.participantUser(ctx, conv, in.SenderID)
	if err != nil {
		return views.ReplyView{}, notFoundAs(err, "sender not found")
	}
	counterpart, ok := conv.Counterpart(in.SenderID)
	if !ok {
		return views.ReplyView{}, fmt.Errorf("%w: receiver not found", chits_errors.ErrNotFound)
	}
	receiver, err := s.participantUser(ctx, conv, counterpart.UserID)
	if err != nil {
		return views.ReplyView{}, notFoundAs(err, "receiver not found")
	}

	var ebs []user.User
	if isViaEB {
		ebs, err = s.committeeEBs(ctx, sender.Committee)
		if err != nil {
			return views.ReplyView{}, err
		}
	}

	now := s.now()
	msg := message.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		SenderID:       sender.ID,
		Body:           in.Body,
		IsViaEB:        isViaEB,
		Status:         message.StatusFor(isViaEB),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.messageRepo.Create(ctx, &msg); err != nil {
		return views.ReplyView{}, err
	}
	msg.Sender = sender

	var view views.ReplyView
	var recipients []uuid.UUID
	if isViaEB {
		view = views.NewReplyView(msg, &receiver)
		recipients = append(userIDs(ebs), sender.ID)
	} else {
		view = views.NewReplyView(msg, nil)
		recipients = []uuid.UUID{receiver.ID, sender.ID}
	}
	pushAll(ctx, s.notifier, s.log, recipients, events.EventReply, view)

	s.log.Info(ctx, "reply sent",
		zap.String("message_id", msg.ID.String()),
		zap.String("conversation_id", conv.ID.String()),
		zap.Bool("is_via_eb", isViaEB),
	)
	return view, nil
}

func (s *MessagingService) GetReceivedMessages(ctx context.Context, selfID uuid.UUID) ([]views.ConversationSummaryView[views.DirectMessageItem], error) {
	convs, err := s.conversationRepo.GetUserConversations(ctx, selfID)
	if err != nil {
		return nil, err
	}
	return views.NewReceivedSummaries(convs, selfID), nil
}

func (s *MessagingService) GetSentConversations(ctx context.Context, selfID uuid.UUID) ([]views.ConversationSummaryView[views.SentMessageView], error) {
	convs, err := s.conversationRepo.GetUserConversations(ctx, selfID)
	if err != nil {
		return nil, err
	}
	return views.NewSentSummaries(convs, selfID), nil
}

func (s *MessagingService) GetConversationFromID(ctx context.Context, conversationID, selfID uuid.UUID) ([]views.TaggedMessageView, error) {
	conv, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, notFoundAs(err, "conversation not found")
	}
	if !conv.HasParticipant(selfID) {
		return nil, fmt.Errorf("%w: conversation not found", chits_errors.ErrNotFound)
	}
	return views.NewTaggedMessages(conv, selfID), nil
}

// committeeEBs resolves every EB of committee. All of them receive EB-routed
// traffic.
func (s *MessagingService) committeeEBs(ctx context.Context, committee string) ([]user.User, error) {
	ebs, err := s.userRepo.GetUsersByRoleAndCommittee(ctx, user.RoleEB, committee)
	if err != nil {
		return nil, err
	}
	if len(ebs) == 0 {
		return nil, fmt.Errorf("%w: no EB found for this committee", chits_errors.ErrNotFound)
	}
	return ebs, nil
}

func (s *MessagingService) participantUser(ctx context.Context, conv conversation.Conversation, userID uuid.UUID) (user.User, error) {
	for _, p := range conv.Participants {
		if p.UserID == userID && p.User.ID == userID {
			return p.User, nil
		}
	}
	return s.userRepo.GetUserByID(ctx, userID)
}

// notFoundAs annotates ErrNotFound with msg and passes other errors through.
func notFoundAs(err error, msg string) error {
	if errors.Is(err, chits_errors.ErrNotFound) {
		return fmt.Errorf("%w: %s", chits_errors.ErrNotFound, msg)
	}
	return err
}
