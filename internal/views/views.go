// Package views holds the JSON shapes returned over HTTP and pushed over the
// realtime channel, together with the pure functions that build them from
// domain entities.
package views

import (
	"sort"
	"time"

	"mun-chits/internal/domain/conversation"
	"mun-chits/internal/domain/message"
	"mun-chits/internal/domain/user"

	"github.com/google/uuid"
)

// UserRef is the public part of a user embedded in message payloads.
type UserRef struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Portfolio string `json:"portfolio"`
}

type ParticipantView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type SidebarUserView struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Portfolio string `json:"portfolio"`
	Committee string `json:"committee"`
}

// DirectMessageItem is one message as seen by a delegate.
type DirectMessageItem struct {
	ID        string   `json:"id"`
	Body      string   `json:"body"`
	CreatedAt string   `json:"createdAt"`
	Sender    UserRef  `json:"sender"`
	IsViaEB   bool     `json:"isViaEB"`
	Score     *float64 `json:"score"`
}

// DirectMessageView is pushed to the receiver of a direct chit.
type DirectMessageView struct {
	ID       string              `json:"id"`
	Messages []DirectMessageItem `json:"messages"`
}

// EBRoutedMessageItem is one message as seen by the executive board.
type EBRoutedMessageItem struct {
	ID        string   `json:"id"`
	Body      string   `json:"body"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
	Sender    UserRef  `json:"sender"`
	SenderID  string   `json:"senderId"`
	IsViaEB   bool     `json:"isViaEB"`
	Score     *float64 `json:"score"`
	Status    string   `json:"status"`
}

// EBRoutedMessageView is pushed to every EB of the sender's committee.
type EBRoutedMessageView struct {
	ConversationID string                `json:"conversationId"`
	Messages       []EBRoutedMessageItem `json:"messages"`
	Sender         UserRef               `json:"sender"`
	Receiver       UserRef               `json:"receiver"`
}

// ReplyView is returned and pushed for replies. Receiver is only set for
// EB-routed conversations.
type ReplyView struct {
	ID             string   `json:"id"`
	Body           string   `json:"body"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
	SenderID       string   `json:"senderId"`
	ConversationID string   `json:"conversationId"`
	IsViaEB        bool     `json:"isViaEB"`
	Status         string   `json:"status"`
	Score          float64  `json:"score"`
	Sender         UserRef  `json:"sender"`
	Receiver       *UserRef `json:"receiver,omitempty"`
}

type ThreadMessage struct {
	ID             string   `json:"id"`
	Body           string   `json:"body"`
	SenderID       string   `json:"senderId"`
	ConversationID string   `json:"conversationId"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
	IsViaEB        bool     `json:"isViaEB"`
	Status         string   `json:"status"`
	Score          *float64 `json:"score"`
}

// ThreadView is the visible history between two users. An unknown pair
// yields a view with no id and no messages.
type ThreadView struct {
	ID             string          `json:"id,omitempty"`
	ParticipantIDs []string        `json:"participantIds"`
	Messages       []ThreadMessage `json:"messages"`
}

type SentMessageView struct {
	ID        string  `json:"id"`
	Body      string  `json:"body"`
	CreatedAt string  `json:"createdAt"`
	Sender    UserRef `json:"sender"`
	Status    string  `json:"status"`
}

type ConversationSummaryView[T any] struct {
	ID           string            `json:"id"`
	Participants []ParticipantView `json:"participants"`
	Messages     []T               `json:"messages"`
}

// TaggedMessageView marks messages written by the other participant.
type TaggedMessageView struct {
	ThreadMessage
	Sender  UserRef `json:"sender"`
	IsReply bool    `json:"isReply"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func scorePtr(m message.Message) *float64 {
	if !m.Score.Valid {
		return nil
	}
	s := m.Score.Float64
	return &s
}

func ToUserRef(u user.User) UserRef {
	return UserRef{
		ID:        u.ID.String(),
		Username:  u.Username,
		Portfolio: u.Portfolio,
	}
}

func ToSidebarUsers(users []user.User) []SidebarUserView {
	out := make([]SidebarUserView, len(users))
	for i, u := range users {
		out[i] = SidebarUserView{
			ID:        u.ID.String(),
			Username:  u.Username,
			Portfolio: u.Portfolio,
			Committee: u.Committee,
		}
	}
	return out
}

// ToDirectMessageItem expects m.Sender to be loaded.
func ToDirectMessageItem(m message.Message) DirectMessageItem {
	return DirectMessageItem{
		ID:        m.ID.String(),
		Body:      m.Body,
		CreatedAt: formatTime(m.CreatedAt),
		Sender:    ToUserRef(m.Sender),
		IsViaEB:   m.IsViaEB,
		Score:     scorePtr(m),
	}
}

func NewDirectMessageView(conversationID uuid.UUID, m message.Message) DirectMessageView {
	return DirectMessageView{
		ID:       conversationID.String(),
		Messages: []DirectMessageItem{ToDirectMessageItem(m)},
	}
}

func ToEBRoutedMessageItem(m message.Message) EBRoutedMessageItem {
	return EBRoutedMessageItem{
		ID:        m.ID.String(),
		Body:      m.Body,
		CreatedAt: formatTime(m.CreatedAt),
		UpdatedAt: formatTime(m.UpdatedAt),
		Sender:    ToUserRef(m.Sender),
		SenderID:  m.SenderID.String(),
		IsViaEB:   m.IsViaEB,
		Score:     scorePtr(m),
		Status:    string(m.Status),
	}
}

func NewEBRoutedMessageView(conversationID uuid.UUID, m message.Message, receiver user.User) EBRoutedMessageView {
	return EBRoutedMessageView{
		ConversationID: conversationID.String(),
		Messages:       []EBRoutedMessageItem{ToEBRoutedMessageItem(m)},
		Sender:         ToUserRef(m.Sender),
		Receiver:       ToUserRef(receiver),
	}
}

// NewReplyView builds the reply payload. receiver is nil for direct
// conversations.
func NewReplyView(m message.Message, receiver *user.User) ReplyView {
	v := ReplyView{
		ID:             m.ID.String(),
		Body:           m.Body,
		CreatedAt:      formatTime(m.CreatedAt),
		UpdatedAt:      formatTime(m.UpdatedAt),
		SenderID:       m.SenderID.String(),
		ConversationID: m.ConversationID.String(),
		IsViaEB:        m.IsViaEB,
		Status:         string(m.Status),
		Score:          m.ScoreValue(),
		Sender:         ToUserRef(m.Sender),
	}
	if receiver != nil {
		ref := ToUserRef(*receiver)
		v.Receiver = &ref
	}
	return v
}

func ToThreadMessage(m message.Message) ThreadMessage {
	return ThreadMessage{
		ID:             m.ID.String(),
		Body:           m.Body,
		SenderID:       m.SenderID.String(),
		ConversationID: m.ConversationID.String(),
		CreatedAt:      formatTime(m.CreatedAt),
		UpdatedAt:      formatTime(m.UpdatedAt),
		IsViaEB:        m.IsViaEB,
		Status:         string(m.Status),
		Score:          scorePtr(m),
	}
}

// NewThreadView returns the approved history of c. A nil conversation gives
// an empty thread.
func NewThreadView(c *conversation.Conversation) ThreadView {
	v := ThreadView{
		ParticipantIDs: []string{},
		Messages:       []ThreadMessage{},
	}
	if c == nil {
		return v
	}
	v.ID = c.ID.String()
	for _, id := range c.ParticipantIDs() {
		v.ParticipantIDs = append(v.ParticipantIDs, id.String())
	}
	for _, m := range Approved(c.Messages) {
		v.Messages = append(v.Messages, ToThreadMessage(m))
	}
	return v
}

func toParticipants(c conversation.Conversation) []ParticipantView {
	out := make([]ParticipantView, 0, len(c.Participants))
	for _, p := range c.Participants {
		out = append(out, ParticipantView{
			ID:       p.UserID.String(),
			Username: p.User.Username,
		})
	}
	return out
}

// NewReceivedSummaries lists, per conversation, the approved messages that
// selfID did not write.
func NewReceivedSummaries(convs []conversation.Conversation, selfID uuid.UUID) []ConversationSummaryView[DirectMessageItem] {
	out := make([]ConversationSummaryView[DirectMessageItem], 0, len(convs))
	for _, c := range convs {
		items := []DirectMessageItem{}
		for _, m := range Approved(c.Messages) {
			if m.SenderID == selfID {
				continue
			}
			items = append(items, ToDirectMessageItem(m))
		}
		out = append(out, ConversationSummaryView[DirectMessageItem]{
			ID:           c.ID.String(),
			Participants: toParticipants(c),
			Messages:     items,
		})
	}
	return out
}

// NewSentSummaries lists, per conversation, the approved messages selfID
// wrote. Conversations without any are dropped.
func NewSentSummaries(convs []conversation.Conversation, selfID uuid.UUID) []ConversationSummaryView[SentMessageView] {
	out := make([]ConversationSummaryView[SentMessageView], 0, len(convs))
	for _, c := range convs {
		var items []SentMessageView
		for _, m := range Approved(c.Messages) {
			if m.SenderID != selfID {
				continue
			}
			items = append(items, SentMessageView{
				ID:        m.ID.String(),
				Body:      m.Body,
				CreatedAt: formatTime(m.CreatedAt),
				Sender:    ToUserRef(m.Sender),
				Status:    string(m.Status),
			})
		}
		if len(items) == 0 {
			continue
		}
		out = append(out, ConversationSummaryView[SentMessageView]{
			ID:           c.ID.String(),
			Participants: toParticipants(c),
			Messages:     items,
		})
	}
	return out
}

// NewTaggedMessages returns the approved messages of c, flagging those not
// written by selfID as replies.
func NewTaggedMessages(c conversation.Conversation, selfID uuid.UUID) []TaggedMessageView {
	out := []TaggedMessageView{}
	for _, m := range Approved(c.Messages) {
		out = append(out, TaggedMessageView{
			ThreadMessage: ToThreadMessage(m),
			Sender:        ToUserRef(m.Sender),
			IsReply:       m.SenderID != selfID,
		})
	}
	return out
}

// Approved filters msgs down to APPROVED ones in creation order.
func Approved(msgs []message.Message) []message.Message {
	out := make([]message.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.IsApproved() {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
