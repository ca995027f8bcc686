package views

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"mun-chits/internal/domain/conversation"
	"mun-chits/internal/domain/message"
	"mun-chits/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	alice, bob user.User
	conv       conversation.Conversation
	base       time.Time
}

func newFixture() fixture {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	alice := user.User{ID: uuid.New(), Username: "alice", Portfolio: "France", Committee: "UNSC", Role: user.RoleDelegate}
	bob := user.User{ID: uuid.New(), Username: "bob", Portfolio: "Chile", Committee: "UNSC", Role: user.RoleDelegate}
	conv := conversation.New(alice.ID, bob.ID, base)
	conv.Participants[0].User = alice
	conv.Participants[1].User = bob
	return fixture{alice: alice, bob: bob, conv: conv, base: base}
}

func (f fixture) msg(sender user.User, body string, status message.Status, offset time.Duration) message.Message {
	return message.Message{
		ID:             uuid.New(),
		ConversationID: f.conv.ID,
		SenderID:       sender.ID,
		Sender:         sender,
		Body:           body,
		IsViaEB:        status == message.StatusPending,
		Status:         status,
		CreatedAt:      f.base.Add(offset),
		UpdatedAt:      f.base.Add(offset),
	}
}

func TestDirectMessageView_JSONShape(t *testing.T) {
	f := newFixture()
	m := f.msg(f.alice, "hi", message.StatusApproved, 0)

	raw, err := json.Marshal(NewDirectMessageView(f.conv.ID, m))
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, f.conv.ID.String(), got["id"])

	msgs := got["messages"].([]interface{})
	require.Len(t, msgs, 1)
	first := msgs[0].(map[string]interface{})
	assert.Equal(t, "hi", first["body"])
	assert.Equal(t, false, first["isViaEB"])
	assert.Nil(t, first["score"])
	assert.Equal(t, "alice", first["sender"].(map[string]interface{})["username"])
	assert.NotContains(t, first, "status")
}

func TestEBRoutedMessageView(t *testing.T) {
	f := newFixture()
	m := f.msg(f.alice, "via eb", message.StatusPending, 0)

	v := NewEBRoutedMessageView(f.conv.ID, m, f.bob)

	assert.Equal(t, f.conv.ID.String(), v.ConversationID)
	assert.Equal(t, "alice", v.Sender.Username)
	assert.Equal(t, "bob", v.Receiver.Username)
	require.Len(t, v.Messages, 1)
	assert.Equal(t, "PENDING", v.Messages[0].Status)
	assert.Equal(t, f.alice.ID.String(), v.Messages[0].SenderID)
}

func TestReplyView_ScoreDefaultsToZero(t *testing.T) {
	f := newFixture()
	m := f.msg(f.bob, "ok", message.StatusApproved, 0)

	v := NewReplyView(m, nil)
	assert.Equal(t, float64(0), v.Score)
	assert.Nil(t, v.Receiver)

	m.Score = sql.NullFloat64{Float64: 4, Valid: true}
	v = NewReplyView(m, &f.alice)
	assert.Equal(t, float64(4), v.Score)
	require.NotNil(t, v.Receiver)
	assert.Equal(t, f.alice.ID.String(), v.Receiver.ID)
}

func TestNewThreadView(t *testing.T) {
	t.Run("nil conversation gives empty thread", func(t *testing.T) {
		v := NewThreadView(nil)
		assert.Empty(t, v.ID)
		assert.NotNil(t, v.Messages)
		assert.Empty(t, v.Messages)
	})

	t.Run("only approved messages in ascending order", func(t *testing.T) {
		f := newFixture()
		late := f.msg(f.bob, "late", message.StatusApproved, 2*time.Minute)
		pending := f.msg(f.alice, "pending", message.StatusPending, time.Minute)
		early := f.msg(f.alice, "early", message.StatusApproved, 0)
		f.conv.Messages = []message.Message{late, pending, early}

		v := NewThreadView(&f.conv)

		assert.Equal(t, []string{f.alice.ID.String(), f.bob.ID.String()}, v.ParticipantIDs)
		require.Len(t, v.Messages, 2)
		assert.Equal(t, "early", v.Messages[0].Body)
		assert.Equal(t, "late", v.Messages[1].Body)
	})
}

func TestReceivedAndSentSummaries(t *testing.T) {
	f := newFixture()
	fromAlice := f.msg(f.alice, "from alice", message.StatusApproved, 0)
	fromBob := f.msg(f.bob, "from bob", message.StatusApproved, time.Minute)
	pendingFromBob := f.msg(f.bob, "pending", message.StatusPending, 2*time.Minute)
	f.conv.Messages = []message.Message{fromAlice, fromBob, pendingFromBob}

	empty := conversation.New(f.alice.ID, f.bob.ID, f.base)

	convs := []conversation.Conversation{f.conv, empty}

	received := NewReceivedSummaries(convs, f.alice.ID)
	require.Len(t, received, 2)
	require.Len(t, received[0].Messages, 1)
	assert.Equal(t, "from bob", received[0].Messages[0].Body)
	assert.Empty(t, received[1].Messages)
	assert.Equal(t, "alice", received[0].Participants[0].Username)

	sent := NewSentSummaries(convs, f.alice.ID)
	require.Len(t, sent, 1, "conversations without sent messages are dropped")
	require.Len(t, sent[0].Messages, 1)
	assert.Equal(t, "from alice", sent[0].Messages[0].Body)
	assert.Equal(t, "APPROVED", sent[0].Messages[0].Status)

	sentByBob := NewSentSummaries(convs, f.bob.ID)
	require.Len(t, sentByBob, 1)
	assert.Len(t, sentByBob[0].Messages, 1, "pending messages stay hidden")
}

func TestNewTaggedMessages(t *testing.T) {
	f := newFixture()
	f.conv.Messages = []message.Message{
		f.msg(f.alice, "question", message.StatusApproved, 0),
		f.msg(f.bob, "answer", message.StatusApproved, time.Minute),
		f.msg(f.bob, "pending", message.StatusPending, 2*time.Minute),
	}

	got := NewTaggedMessages(f.conv, f.alice.ID)

	require.Len(t, got, 2)
	assert.False(t, got[0].IsReply)
	assert.True(t, got[1].IsReply)
	assert.Equal(t, "bob", got[1].Sender.Username)
}

func TestToSidebarUsers(t *testing.T) {
	f := newFixture()
	got := ToSidebarUsers([]user.User{f.bob})
	require.Len(t, got, 1)
	assert.Equal(t, SidebarUserView{
		ID:        f.bob.ID.String(),
		Username:  "bob",
		Portfolio: "Chile",
		Committee: "UNSC",
	}, got[0])
}

func TestNewArchiveDocument(t *testing.T) {
	f := newFixture()
	approved := f.msg(f.alice, "kept", message.StatusApproved, 0)
	approved.ApprovedBy = uuid.NullUUID{UUID: uuid.New(), Valid: true}
	approved.ApprovedAt = sql.NullTime{Time: f.base, Valid: true}
	f.conv.Messages = []message.Message{approved, f.msg(f.bob, "hidden", message.StatusPending, time.Minute)}
	empty := conversation.New(f.alice.ID, f.bob.ID, f.base)

	doc := NewArchiveDocument("UNSC", []conversation.Conversation{f.conv, empty}, f.base)

	assert.Equal(t, "UNSC", doc.Committee)
	assert.Equal(t, 1, doc.MessageCount)
	require.Len(t, doc.Conversations, 1)
	require.Len(t, doc.Conversations[0].Messages, 1)
	assert.Equal(t, approved.ApprovedBy.UUID.String(), doc.Conversations[0].Messages[0].ApprovedBy)
}
