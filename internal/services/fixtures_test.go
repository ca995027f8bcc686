package services

import (
	"time"

	"mun-chits/internal/domain/conversation"
	"mun-chits/internal/domain/message"
	"mun-chits/internal/domain/user"

	"github.com/google/uuid"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newUser(name, committee string, role user.Role) user.User {
	return user.User{
		ID:        uuid.New(),
		Username:  name,
		Portfolio: name + " portfolio",
		Committee: committee,
		Role:      role,
	}
}

type cast struct {
	alice, bob, eb1, eb2, otherEB user.User
}

func newCast() cast {
	return cast{
		alice:   newUser("alice", "UNSC", user.RoleDelegate),
		bob:     newUser("bob", "UNSC", user.RoleDelegate),
		eb1:     newUser("eb-one", "UNSC", user.RoleEB),
		eb2:     newUser("eb-two", "UNSC", user.RoleEB),
		otherEB: newUser("eb-who", "WHO", user.RoleEB),
	}
}

func chit(sender user.User, body string, isViaEB bool, status message.Status, offset time.Duration) message.Message {
	at := fixedNow.Add(-time.Hour).Add(offset)
	return message.Message{
		ID:        uuid.New(),
		SenderID:  sender.ID,
		Sender:    sender,
		Body:      body,
		IsViaEB:   isViaEB,
		Status:    status,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func conversationOf(opener, other user.User, msgs ...message.Message) conversation.Conversation {
	c := conversation.New(opener.ID, other.ID, fixedNow.Add(-2*time.Hour))
	c.Participants[0].User = opener
	c.Participants[1].User = other
	for i := range msgs {
		msgs[i].ConversationID = c.ID
	}
	c.Messages = msgs
	return c
}
