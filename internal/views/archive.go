package views

import (
	"time"

	"mun-chits/internal/domain/conversation"
)

type ArchivedMessage struct {
	ThreadMessage
	Sender     UserRef `json:"sender"`
	ApprovedBy string  `json:"approvedBy,omitempty"`
	ApprovedAt string  `json:"approvedAt,omitempty"`
}

type ArchivedConversation struct {
	ID           string            `json:"id"`
	Participants []ParticipantView `json:"participants"`
	Messages     []ArchivedMessage `json:"messages"`
}

// ArchiveDocument is the JSON document written for a committee export.
type ArchiveDocument struct {
	Committee     string                 `json:"committee"`
	ExportedAt    string                 `json:"exportedAt"`
	MessageCount  int                    `json:"messageCount"`
	Conversations []ArchivedConversation `json:"conversations"`
}

// NewArchiveDocument keeps only approved messages and skips conversations
// that have none.
func NewArchiveDocument(committee string, convs []conversation.Conversation, exportedAt time.Time) ArchiveDocument {
	doc := ArchiveDocument{
		Committee:     committee,
		ExportedAt:    formatTime(exportedAt),
		Conversations: []ArchivedConversation{},
	}
	for _, c := range convs {
		approved := Approved(c.Messages)
		if len(approved) == 0 {
			continue
		}
		ac := ArchivedConversation{
			ID:           c.ID.String(),
			Participants: toParticipants(c),
			Messages:     make([]ArchivedMessage, 0, len(approved)),
		}
		for _, m := range approved {
			am := ArchivedMessage{
				ThreadMessage: ToThreadMessage(m),
				Sender:        ToUserRef(m.Sender),
			}
			if m.ApprovedBy.Valid {
				am.ApprovedBy = m.ApprovedBy.UUID.String()
			}
			if m.ApprovedAt.Valid {
				am.ApprovedAt = formatTime(m.ApprovedAt.Time)
			}
			ac.Messages = append(ac.Messages, am)
		}
		doc.MessageCount += len(ac.Messages)
		doc.Conversations = append(doc.Conversations, ac)
	}
	return doc
}
