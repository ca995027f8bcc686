package httpdto

// SendMessageRequest is used for POST /messages/send/:id
type SendMessageRequest struct {
	Message string `json:"message"`
	IsViaEB bool   `json:"isViaEB"`
}

// ReplyRequest is used for POST /messages/reply/:id
type ReplyRequest struct {
	Message string `json:"message"`
}

// ApproveRequest is used for POST /moderation/messages/:id/approve
type ApproveRequest struct {
	Score *float64 `json:"score,omitempty"`
}

type ConversationsResponse[T any] struct {
	Conversations []T `json:"conversations"`
}

type ThreadMessagesResponse[T any] struct {
	Messages []T `json:"messages"`
}
