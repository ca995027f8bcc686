package events

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type PresenceChecker interface {
	IsOnline(ctx context.Context, userID string) (bool, error)
}

// RedisNotifier publishes frames on the user's channel so that whichever
// instance holds the connection can deliver it.
type RedisNotifier struct {
	publisher Publisher
	presence  PresenceChecker
}

// NewRedisNotifier builds a notifier. presence may be nil, in which case
// every frame is published.
func NewRedisNotifier(publisher Publisher, presence PresenceChecker) *RedisNotifier {
	return &RedisNotifier{publisher: publisher, presence: presence}
}

func (n *RedisNotifier) Notify(ctx context.Context, userID uuid.UUID, event string, payload interface{}) error {
	if n.presence != nil {
		online, err := n.presence.IsOnline(ctx, userID.String())
		if err != nil {
			return fmt.Errorf("presence lookup: %w", err)
		}
		if !online {
			return nil
		}
	}

	env, err := NewEnvelope(event, payload)
	if err != nil {
		return err
	}
	data, err := env.Bytes()
	if err != nil {
		return err
	}
	return n.publisher.Publish(ctx, UserChannel(userID), data)
}
