package websocket

import (
	"context"

	"mun-chits/internal/events"
	"mun-chits/pkg/logger"

	"go.uber.org/zap"
)

// RedisBridge forwards frames published on user channels by any instance to
// the sockets held by this instance's hub.
type RedisBridge struct {
	subscriber events.Subscriber
	hub        *Hub
	log        *logger.Logger
}

func NewRedisBridge(subscriber events.Subscriber, hub *Hub, log *logger.Logger) *RedisBridge {
	if log == nil {
		log = logger.NewNop()
	}
	return &RedisBridge{subscriber: subscriber, hub: hub, log: log}
}

// Run blocks until ctx is cancelled or the subscription fails.
func (b *RedisBridge) Run(ctx context.Context) error {
	return b.subscriber.Subscribe(ctx, []string{events.ChannelPatternUser}, b.forward)
}

func (b *RedisBridge) forward(channel string, payload []byte) {
	userID, ok := events.UserIDFromChannel(channel)
	if !ok {
		b.log.Warn(context.Background(), "ignoring frame on unknown channel", zap.String("channel", channel))
		return
	}
	b.hub.SendToUser(userID, payload)
}
