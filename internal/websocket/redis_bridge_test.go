package websocket

import (
	"context"
	"testing"
	"time"

	"mun-chits/internal/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedSubscriber struct {
	patterns []string
	frames   map[string][]byte
}

func (s *scriptedSubscriber) Subscribe(_ context.Context, channels []string, handler func(channel string, payload []byte)) error {
	s.patterns = channels
	for channel, payload := range s.frames {
		handler(channel, payload)
	}
	return nil
}

func TestRedisBridge_ForwardsUserChannels(t *testing.T) {
	hub := startHub(t, nil)
	alice := uuid.New()
	client := detachedClient(alice)
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.IsConnected(alice) }, time.Second, 5*time.Millisecond)

	sub := &scriptedSubscriber{frames: map[string][]byte{
		events.UserChannel(alice): []byte(`{"event":"reply","payload":"{}"}`),
		"channel:user:not-a-uuid": []byte("junk"),
		"channel:other:1":         []byte("junk"),
	}}

	require.NoError(t, NewRedisBridge(sub, hub, nil).Run(context.Background()))

	assert.Equal(t, []string{events.ChannelPatternUser}, sub.patterns)
	require.Len(t, client.Send, 1)
	assert.JSONEq(t, `{"event":"reply","payload":"{}"}`, string(<-client.Send))
}
