package websocket

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPresence struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPresence) SetOnline(_ context.Context, userID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, "online:"+userID)
	return nil
}

func (p *recordingPresence) SetOffline(_ context.Context, userID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, "offline:"+userID)
	return nil
}

func (p *recordingPresence) snapshot() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

func startHub(t *testing.T, presence PresenceTracker) *Hub {
	t.Helper()
	hub := NewHub(presence, nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func detachedClient(userID uuid.UUID) *Client {
	return &Client{ID: uuid.NewString(), UserID: userID, Send: make(chan []byte, 4)}
}

func TestHub_DeliversOnlyToTargetUser(t *testing.T) {
	hub := startHub(t, nil)
	alice, bob := uuid.New(), uuid.New()

	aliceTab1 := detachedClient(alice)
	aliceTab2 := detachedClient(alice)
	bobTab := detachedClient(bob)
	hub.Register(aliceTab1)
	hub.Register(aliceTab2)
	hub.Register(bobTab)
	require.Eventually(t, func() bool { return hub.GetClientCount() == 3 }, time.Second, 5*time.Millisecond)

	delivered := hub.SendToUser(alice, []byte("frame"))

	assert.True(t, delivered)
	assert.Equal(t, []byte("frame"), <-aliceTab1.Send)
	assert.Equal(t, []byte("frame"), <-aliceTab2.Send)
	assert.Empty(t, bobTab.Send)
}

func TestHub_SkipsUnknownUser(t *testing.T) {
	hub := startHub(t, nil)

	assert.False(t, hub.SendToUser(uuid.New(), []byte("frame")))
}

func TestHub_UnregisterClosesClientAndTracksPresence(t *testing.T) {
	presence := &recordingPresence{}
	hub := startHub(t, presence)
	alice := uuid.New()

	client := detachedClient(alice)
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.IsConnected(alice) }, time.Second, 5*time.Millisecond)

	hub.Unregister(client)
	require.Eventually(t, func() bool { return !hub.IsConnected(alice) }, time.Second, 5*time.Millisecond)

	_, open := <-client.Send
	assert.False(t, open)
	assert.False(t, hub.SendToUser(alice, []byte("late")))

	// a second unregister of the same socket is ignored
	hub.Unregister(client)
	require.Eventually(t, func() bool {
		return assert.ObjectsAreEqual([]string{"online:" + alice.String(), "offline:" + alice.String()}, presence.snapshot())
	}, time.Second, 5*time.Millisecond)
}

func TestHub_ImmediateCloseIsNotLeaked(t *testing.T) {
	presence := &recordingPresence{}
	hub := NewHub(presence, nil)
	alice := uuid.New()

	// both operations are queued before the hub loop sees either
	client := detachedClient(alice)
	hub.Register(client)
	hub.Unregister(client)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	want := []string{"online:" + alice.String(), "offline:" + alice.String()}
	require.Eventually(t, func() bool {
		return assert.ObjectsAreEqual(want, presence.snapshot())
	}, time.Second, 5*time.Millisecond)
	assert.False(t, hub.IsConnected(alice))
	assert.Zero(t, hub.GetClientCount())
	_, open := <-client.Send
	assert.False(t, open)
}

func TestHub_FullBufferDropsFrame(t *testing.T) {
	hub := startHub(t, nil)
	alice := uuid.New()
	client := &Client{ID: "c1", UserID: alice, Send: make(chan []byte, 1)}
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.IsConnected(alice) }, time.Second, 5*time.Millisecond)

	assert.True(t, hub.SendToUser(alice, []byte("one")))
	assert.True(t, hub.SendToUser(alice, []byte("two")))
	assert.Equal(t, []byte("one"), <-client.Send)
	assert.Empty(t, client.Send)
}
