package websocket

import (
	"context"
	"sync"
	"time"

	"mun-chits/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PresenceTracker is told when a user's sockets come and go. SetOffline is
// called once per closed socket.
type PresenceTracker interface {
	SetOnline(ctx context.Context, userID string) error
	SetOffline(ctx context.Context, userID string) error
}

const presenceTimeout = 2 * time.Second

// Hub is the registry of live connections for this process, keyed by user.
// It implements events.Deliverer.
type Hub struct {
	mu sync.RWMutex

	// users maps a user id to every socket that user holds
	users map[uuid.UUID]map[*Client]struct{}

	// ops carries registrations and removals in call order
	ops chan hubOp

	presence PresenceTracker
	log      *logger.Logger
}

type hubOp struct {
	client   *Client
	register bool
}

// NewHub creates a hub. presence may be nil.
func NewHub(presence PresenceTracker, log *logger.Logger) *Hub {
	if log == nil {
		log = logger.NewNop()
	}
	return &Hub{
		users:    make(map[uuid.UUID]map[*Client]struct{}),
		ops:      make(chan hubOp, 256),
		presence: presence,
		log:      log,
	}
}

// Run processes registrations until ctx is cancelled, then closes every
// remaining client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case op := <-h.ops:
			if op.register {
				h.addClient(op.client)
				h.trackPresence(op.client.UserID, true)
			} else if h.removeClient(op.client) {
				h.trackPresence(op.client.UserID, false)
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.ops <- hubOp{client: client, register: true}
}

func (h *Hub) Unregister(client *Client) {
	h.ops <- hubOp{client: client}
}

// SendToUser queues frame on every socket of userID. It reports whether the
// user had at least one socket here.
func (h *Hub) SendToUser(userID uuid.UUID, frame []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := h.users[userID]
	for c := range clients {
		if !c.SendMessage(frame) {
			h.log.Warn(context.Background(), "websocket send buffer full, frame dropped",
				zap.String("user_id", userID.String()),
				zap.String("client_id", c.ID),
			)
		}
	}
	return len(clients) > 0
}

func (h *Hub) IsConnected(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID]) > 0
}

func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, clients := range h.users {
		n += len(clients)
	}
	return n
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.users[client.UserID]
	if !ok {
		clients = make(map[*Client]struct{})
		h.users[client.UserID] = clients
	}
	clients[client] = struct{}{}
}

// removeClient reports false when the client was already gone.
func (h *Hub) removeClient(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.users[client.UserID]
	if !ok {
		return false
	}
	if _, ok := clients[client]; !ok {
		return false
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.users, client.UserID)
	}
	close(client.Send)
	return true
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, clients := range h.users {
		for c := range clients {
			close(c.Send)
		}
		delete(h.users, userID)
	}
}

func (h *Hub) trackPresence(userID uuid.UUID, online bool) {
	if h.presence == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), presenceTimeout)
	defer cancel()

	var err error
	if online {
		err = h.presence.SetOnline(ctx, userID.String())
	} else {
		err = h.presence.SetOffline(ctx, userID.String())
	}
	if err != nil {
		h.log.Warn(ctx, "presence update failed",
			zap.String("user_id", userID.String()),
			zap.Bool("online", online),
			zap.Error(err),
		)
	}
}
