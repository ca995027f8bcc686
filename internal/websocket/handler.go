package websocket

import (
	"context"
	"net/http"
	"strings"
	"time"

	"mun-chits/internal/services"
	"mun-chits/internal/transport/httpdto"
	"mun-chits/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Authenticator resolves a bearer token to the caller.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (services.Actor, error)
}

// Heartbeater refreshes presence while a socket stays open.
type Heartbeater interface {
	Heartbeat(ctx context.Context, userID string) error
}

type Handler struct {
	auth      Authenticator
	hub       *Hub
	heartbeat Heartbeater
	log       *logger.Logger
	upgrader  websocket.Upgrader
}

// NewHandler builds the /v1/ws handler. heartbeat may be nil.
func NewHandler(auth Authenticator, hub *Hub, heartbeat Heartbeater, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		auth:      auth,
		hub:       hub,
		heartbeat: heartbeat,
		log:       log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Connect authenticates with the token query parameter or the jwt cookie,
// upgrades, and keeps the socket registered until it closes.
func (h *Handler) Connect(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		if cookie, err := c.Cookie("jwt"); err == nil {
			token = cookie
		}
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	actor, err := h.auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn(c.Request.Context(), "websocket upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(conn, actor.ID)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.hub.Register(client)
	go client.WriteLoop(ctx)

	client.ReadLoop(func() { h.refreshPresence(actor.ID.String()) })

	h.hub.Unregister(client)
}

func (h *Handler) refreshPresence(userID string) {
	if h.heartbeat == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = h.heartbeat.Heartbeat(ctx, userID)
}
