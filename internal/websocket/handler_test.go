package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mun-chits/internal/services"
	chits_errors "mun-chits/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenTable map[string]services.Actor

func (t tokenTable) Authenticate(_ context.Context, token string) (services.Actor, error) {
	a, ok := t[token]
	if !ok {
		return services.Actor{}, chits_errors.ErrUnauthorized
	}
	return a, nil
}

func newWSServer(t *testing.T, hub *Hub, tokens tokenTable) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/v1/ws", NewHandler(tokens, hub, nil, nil).Connect)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws"
}

func TestHandler_ConnectAndReceive(t *testing.T) {
	hub := startHub(t, nil)
	alice := services.Actor{ID: uuid.New(), Username: "alice"}
	srv := newWSServer(t, hub, tokenTable{"good": alice})

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv)+"?token=good", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.IsConnected(alice.ID) }, time.Second, 5*time.Millisecond)
	require.True(t, hub.SendToUser(alice.ID, []byte(`{"event":"newMessage","payload":"{}"}`)))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"newMessage","payload":"{}"}`, string(msg))

	conn.Close()
	require.Eventually(t, func() bool { return !hub.IsConnected(alice.ID) }, 2*time.Second, 10*time.Millisecond)
}

func TestHandler_CookieToken(t *testing.T) {
	hub := startHub(t, nil)
	bob := services.Actor{ID: uuid.New(), Username: "bob"}
	srv := newWSServer(t, hub, tokenTable{"cookie-token": bob})

	header := http.Header{}
	header.Set("Cookie", "jwt=cookie-token")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	require.NoError(t, err)
	defer conn.Close()

	assert.Eventually(t, func() bool { return hub.IsConnected(bob.ID) }, time.Second, 5*time.Millisecond)
}

func TestHandler_RejectsMissingOrBadToken(t *testing.T) {
	hub := startHub(t, nil)
	srv := newWSServer(t, hub, tokenTable{})

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(wsURL(srv)+"?token=forged", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, hub.GetClientCount())
}
