package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mun-chits/internal/domain/user"
	"mun-chits/internal/handler/mocks"
	"mun-chits/internal/services"
	"mun-chits/internal/views"
	chits_errors "mun-chits/pkg/errors"
	"mun-chits/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	delegate = services.Actor{ID: uuid.New(), Username: "alice", Portfolio: "France", Committee: "UNSC", Role: user.RoleDelegate}
	chair    = services.Actor{ID: uuid.New(), Username: "chair", Portfolio: "Chair", Committee: "UNSC", Role: user.RoleEB}
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
}

func asActor(a *services.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if a != nil {
			c.Request = c.Request.WithContext(services.WithActor(c.Request.Context(), *a))
		}
		c.Next()
	}
}

func newRouter(actor *services.Actor, msgs MessagingService, mod ModerationService, archive ArchiveService, auth AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	log := logger.NewNop()

	if auth != nil {
		ah := NewAuthHandler(auth, log, false)
		r.POST("/v1/auth/login", ah.Login)
		r.POST("/v1/auth/logout", ah.Logout)
		r.GET("/v1/auth/me", asActor(actor), ah.Me)
	}

	g := r.Group("/v1", asActor(actor))
	if msgs != nil {
		mh := NewMessageHandler(msgs, log)
		g.GET("/messages/users", mh.Sidebar)
		g.GET("/messages/received", mh.Received)
		g.GET("/messages/sent", mh.Sent)
		g.GET("/messages/chit/:id", mh.Chit)
		g.GET("/messages/:id", mh.Thread)
		g.POST("/messages/send/:id", mh.Send)
		g.POST("/messages/reply/:id", mh.Reply)
	}
	if mod != nil || archive != nil {
		modh := NewModerationHandler(mod, archive, log)
		g.GET("/moderation/pending", modh.Pending)
		g.POST("/moderation/messages/:id/approve", modh.Approve)
		g.POST("/moderation/archive", modh.Archive)
	}
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestMessageHandler_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMessagingService(ctrl)
	r := newRouter(&delegate, svc, nil, nil, nil)
	receiver := uuid.New()

	t.Run("eb routed send returns the moderation view", func(t *testing.T) {
		view := &views.EBRoutedMessageView{ConversationID: "c1"}
		svc.EXPECT().SendMessage(gomock.Any(), services.SendMessageInput{
			SenderID: delegate.ID, ReceiverID: receiver, Body: "hello", IsViaEB: true,
		}).Return(services.SentChit{EBRouted: view}, nil)

		w, env := do(t, r, http.MethodPost, "/v1/messages/send/"+receiver.String(), map[string]interface{}{"message": "hello", "isViaEB": true})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, env.Success)
		assert.Equal(t, "Message sent successfully", env.Message)
		assert.Contains(t, string(env.Data), `"conversationId":"c1"`)
	})

	t.Run("service errors map to status", func(t *testing.T) {
		svc.EXPECT().SendMessage(gomock.Any(), gomock.Any()).Return(services.SentChit{}, chits_errors.ErrNotFound)

		w, env := do(t, r, http.MethodPost, "/v1/messages/send/"+receiver.String(), map[string]string{"message": "x"})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, env.Success)
		assert.Equal(t, "NOT_FOUND", env.Code)
	})

	t.Run("bad receiver id", func(t *testing.T) {
		w, env := do(t, r, http.MethodPost, "/v1/messages/send/not-a-uuid", map[string]string{"message": "x"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_REQUEST", env.Code)
	})
}

func TestMessageHandler_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newRouter(nil, mocks.NewMockMessagingService(ctrl), nil, nil, nil)

	w, env := do(t, r, http.MethodGet, "/v1/messages/users", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", env.Code)
}

func TestMessageHandler_Reads(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMessagingService(ctrl)
	r := newRouter(&delegate, svc, nil, nil, nil)
	other := uuid.New()
	convID := uuid.New()

	svc.EXPECT().GetUserForSidebar(gomock.Any(), delegate.ID, "UNSC").
		Return([]views.SidebarUserView{{ID: "u2", Username: "bob"}}, nil)
	w, env := do(t, r, http.MethodGet, "/v1/messages/users", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"bob"`)

	svc.EXPECT().GetMessages(gomock.Any(), delegate.ID, other).
		Return(views.ThreadView{ParticipantIDs: []string{}, Messages: []views.ThreadMessage{}}, nil)
	w, env = do(t, r, http.MethodGet, "/v1/messages/"+other.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"participantIds":[],"messages":[]}`, string(env.Data))

	svc.EXPECT().GetReceivedMessages(gomock.Any(), delegate.ID).
		Return([]views.ConversationSummaryView[views.DirectMessageItem]{}, nil)
	w, env = do(t, r, http.MethodGet, "/v1/messages/received", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"conversations":[]}`, string(env.Data))

	svc.EXPECT().GetSentConversations(gomock.Any(), delegate.ID).
		Return([]views.ConversationSummaryView[views.SentMessageView]{{ID: convID.String()}}, nil)
	w, env = do(t, r, http.MethodGet, "/v1/messages/sent", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), convID.String())

	svc.EXPECT().GetConversationFromID(gomock.Any(), convID, delegate.ID).
		Return(nil, chits_errors.ErrNotFound)
	w, _ = do(t, r, http.MethodGet, "/v1/messages/chit/"+convID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMessageHandler_Reply(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMessagingService(ctrl)
	r := newRouter(&delegate, svc, nil, nil, nil)
	convID := uuid.New()

	svc.EXPECT().ReplyMessage(gomock.Any(), services.ReplyInput{
		SenderID: delegate.ID, ConversationID: convID, Body: "agreed",
	}).Return(views.ReplyView{ID: "m2", Body: "agreed"}, nil)

	w, env := do(t, r, http.MethodPost, "/v1/messages/reply/"+convID.String(), map[string]string{"message": "agreed"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, string(env.Data), `"agreed"`)

	svc.EXPECT().ReplyMessage(gomock.Any(), gomock.Any()).Return(views.ReplyView{}, assert.AnError)
	w, env = do(t, r, http.MethodPost, "/v1/messages/reply/"+convID.String(), map[string]string{"message": "agreed"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", env.Message)
}

func TestModerationHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	mod := mocks.NewMockModerationService(ctrl)
	archive := mocks.NewMockArchiveService(ctrl)
	r := newRouter(&chair, nil, mod, archive, nil)
	msgID := uuid.New()

	t.Run("pending", func(t *testing.T) {
		mod.EXPECT().ListPending(gomock.Any(), chair.ID).Return([]views.EBRoutedMessageView{{ConversationID: "c1"}}, nil)

		w, env := do(t, r, http.MethodGet, "/v1/moderation/pending", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(env.Data), `"c1"`)
	})

	t.Run("approve with score", func(t *testing.T) {
		score := 8.5
		mod.EXPECT().Approve(gomock.Any(), chair.ID, msgID, &score).Return(views.EBRoutedMessageView{ConversationID: "c1"}, nil)

		w, _ := do(t, r, http.MethodPost, "/v1/moderation/messages/"+msgID.String()+"/approve", map[string]float64{"score": 8.5})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("approve without body", func(t *testing.T) {
		mod.EXPECT().Approve(gomock.Any(), chair.ID, msgID, gomock.Nil()).Return(views.EBRoutedMessageView{}, chits_errors.ErrInvalidTransition)

		w, env := do(t, r, http.MethodPost, "/v1/moderation/messages/"+msgID.String()+"/approve", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "CONFLICT", env.Code)
	})

	t.Run("archive disabled", func(t *testing.T) {
		archive.EXPECT().ExportCommittee(gomock.Any(), chair.ID).Return(services.ArchiveResult{}, chits_errors.ErrServiceUnavailable)

		w, env := do(t, r, http.MethodPost, "/v1/moderation/archive", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "SERVICE_UNAVAILABLE", env.Code)
	})

	t.Run("archive", func(t *testing.T) {
		archive.EXPECT().ExportCommittee(gomock.Any(), chair.ID).Return(services.ArchiveResult{Key: "archives/UNSC/x.json", URL: "https://s3/x"}, nil)

		w, env := do(t, r, http.MethodPost, "/v1/moderation/archive", nil)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, string(env.Data), "archives/UNSC/x.json")
	})
}

func TestAuthHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	auth := mocks.NewMockAuthService(ctrl)
	r := newRouter(&delegate, nil, nil, nil, auth)

	t.Run("login sets cookie", func(t *testing.T) {
		auth.EXPECT().Login(gomock.Any(), services.LoginInput{Username: "alice", Password: "pw"}).
			Return(services.AuthResponse{AccessToken: "tok", ExpiresIn: 3600, User: delegate}, nil)

		w, env := do(t, r, http.MethodPost, "/v1/auth/login", map[string]string{"username": "alice", "password": "pw"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(env.Data), `"tok"`)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, CookieName, cookies[0].Name)
		assert.Equal(t, "tok", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("bad credentials", func(t *testing.T) {
		auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(services.AuthResponse{}, chits_errors.ErrUnauthorized)

		w, _ := do(t, r, http.MethodPost, "/v1/auth/login", map[string]string{"username": "alice", "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		w, _ := do(t, r, http.MethodPost, "/v1/auth/login", map[string]string{"username": "alice"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("me", func(t *testing.T) {
		auth.EXPECT().Me(gomock.Any(), delegate).Return(services.Profile{Actor: delegate, ConversationIDs: []uuid.UUID{}}, nil)

		w, env := do(t, r, http.MethodGet, "/v1/auth/me", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(env.Data), `"conversationIds":[]`)
	})

	t.Run("logout clears cookie", func(t *testing.T) {
		w, _ := do(t, r, http.MethodPost, "/v1/auth/logout", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "", cookies[0].Value)
	})
}
