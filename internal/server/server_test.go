package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mun-chits/config"
	"mun-chits/internal/domain/user"
	"mun-chits/internal/handler"
	"mun-chits/internal/handler/mocks"
	"mun-chits/internal/services"
	"mun-chits/internal/views"
	chits_errors "mun-chits/pkg/errors"
	"mun-chits/pkg/logger"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type staticAuth map[string]services.Actor

func (s staticAuth) Authenticate(_ context.Context, token string) (services.Actor, error) {
	if a, ok := s[token]; ok {
		return a, nil
	}
	return services.Actor{}, chits_errors.ErrUnauthorized
}

func newTestServer(t *testing.T, health func(context.Context) error) (*Server, *mocks.MockMessagingService, *mocks.MockModerationService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	msgs := mocks.NewMockMessagingService(ctrl)
	mod := mocks.NewMockModerationService(ctrl)
	archive := mocks.NewMockArchiveService(ctrl)
	auth := mocks.NewMockAuthService(ctrl)
	log := logger.NewNop()

	srv := New(&config.Config{AppMode: TestMode, AppPort: "0"}, log)
	srv.SetupRoutes(&Handlers{
		Auth:       handler.NewAuthHandler(auth, log, false),
		Messages:   handler.NewMessageHandler(msgs, log),
		Moderation: handler.NewModerationHandler(mod, archive, log),
	}, Guards{
		Auth: staticAuth{
			"delegate": {ID: uuid.New(), Username: "alice", Committee: "UNSC", Role: user.RoleDelegate},
			"eb":       {ID: uuid.New(), Username: "chair", Committee: "UNSC", Role: user.RoleEB},
		},
		HealthCheck: health,
	})
	return srv, msgs, mod
}

func get(srv *Server, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func TestServer_HealthEndpoints(t *testing.T) {
	srv, _, _ := newTestServer(t, func(context.Context) error { return nil })
	assert.Equal(t, http.StatusOK, get(srv, "/ping", "").Code)
	assert.Equal(t, http.StatusOK, get(srv, "/health", "").Code)

	down, _, _ := newTestServer(t, func(context.Context) error { return errors.New("db down") })
	w := get(down, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "UNHEALTHY")
}

func TestServer_RoutesRequireAuth(t *testing.T) {
	srv, msgs, _ := newTestServer(t, nil)

	assert.Equal(t, http.StatusUnauthorized, get(srv, "/v1/messages/users", "").Code)

	msgs.EXPECT().GetUserForSidebar(gomock.Any(), gomock.Any(), "UNSC").Return([]views.SidebarUserView{}, nil)
	assert.Equal(t, http.StatusOK, get(srv, "/v1/messages/users", "delegate").Code)
}

func TestServer_StaticRoutesWinOverUserID(t *testing.T) {
	srv, msgs, _ := newTestServer(t, nil)

	msgs.EXPECT().GetReceivedMessages(gomock.Any(), gomock.Any()).Return(nil, nil)
	assert.Equal(t, http.StatusOK, get(srv, "/v1/messages/received", "delegate").Code)

	other := uuid.New()
	msgs.EXPECT().GetMessages(gomock.Any(), gomock.Any(), other).Return(views.ThreadView{}, nil)
	assert.Equal(t, http.StatusOK, get(srv, "/v1/messages/"+other.String(), "delegate").Code)
}

func TestServer_ModerationIsEBOnly(t *testing.T) {
	srv, _, mod := newTestServer(t, nil)

	assert.Equal(t, http.StatusForbidden, get(srv, "/v1/moderation/pending", "delegate").Code)

	mod.EXPECT().ListPending(gomock.Any(), gomock.Any()).Return([]views.EBRoutedMessageView{}, nil)
	assert.Equal(t, http.StatusOK, get(srv, "/v1/moderation/pending", "eb").Code)
}
