package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mun-chits/internal/domain/user"
	"mun-chits/internal/redis"
	"mun-chits/internal/services"
	chits_errors "mun-chits/pkg/errors"
	"mun-chits/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type tokenAuth map[string]services.Actor

func (t tokenAuth) Authenticate(_ context.Context, token string) (services.Actor, error) {
	if token == "explode" {
		return services.Actor{}, errors.New("db down")
	}
	a, ok := t[token]
	if !ok {
		return services.Actor{}, chits_errors.ErrUnauthorized
	}
	return a, nil
}

type fixedLimiter struct {
	result *redis.RateLimitResult
	err    error
	calls  []string
}

func (f *fixedLimiter) AllowMessage(_ context.Context, userID string) (*redis.RateLimitResult, error) {
	f.calls = append(f.calls, userID)
	return f.result, f.err
}

func (f *fixedLimiter) AllowAuth(_ context.Context, ip string) (*redis.RateLimitResult, error) {
	f.calls = append(f.calls, ip)
	return f.result, f.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func whoAmI(c *gin.Context) {
	actor, ok := services.ActorFromContext(c.Request.Context())
	if !ok {
		c.String(http.StatusTeapot, "no actor")
		return
	}
	c.String(http.StatusOK, actor.Username)
}

func TestAuthMiddleware(t *testing.T) {
	delegate := services.Actor{ID: uuid.New(), Username: "alice", Role: user.RoleDelegate}
	eb := services.Actor{ID: uuid.New(), Username: "chair", Role: user.RoleEB}
	auth := tokenAuth{"d": delegate, "e": eb}

	r := gin.New()
	r.GET("/me", AuthMiddleware(auth), whoAmI)
	r.GET("/eb", AuthMiddleware(auth), RequireEB(), whoAmI)

	tests := []struct {
		name   string
		path   string
		header string
		cookie string
		status int
		body   string
	}{
		{name: "bearer", path: "/me", header: "Bearer d", status: http.StatusOK, body: "alice"},
		{name: "cookie", path: "/me", cookie: "e", status: http.StatusOK, body: "chair"},
		{name: "missing", path: "/me", status: http.StatusUnauthorized},
		{name: "wrong scheme", path: "/me", header: "Basic d", status: http.StatusUnauthorized},
		{name: "unknown token", path: "/me", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "backend failure", path: "/me", header: "Bearer explode", status: http.StatusInternalServerError},
		{name: "eb route as delegate", path: "/eb", header: "Bearer d", status: http.StatusForbidden},
		{name: "eb route as eb", path: "/eb", header: "Bearer e", status: http.StatusOK, body: "chair"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "jwt", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestMessageRateLimitMiddleware(t *testing.T) {
	alice := services.Actor{ID: uuid.New(), Username: "alice"}
	withActor := func(c *gin.Context) {
		c.Request = c.Request.WithContext(services.WithActor(c.Request.Context(), alice))
		c.Next()
	}

	t.Run("denied", func(t *testing.T) {
		limiter := &fixedLimiter{result: &redis.RateLimitResult{Allowed: false, Limit: 2, ResetIn: 30 * time.Second}}
		r := gin.New()
		r.POST("/send", withActor, MessageRateLimitMiddleware(limiter, nil), whoAmI)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/send", nil))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "30", w.Header().Get("X-RateLimit-Reset"))
		assert.Contains(t, w.Body.String(), "RATE_LIMITED")
		assert.Equal(t, []string{alice.ID.String()}, limiter.calls)
	})

	t.Run("allowed", func(t *testing.T) {
		limiter := &fixedLimiter{result: &redis.RateLimitResult{Allowed: true, Limit: 2, Remaining: 1}}
		r := gin.New()
		r.POST("/send", withActor, MessageRateLimitMiddleware(limiter, nil), whoAmI)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/send", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("limiter failure lets the request through", func(t *testing.T) {
		limiter := &fixedLimiter{err: errors.New("redis down")}
		r := gin.New()
		r.POST("/send", withActor, MessageRateLimitMiddleware(limiter, nil), whoAmI)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/send", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuthRateLimitMiddleware(t *testing.T) {
	limiter := &fixedLimiter{result: &redis.RateLimitResult{Allowed: false, Limit: 1}}
	r := gin.New()
	r.POST("/login", AuthRateLimitMiddleware(limiter, nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "203.0.113.9:5555"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, []string{"203.0.113.9"}, limiter.calls)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		id, _ := c.Request.Context().Value(logger.RequestIdKey).(string)
		c.String(http.StatusOK, id)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-Id"))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
