package middleware

import (
	"context"
	"net/http"
	"strconv"

	"mun-chits/internal/redis"
	"mun-chits/internal/services"
	"mun-chits/internal/transport/httpdto"
	"mun-chits/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MessageLimiter interface {
	AllowMessage(ctx context.Context, userID string) (*redis.RateLimitResult, error)
}

type AuthLimiter interface {
	AllowAuth(ctx context.Context, ip string) (*redis.RateLimitResult, error)
}

// AuthRateLimitMiddleware limits login attempts per client IP. A limiter
// failure lets the request through.
func AuthRateLimitMiddleware(limiter AuthLimiter, l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := limiter.AllowAuth(c.Request.Context(), c.ClientIP())
		if !admit(c, l, result, err, "too many login attempts") {
			return
		}
		c.Next()
	}
}

// MessageRateLimitMiddleware limits sends and replies per user. It must run
// after AuthMiddleware.
func MessageRateLimitMiddleware(limiter MessageLimiter, l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := services.UserIDFromContext(c.Request.Context())
		if !ok {
			c.Next()
			return
		}

		result, err := limiter.AllowMessage(c.Request.Context(), userID.String())
		if !admit(c, l, result, err, "message rate limit exceeded") {
			return
		}
		c.Next()
	}
}

func admit(c *gin.Context, l *logger.Logger, result *redis.RateLimitResult, err error, deniedMsg string) bool {
	if err != nil {
		if l != nil {
			l.Warn(c.Request.Context(), "rate limiter unavailable", zap.Error(err))
		}
		return true
	}

	setRateLimitHeaders(c, result)
	if !result.Allowed {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, httpdto.NewErrorResponse(deniedMsg, "RATE_LIMITED"))
		return false
	}
	return true
}

func setRateLimitHeaders(c *gin.Context, result *redis.RateLimitResult) {
	if result.Limit <= 0 {
		return
	}
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(int64(result.ResetIn.Seconds()), 10))
}
