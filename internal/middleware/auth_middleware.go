package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"mun-chits/internal/services"
	"mun-chits/internal/transport/httpdto"
	chits_errors "mun-chits/pkg/errors"
	"mun-chits/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (services.Actor, error)
}

// AuthMiddleware accepts a Bearer token or the jwt cookie and injects the
// actor into the request context.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		if token == "" {
			if cookie, err := c.Cookie("jwt"); err == nil {
				token = cookie
			}
		}

		actor, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			status := http.StatusUnauthorized
			if !errors.Is(err, chits_errors.ErrUnauthorized) {
				status = http.StatusInternalServerError
			}
			c.AbortWithStatusJSON(status, httpdto.NewErrorResponse(http.StatusText(status), services.ErrorCode(status)))
			return
		}

		ctx := services.WithActor(c.Request.Context(), actor)
		ctx = logger.WithUserID(ctx, actor.ID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireEB rejects callers that are not on the executive board.
func RequireEB() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := services.ActorFromContext(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
			return
		}
		if !actor.IsEB() {
			c.AbortWithStatusJSON(http.StatusForbidden, httpdto.NewErrorResponse("executive board only", "FORBIDDEN"))
			return
		}
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
