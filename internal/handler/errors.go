package handler

import (
	"net/http"

	"mun-chits/internal/services"
	"mun-chits/internal/transport/httpdto"
	"mun-chits/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// writeError maps err to a status. Internal failures are logged and hidden
// from the caller.
func writeError(c *gin.Context, log *logger.Logger, err error) {
	status := services.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		if log != nil {
			log.Error(c.Request.Context(), "request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
		}
		msg = "internal server error"
	}
	c.JSON(status, httpdto.NewErrorResponse(msg, services.ErrorCode(status)))
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(msg, "INVALID_REQUEST"))
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
}

func currentActor(c *gin.Context) (services.Actor, bool) {
	actor, ok := services.ActorFromContext(c.Request.Context())
	if !ok {
		unauthorized(c)
	}
	return actor, ok
}

func parseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(value)
}
