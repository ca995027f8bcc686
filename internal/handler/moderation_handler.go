package handler

import (
	"errors"
	"io"
	"net/http"

	"mun-chits/internal/transport/httpdto"
	"mun-chits/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	moderation ModerationService
	archive    ArchiveService
	log        *logger.Logger
}

func NewModerationHandler(moderation ModerationService, archive ArchiveService, log *logger.Logger) *ModerationHandler {
	return &ModerationHandler{moderation: moderation, archive: archive, log: log}
}

func (h *ModerationHandler) Pending(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	pending, err := h.moderation.ListPending(c.Request.Context(), actor.ID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(pending))
}

// Approve handles POST /moderation/messages/:id/approve. The body is
// optional.
func (h *ModerationHandler) Approve(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	messageID, err := parseUUID(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid message id")
		return
	}
	var req httpdto.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "invalid request")
		return
	}

	approved, err := h.moderation.Approve(c.Request.Context(), actor.ID, messageID, req.Score)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewMessageResponse("Message approved", approved))
}

func (h *ModerationHandler) Archive(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	res, err := h.archive.ExportCommittee(c.Request.Context(), actor.ID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(res))
}
