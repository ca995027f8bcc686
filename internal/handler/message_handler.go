package handler

import (
	"net/http"

	"mun-chits/internal/services"
	"mun-chits/internal/transport/httpdto"
	"mun-chits/internal/views"
	"mun-chits/pkg/logger"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	service MessagingService
	log     *logger.Logger
}

func NewMessageHandler(service MessagingService, log *logger.Logger) *MessageHandler {
	return &MessageHandler{service: service, log: log}
}

// Send handles POST /messages/send/:id where id is the receiver.
func (h *MessageHandler) Send(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	receiverID, err := parseUUID(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid receiver id")
		return
	}
	var req httpdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}

	sent, err := h.service.SendMessage(c.Request.Context(), services.SendMessageInput{
		SenderID:   actor.ID,
		ReceiverID: receiverID,
		Body:       req.Message,
		IsViaEB:    req.IsViaEB,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewMessageResponse("Message sent successfully", sent.View()))
}

// Thread handles GET /messages/:id where id is the other user.
func (h *MessageHandler) Thread(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	otherID, err := parseUUID(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid user id")
		return
	}

	thread, err := h.service.GetMessages(c.Request.Context(), actor.ID, otherID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(thread))
}

func (h *MessageHandler) Sidebar(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	users, err := h.service.GetUserForSidebar(c.Request.Context(), actor.ID, actor.Committee)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(users))
}

// Reply handles POST /messages/reply/:id where id is the conversation.
func (h *MessageHandler) Reply(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	conversationID, err := parseUUID(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid conversation id")
		return
	}
	var req httpdto.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}

	reply, err := h.service.ReplyMessage(c.Request.Context(), services.ReplyInput{
		SenderID:       actor.ID,
		ConversationID: conversationID,
		Body:           req.Message,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewMessageResponse("Message sent successfully", reply))
}

func (h *MessageHandler) Received(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	convs, err := h.service.GetReceivedMessages(c.Request.Context(), actor.ID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ConversationsResponse[views.ConversationSummaryView[views.DirectMessageItem]]{
		Conversations: convs,
	}))
}

func (h *MessageHandler) Sent(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	convs, err := h.service.GetSentConversations(c.Request.Context(), actor.ID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ConversationsResponse[views.ConversationSummaryView[views.SentMessageView]]{
		Conversations: convs,
	}))
}

// Chit handles GET /messages/chit/:id where id is the conversation.
func (h *MessageHandler) Chit(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	conversationID, err := parseUUID(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid conversation id")
		return
	}

	msgs, err := h.service.GetConversationFromID(c.Request.Context(), conversationID, actor.ID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ThreadMessagesResponse[views.TaggedMessageView]{
		Messages: msgs,
	}))
}
