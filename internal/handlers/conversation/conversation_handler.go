// internal/handlers/conversation/conversation_handler.go
package conversation

import (
	"net/http"
	"strconv"

	"homescout-service/internal/domain/conversation"
	"homescout-service/internal/middleware"
	xerrors "homescout-service/internal/pkg/errors"
	"homescout-service/internal/pkg/response"
	service "homescout-service/internal/service/conversation"

	"github.com/gin-gonic/gin"
)

type ConversationHandler struct {
	conversationService *service.ConversationService
}

func NewConversationHandler(conversationService *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService}
}

// Start opens a thread with a realtor. POST /conversations
func (h *ConversationHandler) Start(c *gin.Context) {
	var req conversation.StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	conv, err := h.conversationService.Start(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondConversationErr(c, err, "failed to start conversation")
		return
	}

	response.Success(c, http.StatusCreated, "conversation started", conv)
}

// List returns the caller's threads. GET /conversations
func (h *ConversationHandler) List(c *gin.Context) {
	conversations, err := h.conversationService.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list conversations", err)
		return
	}

	response.Success(c, http.StatusOK, "conversations", conversations)
}

// Messages returns a thread's messages. GET /conversations/:id/messages
func (h *ConversationHandler) Messages(c *gin.Context) {
	id, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	messages, err := h.conversationService.Messages(c.Request.Context(), middleware.GetUserID(c), id, limit)
	if err != nil {
		respondConversationErr(c, err, "failed to list messages")
		return
	}

	response.Success(c, http.StatusOK, "messages", messages)
}

// Send posts a message to a thread. POST /conversations/:id/messages
func (h *ConversationHandler) Send(c *gin.Context) {
	id, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req conversation.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	m, err := h.conversationService.Send(c.Request.Context(), middleware.GetUserID(c), id, &req)
	if err != nil {
		respondConversationErr(c, err, "failed to send message")
		return
	}

	response.Success(c, http.StatusCreated, "message sent", m)
}

func respondConversationErr(c *gin.Context, err error, fallback string) {
	switch {
	case xerrors.Is(err, xerrors.ErrNotFound):
		response.NotFound(c, "not found")
	case xerrors.Is(err, xerrors.ErrForbidden):
		response.Forbidden(c, "not a participant")
	case xerrors.Is(err, xerrors.ErrInvalidInput):
		response.ValidationError(c, xerrors.MessageOrDefault(err, "invalid request"), nil)
	default:
		response.Error(c, http.StatusInternalServerError, fallback, err)
	}
}
