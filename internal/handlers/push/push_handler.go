// internal/handlers/push/push_handler.go
package push

import (
	"errors"
	"net/http"

	"homescout-service/internal/domain/push"
	"homescout-service/internal/middleware"
	"homescout-service/internal/pkg/response"
	service "homescout-service/internal/service/push"

	"github.com/gin-gonic/gin"
)

type PushHandler struct {
	pushService *service.PushService
}

func NewPushHandler(pushService *service.PushService) *PushHandler {
	return &PushHandler{pushService: pushService}
}

// Subscribe registers a browser push subscription. POST /push/subscribe
func (h *PushHandler) Subscribe(c *gin.Context) {
	var req push.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	sub, err := h.pushService.Subscribe(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		if errors.Is(err, service.ErrMissingEndpoint) || errors.Is(err, service.ErrMissingKeys) {
			response.ValidationError(c, err.Error(), nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to store subscription", err)
		return
	}

	response.Success(c, http.StatusCreated, "subscribed", sub)
}

// Unsubscribe removes a subscription by endpoint. POST /push/unsubscribe
func (h *PushHandler) Unsubscribe(c *gin.Context) {
	var req push.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	if err := h.pushService.Unsubscribe(c.Request.Context(), middleware.GetUserID(c), req.Endpoint); err != nil {
		response.NotFound(c, "subscription not found")
		return
	}

	response.Success(c, http.StatusOK, "unsubscribed", nil)
}

// List returns the caller's subscriptions. GET /push/subscriptions
func (h *PushHandler) List(c *gin.Context) {
	subs, err := h.pushService.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list subscriptions", err)
		return
	}

	response.Success(c, http.StatusOK, "subscriptions", subs)
}
