// internal/handlers/notification/notification_handler.go
package notification

import (
	"net/http"
	"strconv"

	"homescout-service/internal/middleware"
	"homescout-service/internal/pkg/response"
	service "homescout-service/internal/service/notification"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns recent notifications. GET /notifications?limit=50
func (h *NotificationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifications, err := h.notificationService.List(c.Request.Context(), middleware.GetUserID(c), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list notifications", err)
		return
	}

	response.Success(c, http.StatusOK, "notifications", notifications)
}

// UnreadCount returns the unread counter. GET /notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationService.UnreadCount(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to count notifications", err)
		return
	}

	response.Success(c, http.StatusOK, "unread count", gin.H{"unread_count": count})
}

// MarkRead flips one notification. POST /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		response.NotFound(c, "notification not found")
		return
	}

	response.Success(c, http.StatusOK, "notification marked read", nil)
}

// MarkAllRead flips everything. POST /notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to mark notifications read", err)
		return
	}

	response.Success(c, http.StatusOK, "all notifications marked read", nil)
}
