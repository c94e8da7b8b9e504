// internal/service/notification/notification.go
package notification

import (
	"context"

	"homescout-service/internal/domain/notification"
	wstypes "homescout-service/internal/domain/websocket"
	"homescout-service/internal/repository/postgres"
	"homescout-service/internal/websocket"

	"go.uber.org/zap"
)

// NotificationService persists notifications and mirrors them to live
// websocket connections.
type NotificationService struct {
	notificationRepo *postgres.NotificationRepository
	hub              *websocket.Hub
	logger           *zap.Logger
}

func NewNotificationService(
	notificationRepo *postgres.NotificationRepository,
	hub *websocket.Hub,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		hub:              hub,
		logger:           logger,
	}
}

// Notify stores a notification and pushes it plus the fresh unread counter
// over the socket. Broadcast failures never fail the write.
func (s *NotificationService) Notify(ctx context.Context, userID int64, ntype, title, body string) (*notification.Notification, error) {
	n := &notification.Notification{
		UserID: userID,
		Type:   ntype,
		Title:  title,
		Body:   body,
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Error("failed to create notification", zap.Error(err))
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastNotification(userID, &wstypes.NotificationData{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Body:      n.Body,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
		if count, err := s.notificationRepo.CountUnread(ctx, userID); err == nil {
			s.hub.BroadcastNotificationCount(userID, count)
		}
	}

	return n, nil
}

func (s *NotificationService) List(ctx context.Context, userID int64, limit int) ([]notification.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID, limit)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead flips one notification and pushes the updated counter.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id int64) error {
	if err := s.notificationRepo.MarkRead(ctx, userID, id); err != nil {
		return err
	}
	s.pushCount(ctx, userID)
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	s.pushCount(ctx, userID)
	return nil
}

func (s *NotificationService) pushCount(ctx context.Context, userID int64) {
	if s.hub == nil {
		return
	}
	if count, err := s.notificationRepo.CountUnread(ctx, userID); err == nil {
		s.hub.BroadcastNotificationCount(userID, count)
	}
}
