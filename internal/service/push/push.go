// internal/service/push/push.go
package push

import (
	"context"
	"errors"

	"homescout-service/internal/domain/push"
	"homescout-service/internal/repository/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Validation errors are distinct so clients can tell a missing endpoint from
// missing crypto keys.
var (
	ErrMissingEndpoint = errors.New("subscription endpoint is required")
	ErrMissingKeys     = errors.New("subscription p256dh and auth keys are required")
)

type PushService struct {
	pushRepo *postgres.PushSubscriptionRepository
	logger   *zap.Logger
}

func NewPushService(pushRepo *postgres.PushSubscriptionRepository, logger *zap.Logger) *PushService {
	return &PushService{pushRepo: pushRepo, logger: logger}
}

// Subscribe registers a browser push subscription. Re-registering an
// existing endpoint refreshes its keys instead of duplicating it.
func (s *PushService) Subscribe(ctx context.Context, userID int64, req *push.SubscribeRequest) (*push.Subscription, error) {
	if req.Endpoint == "" {
		return nil, ErrMissingEndpoint
	}
	if req.Keys.P256DH == "" || req.Keys.Auth == "" {
		return nil, ErrMissingKeys
	}

	sub := &push.Subscription{
		ID:       uuid.NewString(),
		UserID:   userID,
		Endpoint: req.Endpoint,
		P256DH:   req.Keys.P256DH,
		Auth:     req.Keys.Auth,
	}

	if err := s.pushRepo.Upsert(ctx, sub); err != nil {
		s.logger.Error("failed to store push subscription", zap.Error(err))
		return nil, err
	}

	s.logger.Info("push subscription stored",
		zap.Int64("user_id", userID),
		zap.String("subscription_id", sub.ID),
	)

	return sub, nil
}

func (s *PushService) Unsubscribe(ctx context.Context, userID int64, endpoint string) error {
	return s.pushRepo.DeleteByEndpoint(ctx, userID, endpoint)
}

func (s *PushService) List(ctx context.Context, userID int64) ([]push.Subscription, error) {
	return s.pushRepo.ListByUser(ctx, userID)
}
