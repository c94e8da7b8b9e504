// internal/service/verification/verification.go
package verification

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"homescout-service/internal/domain/verification"
	xerrors "homescout-service/internal/pkg/errors"
	"homescout-service/internal/repository/postgres"

	"github.com/lib/pq"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Notifier decouples the verification flow from the notification service.
type Notifier interface {
	Notify(ctx context.Context, userID int64, ntype, title, body string) error
}

type VerificationService struct {
	verificationRepo *postgres.VerificationRepository
	profileRepo      *postgres.ProfileRepository
	sessionBaseURL   string
	notifier         Notifier
	logger           *zap.Logger
}

func NewVerificationService(
	verificationRepo *postgres.VerificationRepository,
	profileRepo *postgres.ProfileRepository,
	sessionBaseURL string,
	notifier Notifier,
	logger *zap.Logger,
) *VerificationService {
	return &VerificationService{
		verificationRepo: verificationRepo,
		profileRepo:      profileRepo,
		sessionBaseURL:   sessionBaseURL,
		notifier:         notifier,
		logger:           logger,
	}
}

// Start opens a KYC session with the external provider. A user with a
// pending request cannot open another one.
func (s *VerificationService) Start(ctx context.Context, userID int64, req *verification.StartRequest) (*verification.Request, error) {
	if latest, err := s.verificationRepo.FindLatestByUser(ctx, userID); err == nil {
		if latest.Status == verification.StatusPending {
			return nil, xerrors.ErrConflict
		}
		if latest.Status == verification.StatusApproved {
			return nil, xerrors.ErrDuplicateEntry
		}
	}

	reference := ulid.MustNew(ulid.Now(), rand.Reader).String()

	v := &verification.Request{
		UserID:     userID,
		Reference:  reference,
		Documents:  pq.StringArray(req.Documents),
		Status:     verification.StatusPending,
		SessionURL: fmt.Sprintf("%s/%s", s.sessionBaseURL, reference),
	}

	if err := s.verificationRepo.Create(ctx, v); err != nil {
		s.logger.Error("failed to create verification request", zap.Error(err))
		return nil, err
	}

	s.logger.Info("verification started",
		zap.Int64("user_id", userID),
		zap.String("reference", reference),
	)

	return v, nil
}

// Complete records the provider decision and, on approval, flips the
// profile's verified flag. The user is notified either way.
func (s *VerificationService) Complete(ctx context.Context, cb *verification.CompleteCallback) (*verification.Request, error) {
	v, err := s.verificationRepo.FindByReference(ctx, cb.Reference)
	if err != nil {
		return nil, err
	}
	if v.Status != verification.StatusPending {
		return nil, xerrors.ErrInvalidStatus
	}

	status := verification.Status(cb.Outcome)
	now := time.Now()

	if err := s.verificationRepo.Complete(ctx, cb.Reference, status, now); err != nil {
		return nil, err
	}

	if status == verification.StatusApproved {
		if err := s.profileRepo.SetVerified(ctx, v.UserID, true); err != nil {
			s.logger.Error("failed to set profile verified",
				zap.Int64("user_id", v.UserID), zap.Error(err))
		}
	}

	if s.notifier != nil {
		title, body := decisionMessage(status)
		if err := s.notifier.Notify(ctx, v.UserID, "kyc", title, body); err != nil {
			s.logger.Warn("failed to notify verification decision", zap.Error(err))
		}
	}

	s.logger.Info("verification completed",
		zap.String("reference", cb.Reference),
		zap.String("outcome", cb.Outcome),
	)

	v.Status = status
	v.ReviewedAt.Time = now
	v.ReviewedAt.Valid = true
	return v, nil
}

// Status returns the user's most recent verification request.
func (s *VerificationService) Status(ctx context.Context, userID int64) (*verification.Request, error) {
	return s.verificationRepo.FindLatestByUser(ctx, userID)
}

func decisionMessage(status verification.Status) (title, body string) {
	if status == verification.StatusApproved {
		return "Identity verified", "Your identity verification was approved. Your account now carries the verified badge."
	}
	return "Verification rejected", "Your identity verification was rejected. You can start a new verification with updated documents."
}
