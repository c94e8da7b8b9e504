// internal/service/conversation/conversation.go
package conversation

import (
	"context"
	"database/sql"
	"fmt"

	"homescout-service/internal/domain/conversation"
	"homescout-service/internal/domain/profile"
	xerrors "homescout-service/internal/pkg/errors"
	"homescout-service/internal/repository/postgres"

	"go.uber.org/zap"
)

// Notifier decouples messaging from the notification service.
type Notifier interface {
	Notify(ctx context.Context, userID int64, ntype, title, body string) error
}

type ConversationService struct {
	conversationRepo *postgres.ConversationRepository
	profileRepo      *postgres.ProfileRepository
	propertyRepo     *postgres.PropertyRepository
	notifier         Notifier
	logger           *zap.Logger
}

func NewConversationService(
	conversationRepo *postgres.ConversationRepository,
	profileRepo *postgres.ProfileRepository,
	propertyRepo *postgres.PropertyRepository,
	notifier Notifier,
	logger *zap.Logger,
) *ConversationService {
	return &ConversationService{
		conversationRepo: conversationRepo,
		profileRepo:      profileRepo,
		propertyRepo:     propertyRepo,
		notifier:         notifier,
		logger:           logger,
	}
}

// Start opens (or reuses) a thread with a realtor and posts the first
// message.
func (s *ConversationService) Start(ctx context.Context, buyerID int64, req *conversation.StartConversationRequest) (*conversation.Conversation, error) {
	if req.RealtorID == buyerID {
		return nil, fmt.Errorf("cannot message yourself: %w", xerrors.ErrInvalidInput)
	}

	realtor, err := s.profileRepo.FindByID(ctx, req.RealtorID)
	if err != nil {
		return nil, err
	}
	if realtor.Role != profile.RoleRealtor {
		return nil, fmt.Errorf("recipient is not a realtor: %w", xerrors.ErrInvalidInput)
	}

	c := &conversation.Conversation{BuyerID: buyerID, RealtorID: req.RealtorID}
	if req.PropertyID != nil {
		p, err := s.propertyRepo.FindByID(ctx, *req.PropertyID)
		if err != nil {
			return nil, err
		}
		if p.RealtorID != req.RealtorID {
			return nil, fmt.Errorf("listing belongs to another realtor: %w", xerrors.ErrInvalidInput)
		}
		c.PropertyID = sql.NullInt64{Int64: p.ID, Valid: true}
	}

	if err := s.conversationRepo.FindOrCreate(ctx, c); err != nil {
		return nil, err
	}

	if _, err := s.post(ctx, c, buyerID, req.Body); err != nil {
		return nil, err
	}

	s.logger.Info("conversation started",
		zap.Int64("conversation_id", c.ID),
		zap.Int64("buyer_id", buyerID),
		zap.Int64("realtor_id", req.RealtorID),
	)
	return c, nil
}

func (s *ConversationService) List(ctx context.Context, userID int64) ([]conversation.Conversation, error) {
	return s.conversationRepo.ListByUser(ctx, userID)
}

func (s *ConversationService) Messages(ctx context.Context, userID, conversationID int64, limit int) ([]conversation.Message, error) {
	c, err := s.conversationRepo.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !c.Involves(userID) {
		return nil, xerrors.ErrForbidden
	}

	return s.conversationRepo.ListMessages(ctx, conversationID, limit)
}

func (s *ConversationService) Send(ctx context.Context, userID, conversationID int64, req *conversation.SendMessageRequest) (*conversation.Message, error) {
	c, err := s.conversationRepo.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !c.Involves(userID) {
		return nil, xerrors.ErrForbidden
	}

	return s.post(ctx, c, userID, req.Body)
}

func (s *ConversationService) post(ctx context.Context, c *conversation.Conversation, senderID int64, body string) (*conversation.Message, error) {
	m := &conversation.Message{
		ConversationID: c.ID,
		SenderID:       senderID,
		Body:           body,
	}
	if err := s.conversationRepo.AddMessage(ctx, m); err != nil {
		return nil, err
	}

	// Notification failures never fail the send.
	if s.notifier != nil {
		recipient := c.Counterpart(senderID)
		if err := s.notifier.Notify(ctx, recipient, "message", "New message", preview(body)); err != nil {
			s.logger.Warn("failed to notify message recipient",
				zap.Int64("recipient_id", recipient),
				zap.Error(err),
			)
		}
	}

	return m, nil
}

// preview shortens a message body for the notification line, cutting on a
// rune boundary so multi-byte text is never split mid-character.
func preview(body string) string {
	const max = 120
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	return string(runes[:max]) + "..."
}
