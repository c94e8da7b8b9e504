// internal/service/auth/auth.go
package auth

import (
	"context"
	"time"

	"homescout-service/internal/domain/profile"
	xerrors "homescout-service/internal/pkg/errors"
	"homescout-service/internal/pkg/jwt"
	"homescout-service/internal/pkg/session"
	"homescout-service/internal/repository/postgres"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	profileRepo    *postgres.ProfileRepository
	jwtManager     *jwt.Manager
	sessionManager *session.Manager
	rateLimiter    *session.RateLimiter
	logger         *zap.Logger
}

func NewAuthService(
	profileRepo *postgres.ProfileRepository,
	jwtManager *jwt.Manager,
	sessionManager *session.Manager,
	rateLimiter *session.RateLimiter,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		profileRepo:    profileRepo,
		jwtManager:     jwtManager,
		sessionManager: sessionManager,
		rateLimiter:    rateLimiter,
		logger:         logger,
	}
}

// Register creates a new account. Everyone signs up as a buyer or realtor;
// admin accounts are provisioned out of band.
func (s *AuthService) Register(ctx context.Context, req *profile.RegisterRequest) (*profile.Profile, error) {
	exists, err := s.profileRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, xerrors.ErrDuplicateEntry
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to hash password")
	}

	role := profile.Role(req.Role)
	if !role.Valid() || role == profile.RoleAdmin {
		role = profile.RoleBuyer
	}

	p := &profile.Profile{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         role,
	}

	if err := s.profileRepo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create profile", zap.Error(err))
		return nil, err
	}

	s.logger.Info("profile registered",
		zap.Int64("user_id", p.ID),
		zap.String("role", string(p.Role)),
	)

	return p, nil
}

// Login verifies credentials, rate limited per IP+email, and opens a session.
func (s *AuthService) Login(ctx context.Context, req *profile.LoginRequest, ip, userAgent string) (*profile.LoginResponse, error) {
	allowed, _, err := s.rateLimiter.CheckLoginAttempt(ctx, ip, req.Email)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, xerrors.ErrRateLimited
	}

	p, err := s.profileRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		// same error for unknown email and bad password
		return nil, xerrors.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(req.Password)); err != nil {
		return nil, xerrors.ErrUnauthorized
	}

	token, jti, expiresAt, err := s.jwtManager.Generate(p.ID, p.Email, string(p.Role))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.sessionManager.CreateSession(ctx, &session.SessionData{
		JTI:            jti,
		UserID:         p.ID,
		Email:          p.Email,
		Role:           string(p.Role),
		IPAddress:      ip,
		UserAgent:      userAgent,
		LoginAt:        now,
		LastActivityAt: now,
		ExpiresAt:      expiresAt,
	}); err != nil {
		return nil, err
	}

	_ = s.rateLimiter.ResetLoginAttempts(ctx, ip, req.Email)

	s.logger.Info("login", zap.Int64("user_id", p.ID), zap.String("ip", ip))

	return &profile.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		Profile:   p,
	}, nil
}

// Logout revokes the current token and drops its session.
func (s *AuthService) Logout(ctx context.Context, userID int64, jti string, expiresAt time.Time) error {
	if ttl := time.Until(expiresAt); ttl > 0 {
		if err := s.sessionManager.BlacklistToken(ctx, jti, ttl); err != nil {
			return err
		}
	}
	return s.sessionManager.InvalidateSession(ctx, userID, jti)
}

// LogoutAll drops every session the user holds.
func (s *AuthService) LogoutAll(ctx context.Context, userID int64) error {
	return s.sessionManager.InvalidateAllUserSessions(ctx, userID)
}

func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*profile.Profile, error) {
	return s.profileRepo.FindByID(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req *profile.UpdateProfileRequest) (*profile.Profile, error) {
	p, err := s.profileRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		p.FullName = *req.FullName
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}

	if err := s.profileRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *AuthService) Sessions(ctx context.Context, userID int64) ([]*session.SessionData, error) {
	return s.sessionManager.GetUserActiveSessions(ctx, userID)
}
