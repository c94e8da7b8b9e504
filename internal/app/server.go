// internal/app/server.go
package app

import (
	"context"
	"fmt"

	"homescout-service/internal/config"
	"homescout-service/internal/db"
	adcampaignHandler "homescout-service/internal/handlers/adcampaign"
	authHandler "homescout-service/internal/handlers/auth"
	conversationHandler "homescout-service/internal/handlers/conversation"
	leadHandler "homescout-service/internal/handlers/lead"
	notificationHandler "homescout-service/internal/handlers/notification"
	preferencesHandler "homescout-service/internal/handlers/preferences"
	propertyHandler "homescout-service/internal/handlers/property"
	pushHandler "homescout-service/internal/handlers/push"
	salesHandler "homescout-service/internal/handlers/sales"
	showingHandler "homescout-service/internal/handlers/showing"
	verificationHandler "homescout-service/internal/handlers/verification"
	websocketHandler "homescout-service/internal/handlers/websocket"
	"homescout-service/internal/middleware"
	"homescout-service/internal/pkg/jwt"
	"homescout-service/internal/pkg/session"
	"homescout-service/internal/repository/postgres"
	adcampaignService "homescout-service/internal/service/adcampaign"
	authService "homescout-service/internal/service/auth"
	conversationService "homescout-service/internal/service/conversation"
	leadService "homescout-service/internal/service/lead"
	notificationService "homescout-service/internal/service/notification"
	preferencesService "homescout-service/internal/service/preferences"
	propertyService "homescout-service/internal/service/property"
	pushService "homescout-service/internal/service/push"
	salesService "homescout-service/internal/service/sales"
	showingService "homescout-service/internal/service/showing"
	verificationService "homescout-service/internal/service/verification"
	"homescout-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
}

func NewServer() *Server {
	return &Server{
		cfg:    config.Load(),
		engine: gin.New(),
	}
}

// notifierAdapter lets the verification service push notifications
// without caring about the persisted entity.
type notifierAdapter struct {
	svc *notificationService.NotificationService
}

func (a notifierAdapter) Notify(ctx context.Context, userID int64, ntype, title, body string) error {
	_, err := a.svc.Notify(ctx, userID, ntype, title, body)
	return err
}

func (s *Server) Start() error {
	ctx := context.Background()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	// ----- PostgreSQL -----
	if s.cfg.RunMigrations {
		if err := db.Migrate(s.cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	logger.Info("postgres connected")

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("redis connected", zap.String("addr", s.cfg.RedisAddr))

	// ----- JWT, sessions, rate limiting -----
	jwtManager, err := jwt.LoadAndBuild(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to load JWT keys: %w", err)
	}
	sessionManager := session.NewManager(redisClient)
	rateLimiter := session.NewRateLimiter(redisClient)

	// ----- Repositories -----
	profileRepo := postgres.NewProfileRepository(pool)
	propertyRepo := postgres.NewPropertyRepository(pool)
	campaignRepo := postgres.NewAdCampaignRepository(pool)
	salesRepo := postgres.NewSalesRequestRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	leadRepo := postgres.NewLeadRepository(pool)
	showingRepo := postgres.NewShowingRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	pushRepo := postgres.NewPushSubscriptionRepository(pool)
	verificationRepo := postgres.NewVerificationRepository(pool)
	savedSearchRepo := postgres.NewSavedSearchRepository(pool)
	preferencesRepo := postgres.NewPreferencesRepository(pool)
	conversationRepo := postgres.NewConversationRepository(pool)

	// ----- WebSocket hub -----
	hub := websocket.NewHub(jwtManager, sessionManager, logger)
	go hub.Run(ctx)

	// ----- Services -----
	draftStore := adcampaignService.NewDraftStore(redisClient, s.cfg.DraftTTL)

	authSvc := authService.NewAuthService(profileRepo, jwtManager, sessionManager, rateLimiter, logger)
	propertySvc := propertyService.NewPropertyService(propertyRepo, savedSearchRepo, logger)
	campaignSvc := adcampaignService.NewCampaignService(campaignRepo, propertyRepo, draftStore, logger)
	salesSvc := salesService.NewSalesService(salesRepo, invoiceRepo, logger)
	leadSvc := leadService.NewLeadService(leadRepo, propertyRepo, campaignRepo, logger)
	showingSvc := showingService.NewShowingService(showingRepo, propertyRepo, logger)
	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub, logger)
	pushSvc := pushService.NewPushService(pushRepo, logger)
	verificationSvc := verificationService.NewVerificationService(
		verificationRepo,
		profileRepo,
		s.cfg.KYCSessionBaseURL,
		notifierAdapter{svc: notificationSvc},
		logger,
	)
	preferencesSvc := preferencesService.NewPreferencesService(preferencesRepo, logger)
	conversationSvc := conversationService.NewConversationService(
		conversationRepo,
		profileRepo,
		propertyRepo,
		notifierAdapter{svc: notificationSvc},
		logger,
	)

	// ----- Handlers -----
	handlers := &Handlers{
		Auth:           authHandler.NewAuthHandler(authSvc),
		Property:       propertyHandler.NewPropertyHandler(propertySvc),
		Campaign:       adcampaignHandler.NewCampaignHandler(campaignSvc),
		Sales:          salesHandler.NewSalesHandler(salesSvc),
		Lead:           leadHandler.NewLeadHandler(leadSvc),
		Showing:        showingHandler.NewShowingHandler(showingSvc),
		Notification:   notificationHandler.NewNotificationHandler(notificationSvc),
		Push:           pushHandler.NewPushHandler(pushSvc),
		Verification:   verificationHandler.NewVerificationHandler(verificationSvc),
		Preferences:    preferencesHandler.NewPreferencesHandler(preferencesSvc),
		Conversation:   conversationHandler.NewConversationHandler(conversationSvc),
		WS:             websocketHandler.NewHandler(hub, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(jwtManager, sessionManager),
		RateLimit:      middleware.NewRateLimitMiddleware(rateLimiter, logger),
	}

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		gin.Logger(),
	)

	SetupRouter(s.engine, handlers)

	logger.Info("server listening", zap.String("addr", s.cfg.HTTPAddr))
	return s.engine.Run(s.cfg.HTTPAddr)
}
