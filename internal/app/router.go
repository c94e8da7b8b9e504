// internal/app/router.go
package app

import (
	"net/http"
	"time"

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

	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler behind the router.
type Handlers struct {
	Auth           *authHandler.AuthHandler
	Property       *propertyHandler.PropertyHandler
	Campaign       *adcampaignHandler.CampaignHandler
	Sales          *salesHandler.SalesHandler
	Lead           *leadHandler.LeadHandler
	Showing        *showingHandler.ShowingHandler
	Notification   *notificationHandler.NotificationHandler
	Push           *pushHandler.PushHandler
	Verification   *verificationHandler.VerificationHandler
	Preferences    *preferencesHandler.PreferencesHandler
	Conversation   *conversationHandler.ConversationHandler
	WS             *websocketHandler.Handler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimit      *middleware.RateLimitMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// WebSocket endpoint authenticates inside the handler so the token
	// can arrive as a query parameter.
	r.GET("/ws", h.WS.HandleConnection)

	v1 := r.Group("/api/v1")

	// ----- Public -----
	v1.POST("/auth/register", h.Auth.Register)
	v1.POST("/auth/login", h.Auth.Login)
	v1.GET("/properties", h.Property.Search)
	v1.GET("/properties/:id", h.Property.Get)
	v1.POST("/leads", h.Lead.Create)
	v1.POST("/verification/callback", h.Verification.Complete)

	// ----- Authenticated -----
	auth := v1.Group("/auth")
	auth.Use(h.AuthMiddleware.Auth())
	{
		auth.POST("/logout", h.Auth.Logout)
		auth.POST("/logout-all", h.Auth.LogoutAll)
		auth.GET("/me", h.Auth.Me)
		auth.PATCH("/me", h.Auth.UpdateMe)
		auth.GET("/sessions", h.Auth.Sessions)
	}

	notifications := v1.Group("/notifications")
	notifications.Use(h.AuthMiddleware.Auth())
	{
		notifications.GET("", h.Notification.List)
		notifications.GET("/unread-count", h.Notification.UnreadCount)
		notifications.POST("/read-all", h.Notification.MarkAllRead)
		notifications.POST("/:id/read", h.Notification.MarkRead)
	}

	push := v1.Group("/push")
	push.Use(h.AuthMiddleware.Auth())
	{
		push.POST("/subscribe", h.Push.Subscribe)
		push.POST("/unsubscribe", h.Push.Unsubscribe)
		push.GET("/subscriptions", h.Push.List)
	}

	verification := v1.Group("/verification")
	verification.Use(h.AuthMiddleware.Auth())
	{
		verification.POST("/start", h.Verification.Start)
		verification.GET("/status", h.Verification.Status)
	}

	prefs := v1.Group("/preferences")
	prefs.Use(h.AuthMiddleware.Auth())
	{
		prefs.GET("", h.Preferences.Get)
		prefs.PUT("", h.Preferences.Update)
	}

	conversations := v1.Group("/conversations")
	conversations.Use(h.AuthMiddleware.Auth())
	{
		conversations.POST("", h.Conversation.Start)
		conversations.GET("", h.Conversation.List)
		conversations.GET("/:id/messages", h.Conversation.Messages)
		conversations.POST("/:id/messages", h.Conversation.Send)
	}

	savedSearches := v1.Group("/saved-searches")
	savedSearches.Use(h.AuthMiddleware.Auth())
	{
		savedSearches.POST("", h.Property.SaveSearch)
		savedSearches.GET("", h.Property.ListSavedSearches)
		savedSearches.DELETE("/:id", h.Property.DeleteSavedSearch)
	}

	// ----- Realtor -----
	properties := v1.Group("/properties")
	properties.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.RealtorOnly())
	{
		properties.POST("", h.Property.Create)
		properties.GET("/mine", h.Property.ListMine)
		properties.PATCH("/:id", h.Property.Update)
		properties.DELETE("/:id", h.Property.Delete)
		properties.GET("/:id/showings", h.Showing.ListByProperty)
	}

	campaigns := v1.Group("/campaigns")
	campaigns.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.RealtorOnly())
	{
		// The draft editor autosaves on every field change, so it gets a
		// per-user throttle instead of riding on the global surface.
		draft := campaigns.Group("/draft", h.RateLimit.Limit("campaign_draft", 60, time.Minute))
		{
			draft.POST("", h.Campaign.StartDraft)
			draft.GET("", h.Campaign.GetDraft)
			draft.PUT("/property/:id", h.Campaign.SelectProperty)
			draft.PATCH("/creative", h.Campaign.UpdateCreative)
			draft.PATCH("/budget", h.Campaign.UpdateBudget)
			draft.POST("/advance", h.Campaign.Advance)
			draft.POST("/retreat", h.Campaign.Retreat)
			draft.POST("/submit", h.Campaign.Submit)
			draft.DELETE("", h.Campaign.Discard)
		}

		campaigns.GET("/board", h.Campaign.Board)
		campaigns.GET("/:id", h.Campaign.Get)
		campaigns.POST("/:id/pause", h.Campaign.Pause)
		campaigns.POST("/:id/resume", h.Campaign.Resume)
		campaigns.DELETE("/:id", h.Campaign.Delete)
		campaigns.GET("/:id/leads", h.Lead.ListByCampaign)
	}

	leads := v1.Group("/leads")
	leads.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.RealtorOnly())
	{
		leads.GET("", h.Lead.List)
		leads.PATCH("/:id/status", h.Lead.UpdateStatus)
	}

	showings := v1.Group("/showings")
	showings.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.RealtorOnly())
	{
		showings.POST("", h.Showing.Schedule)
		showings.GET("", h.Showing.List)
		showings.PATCH("/:id/status", h.Showing.UpdateStatus)
		showings.GET("/:id/calendar", h.Showing.ExportICS)
	}

	sales := v1.Group("/sales")
	sales.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.RealtorOnly())
	{
		sales.POST("", h.Sales.Create)
		sales.GET("/board", h.Sales.Board)
		sales.GET("/:id", h.Sales.Get)
		sales.POST("/:id/advance", h.Sales.Advance)
		sales.POST("/:id/cancel", h.Sales.Cancel)
		sales.GET("/:id/invoice", h.Sales.Invoice)
	}

	// ----- Admin -----
	admin := v1.Group("/admin")
	admin.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.AdminOnly())
	{
		admin.POST("/campaigns/:id/review", h.Campaign.Review)
	}
}
