// internal/middleware/auth_middleware.go
package middleware

import (
	"net/http"
	"strings"
	"time"

	"homescout-service/internal/pkg/jwt"
	"homescout-service/internal/pkg/response"
	"homescout-service/internal/pkg/session"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID    = "user_id"
	ctxJTI       = "jti"
	ctxEmail     = "email"
	ctxRole      = "role"
	ctxExpiresAt = "expires_at"
)

type AuthMiddleware struct {
	jwtManager     *jwt.Manager
	sessionManager *session.Manager
}

func NewAuthMiddleware(jwtManager *jwt.Manager, sessionManager *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:     jwtManager,
		sessionManager: sessionManager,
	}
}

// Auth validates the bearer token against the signing key and the session
// store, then loads the identity into the request context.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing authorization token", nil)
			return
		}

		claims, err := m.jwtManager.Verify(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token", err)
			return
		}

		blacklisted, err := m.sessionManager.IsTokenBlacklisted(c.Request.Context(), claims.ID)
		if err == nil && blacklisted {
			response.Error(c, http.StatusUnauthorized, "token has been revoked", nil)
			return
		}

		if _, err := m.sessionManager.GetSession(c.Request.Context(), claims.UserID, claims.ID); err != nil {
			response.Error(c, http.StatusUnauthorized, "session expired", nil)
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxJTI, claims.ID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxRole, claims.Role)
		if claims.ExpiresAt != nil {
			c.Set(ctxExpiresAt, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// RequireRole allows only the listed roles through. Must run after Auth.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "insufficient permissions")
	}
}

// RealtorOnly guards the realtor tooling surface. Admins pass too.
func (m *AuthMiddleware) RealtorOnly() gin.HandlerFunc {
	return m.RequireRole("realtor", "admin")
}

func (m *AuthMiddleware) AdminOnly() gin.HandlerFunc {
	return m.RequireRole("admin")
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	return c.Query("token")
}

func GetUserID(c *gin.Context) int64 {
	if v, ok := c.Get(ctxUserID); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

func GetJTI(c *gin.Context) string {
	if v, ok := c.Get(ctxJTI); ok {
		if jti, ok := v.(string); ok {
			return jti
		}
	}
	return ""
}

func GetRole(c *gin.Context) string {
	if v, ok := c.Get(ctxRole); ok {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

func GetExpiresAt(c *gin.Context) time.Time {
	if v, ok := c.Get(ctxExpiresAt); ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}
