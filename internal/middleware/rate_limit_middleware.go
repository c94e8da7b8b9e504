// internal/middleware/rate_limit_middleware.go
package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"homescout-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APILimiter is the throttling surface of session.RateLimiter.
type APILimiter interface {
	IsLocked(ctx context.Context, userID int64) (bool, time.Duration, error)
	CheckAPIRateLimit(ctx context.Context, userID int64, endpoint string, maxRequests int64, window time.Duration) (bool, error)
}

type RateLimitMiddleware struct {
	limiter APILimiter
	logger  *zap.Logger
}

func NewRateLimitMiddleware(limiter APILimiter, logger *zap.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter, logger: logger}
}

// Limit caps authenticated requests per user under the given scope. Must run
// after Auth. A redis outage fails open: throttling is protection, not a
// dependency the whole API should die on.
func (m *RateLimitMiddleware) Limit(scope string, maxRequests int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == 0 {
			c.Next()
			return
		}

		locked, ttl, err := m.limiter.IsLocked(c.Request.Context(), userID)
		if err == nil && locked {
			c.Header("Retry-After", strconv.FormatInt(int64(ttl.Seconds())+1, 10))
			response.Error(c, http.StatusTooManyRequests, "account temporarily locked", nil)
			return
		}

		allowed, err := m.limiter.CheckAPIRateLimit(c.Request.Context(), userID, scope, maxRequests, window)
		if err != nil {
			m.logger.Warn("rate limit check failed",
				zap.Int64("user_id", userID),
				zap.String("scope", scope),
				zap.Error(err),
			)
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", strconv.FormatInt(int64(window.Seconds()), 10))
			response.Error(c, http.StatusTooManyRequests, "too many requests", nil)
			return
		}

		c.Next()
	}
}
