// internal/middleware/rate_limit_middleware_test.go
package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeLimiter struct {
	locked   bool
	lockTTL  time.Duration
	allowed  bool
	checkErr error

	gotEndpoint string
	gotMax      int64
	gotWindow   time.Duration
}

func (f *fakeLimiter) IsLocked(_ context.Context, _ int64) (bool, time.Duration, error) {
	return f.locked, f.lockTTL, nil
}

func (f *fakeLimiter) CheckAPIRateLimit(_ context.Context, _ int64, endpoint string, maxRequests int64, window time.Duration) (bool, error) {
	f.gotEndpoint = endpoint
	f.gotMax = maxRequests
	f.gotWindow = window
	return f.allowed, f.checkErr
}

func rateLimitedRouter(limiter APILimiter, userID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	mw := NewRateLimitMiddleware(limiter, zap.NewNop())
	router.GET("/limited",
		func(c *gin.Context) {
			if userID != 0 {
				c.Set(ctxUserID, userID)
			}
		},
		mw.Limit("test_scope", 10, time.Minute),
		func(c *gin.Context) {
			c.String(http.StatusOK, "through")
		},
	)
	return router
}

func doLimited(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
	return w
}

func TestRateLimitAllowsUnderBudget(t *testing.T) {
	limiter := &fakeLimiter{allowed: true}
	w := doLimited(rateLimitedRouter(limiter, 7))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test_scope", limiter.gotEndpoint)
	assert.Equal(t, int64(10), limiter.gotMax)
	assert.Equal(t, time.Minute, limiter.gotWindow)
}

func TestRateLimitRejectsOverBudget(t *testing.T) {
	w := doLimited(rateLimitedRouter(&fakeLimiter{allowed: false}, 7))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimitRejectsLockedAccount(t *testing.T) {
	limiter := &fakeLimiter{locked: true, lockTTL: 90 * time.Second, allowed: true}
	w := doLimited(rateLimitedRouter(limiter, 7))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "91", w.Header().Get("Retry-After"))
	assert.Empty(t, limiter.gotEndpoint, "a locked account never reaches the counter")
}

// Throttling is protection, not a dependency: a failed check lets the
// request through.
func TestRateLimitFailsOpenOnStoreError(t *testing.T) {
	w := doLimited(rateLimitedRouter(&fakeLimiter{checkErr: errors.New("redis down")}, 7))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitSkipsAnonymousRequests(t *testing.T) {
	limiter := &fakeLimiter{allowed: false}
	w := doLimited(rateLimitedRouter(limiter, 0))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, limiter.gotEndpoint)
}
