// internal/pkg/session/rate_limiter.go
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	client *redis.Client
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// CheckLoginAttempt allows up to 5 login attempts per IP+email per 15 minutes.
func (r *RateLimiter) CheckLoginAttempt(ctx context.Context, ip, email string) (bool, int64, error) {
	key := fmt.Sprintf("ratelimit:login:%s:%s", ip, email)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment login attempt: %w", err)
	}
	if count == 1 {
		r.client.Expire(ctx, key, 15*time.Minute)
	}

	maxAttempts := int64(5)
	remaining := maxAttempts - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= maxAttempts, remaining, nil
}

// ResetLoginAttempts resets the login attempt counter.
func (r *RateLimiter) ResetLoginAttempts(ctx context.Context, ip, email string) error {
	return r.client.Del(ctx, fmt.Sprintf("ratelimit:login:%s:%s", ip, email)).Err()
}

// CheckAPIRateLimit checks a per-user, per-endpoint request counter against
// the given window.
func (r *RateLimiter) CheckAPIRateLimit(ctx context.Context, userID int64, endpoint string, maxRequests int64, window time.Duration) (bool, error) {
	key := fmt.Sprintf("ratelimit:api:%d:%s", userID, endpoint)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment API rate limit: %w", err)
	}
	if count == 1 {
		r.client.Expire(ctx, key, window)
	}
	return count <= maxRequests, nil
}

// IsLocked reports whether a redis lock key is held, with remaining TTL.
func (r *RateLimiter) IsLocked(ctx context.Context, userID int64) (bool, time.Duration, error) {
	ttl, err := r.client.TTL(ctx, fmt.Sprintf("account:locked:%d", userID)).Result()
	if err != nil {
		return false, 0, err
	}
	if ttl < 0 {
		return false, 0, nil
	}
	return true, ttl, nil
}
