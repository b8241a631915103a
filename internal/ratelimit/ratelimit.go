package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Jacques-glitch1996/talentpilot-ai/internal/auth"
)

// RateLimiter is a fixed-window per-org request counter backed by Redis.
// It guards the CRUD API surface; the AI generation quotas are enforced
// separately against the ai_logs history.
type RateLimiter struct {
	counter Counter
	limit   func(ctx context.Context, orgID string) (int, error)
}

// Counter increments the window counter for an org and reports the new
// count. Implemented by redisCounter in production.
type Counter interface {
	Incr(ctx context.Context, orgID string) (int64, error)
}

type redisCounter struct {
	client *redis.Client
}

func (c *redisCounter) Incr(ctx context.Context, orgID string) (int64, error) {
	key := fmt.Sprintf("ratelimit:org:%s:%s", orgID, time.Now().Format("2006-01-02-15"))

	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}

	if count == 1 {
		c.client.Expire(ctx, key, time.Hour)
	}

	return count, nil
}

func NewRateLimiter(redisURL string, limit func(ctx context.Context, orgID string) (int, error)) (*RateLimiter, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	return &RateLimiter{
		counter: &redisCounter{client: redis.NewClient(opt)},
		limit:   limit,
	}, nil
}

// New builds a limiter from an arbitrary counter. Used by tests.
func New(counter Counter, limit func(ctx context.Context, orgID string) (int, error)) *RateLimiter {
	return &RateLimiter{counter: counter, limit: limit}
}

func (rl *RateLimiter) Allow(ctx context.Context, orgID string) (bool, error) {
	limit, err := rl.limit(ctx, orgID)
	if err != nil {
		return false, err
	}

	count, err := rl.counter.Incr(ctx, orgID)
	if err != nil {
		return false, err
	}

	return count <= int64(limit), nil
}

// Middleware rejects requests once the caller's org exceeds its hourly
// API budget. Must run after auth.Middleware.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.CallerFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		allowed, err := rl.Allow(r.Context(), claims.OrgID)
		if err != nil {
			log.Printf("Rate limit check failed for org %s: %v", claims.OrgID, err)
			writeJSONError(w, http.StatusInternalServerError, "Rate limit check failed")
			return
		}

		if !allowed {
			writeJSONError(w, http.StatusTooManyRequests, "API rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
