package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// LimiterStore answers whether a client identified by key may proceed.
// Injected so handlers can be tested without Redis and so deployments
// can choose per-process or shared limiting.
type LimiterStore interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryLimiterStore keeps one token bucket per client key in process
// memory.
type MemoryLimiterStore struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex

	limit rate.Limit
	burst int
}

func NewMemoryLimiterStore(requestsPerMin, burst int) *MemoryLimiterStore {
	if requestsPerMin < 1 {
		requestsPerMin = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &MemoryLimiterStore{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(requestsPerMin)),
		burst:    burst,
	}
}

func (s *MemoryLimiterStore) Allow(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	limiter, exists := s.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(s.limit, s.burst)
		s.limiters[key] = limiter
	}
	s.mu.Unlock()

	return limiter.Allow(), nil
}

// RedisLimiterStore implements a fixed one-minute window shared across
// instances.
type RedisLimiterStore struct {
	Client         *redis.Client
	RequestsPerMin int
}

func (s *RedisLimiterStore) Allow(ctx context.Context, key string) (bool, error) {
	window := time.Now().UTC().Format("200601021504")
	redisKey := fmt.Sprintf("ratelimit:%s:%s", key, window)

	count, err := s.Client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := s.Client.Expire(ctx, redisKey, time.Minute).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(s.RequestsPerMin), nil
}

// RateLimitMiddleware limits requests per client IP using the given store.
// Store errors fail open; limiting is protection, not a gate.
func RateLimitMiddleware(store LimiterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()
		ip := getClientIP(c)

		allowed, err := store.Allow(c.Request.Context(), ip)
		if err != nil {
			logger.Error("rate limiter store failed", zap.String("ip", ip), zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			logger.Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
