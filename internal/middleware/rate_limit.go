package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/pageza/recipe-finder/backend/config"
	"github.com/pageza/recipe-finder/backend/internal/metrics"
)

// Decision is the outcome of a rate limit check
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// Limiter decides whether a client identified by key may make another request
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// RedisLimiter is a fixed-window limiter shared by every gateway instance
type RedisLimiter struct {
	redis     *redis.Client
	config    config.RateLimitConfig
	keyPrefix string
}

// NewRedisLimiter creates a new Redis backed limiter
func NewRedisLimiter(redisClient *redis.Client, cfg config.RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{
		redis:     redisClient,
		config:    cfg,
		keyPrefix: "rate_limit:recipes",
	}
}

// Allow counts the request in the current window and reports whether it is within the limit
func (rl *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	windowStart := time.Now().Truncate(rl.config.Interval)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.keyPrefix, key, windowStart.Unix())

	// Use Redis pipeline for atomic operations
	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Interval)

	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Requests - count
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   count <= rl.config.Requests,
		Limit:     rl.config.Requests,
		Remaining: remaining,
		Reset:     windowStart.Add(rl.config.Interval),
	}, nil
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter is a per-process token bucket limiter used when Redis is not configured
type MemoryLimiter struct {
	mu          sync.Mutex
	clients     map[string]*clientLimiter
	limit       rate.Limit
	burst       int
	idleTTL     time.Duration
	lastCleanup time.Time
}

// NewMemoryLimiter creates a limiter allowing cfg.Requests per cfg.Interval per client
func NewMemoryLimiter(cfg config.RateLimitConfig) *MemoryLimiter {
	return &MemoryLimiter{
		clients:     make(map[string]*clientLimiter),
		limit:       rate.Every(cfg.Interval / time.Duration(cfg.Requests)),
		burst:       cfg.Requests,
		idleTTL:     5 * time.Minute,
		lastCleanup: time.Now(),
	}
}

// Allow consumes one token for the client
func (ml *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := time.Now()

	ml.mu.Lock()
	if now.Sub(ml.lastCleanup) > ml.idleTTL {
		for k, cl := range ml.clients {
			if now.Sub(cl.lastSeen) > ml.idleTTL {
				delete(ml.clients, k)
			}
		}
		ml.lastCleanup = now
	}
	cl, ok := ml.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(ml.limit, ml.burst)}
		ml.clients[key] = cl
	}
	cl.lastSeen = now
	ml.mu.Unlock()

	allowed := cl.limiter.AllowN(now, 1)
	tokens := cl.limiter.TokensAt(now)
	remaining := int(math.Max(0, math.Floor(tokens)))

	reset := now
	if tokens < 1 && ml.limit > 0 {
		reset = now.Add(time.Duration((1 - tokens) / float64(ml.limit) * float64(time.Second)))
	}

	return Decision{
		Allowed:   allowed,
		Limit:     ml.burst,
		Remaining: remaining,
		Reset:     reset,
	}, nil
}

// NewLimiter picks the Redis limiter when a client is available and the in-memory one otherwise.
// It returns nil when rate limiting is disabled.
func NewLimiter(redisClient *redis.Client, cfg config.RateLimitConfig) Limiter {
	if !cfg.Enabled() {
		return nil
	}
	if redisClient != nil {
		return NewRedisLimiter(redisClient, cfg)
	}
	return NewMemoryLimiter(cfg)
}

// RateLimit returns a Gin middleware that enforces the limit per client IP.
// Limiter errors fail open so a Redis outage does not take the gateway down.
func RateLimit(limiter Limiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		decision, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn("rate limit check failed", "request_id", RequestIDFromContext(c), "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.Reset.Unix(), 10))

		if !decision.Allowed {
			metrics.RateLimitedTotal.Inc()
			retryAfter := int(math.Ceil(time.Until(decision.Reset).Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
