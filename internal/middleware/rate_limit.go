package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"ecity-api/internal/metrics"
	"ecity-api/internal/response"
)

// FixedWindowStore counts hits per key in windows that start at the first hit
type FixedWindowStore interface {
	// Hit increments key and returns the count in the current window
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
	// TTL returns the time left in key's window
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// RedisWindowStore implements FixedWindowStore with INCR and EXPIRE. INCR and
// TTL go out in one MULTI; a counter found without an expiry gets one, so a
// lost EXPIRE cannot pin a caller at the limit forever.
type RedisWindowStore struct {
	client *redis.Client
	prefix string
}

func NewRedisWindowStore(client *redis.Client, prefix string) *RedisWindowStore {
	return &RedisWindowStore{client: client, prefix: prefix}
}

func (s *RedisWindowStore) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	key = s.prefix + key

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	if _, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	}); err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}

	count := incr.Val()
	// -1 means the key exists without an expiry
	if ttl.Val() < 0 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return count, fmt.Errorf("expire %s: %w", key, err)
		}
	}
	return count, nil
}

func (s *RedisWindowStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	return s.client.TTL(ctx, s.prefix+key).Result()
}

// RateLimitConfig configures RateLimit
type RateLimitConfig struct {
	Store   FixedWindowStore
	Limit   int
	Window  time.Duration
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// RateLimit limits requests per caller (user id, else client IP). With no
// store it is a pass-through; store errors let the request through.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Store == nil || cfg.Limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if id, ok := GetIdentity(c); ok {
			key = "user:" + id.UserID.String()
		}

		ctx := c.Request.Context()
		count, err := cfg.Store.Hit(ctx, key, cfg.Window)
		if err != nil {
			logger.Warn("Rate limiter unavailable, allowing request", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		if count > int64(cfg.Limit) {
			ttl, err := cfg.Store.TTL(ctx, key)
			if err != nil || ttl < 0 {
				ttl = cfg.Window
			}
			retryAfter := int(math.Ceil(ttl.Seconds()))

			if cfg.Metrics != nil {
				cfg.Metrics.IncrementRateLimited()
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.Set(response.ContextKeyErrorCode, response.ErrCodeRateLimited)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.ErrorResponse{
				Error:      "Rate limit exceeded, try again later",
				RetryAfter: retryAfter,
			})
			return
		}

		c.Next()
	}
}
