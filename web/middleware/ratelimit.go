package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/ReshmithaBathala/bookingbackend/logger"
	"github.com/ReshmithaBathala/bookingbackend/util/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig configures rate limiting
type RateLimitConfig struct {
	RequestsPerMinute int
	BurstSize         int
	KeyFunc           func(c *gin.Context) string
	// IdleTTL is how long an unused key keeps its bucket.
	IdleTTL time.Duration
	// Counter, when set, replaces the per-process buckets with fixed
	// one-minute windows shared through it.
	Counter WindowCounter
}

// WindowCounter counts hits per key in fixed windows, e.g. in Redis.
type WindowCounter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// DefaultRateLimitConfig returns default rate limit config
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute: 30,
		BurstSize:         10,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
		IdleTTL: 10 * time.Minute,
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterStore struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
}

func (s *limiterStore) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) > s.idleTTL {
		for k, v := range s.visitors {
			if now.Sub(v.lastSeen) > s.idleTTL {
				delete(s.visitors, k)
			}
		}
		s.lastSweep = now
	}

	v, ok := s.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

// RateLimitMiddleware keeps a token bucket per key. A zero RequestsPerMinute
// disables limiting.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	if config.RequestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if config.KeyFunc == nil {
		config.KeyFunc = DefaultRateLimitConfig().KeyFunc
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = DefaultRateLimitConfig().IdleTTL
	}
	burst := config.BurstSize
	if burst <= 0 {
		burst = 1
	}

	if config.Counter != nil {
		return windowLimiter(config, max(config.RequestsPerMinute, burst))
	}

	store := &limiterStore{
		visitors:  make(map[string]*visitor),
		limit:     rate.Limit(float64(config.RequestsPerMinute) / 60),
		burst:     burst,
		idleTTL:   config.IdleTTL,
		lastSweep: time.Now(),
	}

	return func(c *gin.Context) {
		key := config.KeyFunc(c)
		limiter := store.get(key, time.Now())

		if !limiter.Allow() {
			rejectRateLimited(c, key)
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerMinute))
		c.Next()
	}
}

// windowLimiter admits up to limit requests per key per minute. A counter
// failure lets the request through.
func windowLimiter(config RateLimitConfig, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := config.KeyFunc(c)
		n, err := config.Counter.IncrWindow(c.Request.Context(), "ratelimit:"+key, time.Minute)
		if err != nil {
			logger.Warning("rate limit counter unavailable:", err)
			c.Next()
			return
		}
		if n > int64(limit) {
			rejectRateLimited(c, key)
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Next()
	}
}

func rejectRateLimited(c *gin.Context, key string) {
	metrics.RateLimitHits.Inc()
	logger.Warningf("Rate limit exceeded for %s on %s", key, c.Request.URL.Path)
	c.Header("Retry-After", "60")
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate_limited"})
}
