package middleware

import (
	"fmt"
	"sync"
	"time"

	"github.com/ariebrainware/hospital-patient-manager/util"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// Rate limiting defaults
	defaultRateLimit  = 60          // 60 requests
	defaultRateWindow = time.Minute // per minute
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters drops a client once it has been idle for a full window,
// at which point its bucket would be full again anyway.
type clientLimiters struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	config    RateLimitConfig
	lastSweep time.Time
	now       func() time.Time
}

func newClientLimiters(config RateLimitConfig) *clientLimiters {
	return &clientLimiters{
		limiters:  map[string]*clientLimiter{},
		config:    config,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *clientLimiters) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.config.Window {
		l.sweep(now)
	}

	entry, ok := l.limiters[key]
	if !ok {
		entry = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(l.config.Window/time.Duration(l.config.Limit)), l.config.Limit),
		}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

func (l *clientLimiters) sweep(now time.Time) {
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= l.config.Window {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}

// RateLimiter creates a per-client token bucket middleware. A client may burst
// up to Limit requests and then gets Limit requests per Window.
func RateLimiter(config RateLimitConfig) gin.HandlerFunc {
	if config.Limit <= 0 {
		config.Limit = defaultRateLimit
	}
	if config.Window <= 0 {
		config.Window = defaultRateWindow
	}
	limiters := newClientLimiters(config)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if limiters.get(clientIP).Allow() {
			c.Next()
			return
		}

		c.Header("Retry-After", fmt.Sprintf("%d", int(config.Window/time.Duration(config.Limit)/time.Second)+1))
		util.CallTooManyRequests(c, util.APIErrorParams{
			Msg: "Too many requests. Please try again later.",
			Err: fmt.Errorf("rate limit exceeded for %s", clientIP),
		})
		c.Abort()
	}
}
