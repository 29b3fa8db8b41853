package v1

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	visitorCleanupInterval = time.Minute
	visitorIdleTimeout     = 3 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits requests per client IP.
type RateLimiter struct {
	rps   rate.Limit
	burst int

	mu       sync.Mutex
	visitors map[string]*visitor
}

// NewRateLimiter starts a goroutine forgetting idle clients until ctx is
// done.
func NewRateLimiter(ctx context.Context, rps float64, burst int) *RateLimiter {
	l := &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		visitors: make(map[string]*visitor),
	}
	go l.cleanup(ctx)
	return l
}

func (l *RateLimiter) cleanup(ctx context.Context) {
	ticker := time.NewTicker(visitorCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.forgetIdle(time.Now())
		}
	}
}

func (l *RateLimiter) forgetIdle(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) >= visitorIdleTimeout {
			delete(l.visitors, ip)
		}
	}
}

// Allow reports whether a request from ip may proceed.
func (l *RateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

func (l *RateLimiter) Handle(c *gin.Context) {
	if !l.Allow(c.ClientIP()) {
		abort(c, newAPIError(http.StatusTooManyRequests, msgTooManyRequests))
		return
	}
	c.Next()
}
