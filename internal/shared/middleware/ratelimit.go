package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"bookshelf-api/internal/shared/response"
)

// DefaultLimiterIdleTTL is how long an untouched bucket is kept.
const DefaultLimiterIdleTTL = 5 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than idleTTL are evicted, at most once per idleTTL, on the request path.
type IPRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	rate      rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		limiters:  make(map[string]*clientLimiter),
		rate:      r,
		burst:     burst,
		idleTTL:   DefaultLimiterIdleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// GetLimiter returns the rate limiter for a given IP
func (l *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.evictIdle(now)
	}

	cl, ok := l.limiters[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// Len is the number of buckets currently held.
func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// evictIdle must be called with mu held.
func (l *IPRateLimiter) evictIdle(now time.Time) {
	for ip, cl := range l.limiters {
		if now.Sub(cl.lastSeen) > l.idleTTL {
			delete(l.limiters, ip)
		}
	}
	l.lastSweep = now
}

// RateLimit answers 429 with a Retry-After hint once a client IP drains its bucket.
func RateLimit(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		reservation := limiter.GetLimiter(GetClientIP(c)).Reserve()
		if !reservation.OK() {
			response.Abort(c, http.StatusTooManyRequests, "Too many requests")
			return
		}

		if delay := reservation.Delay(); delay > 0 {
			reservation.Cancel()
			retryAfter := int(math.Ceil(delay.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			response.Abort(c, http.StatusTooManyRequests, "Too many requests, retry in "+(time.Duration(retryAfter)*time.Second).String())
			return
		}

		c.Next()
	}
}
