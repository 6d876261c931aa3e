// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipLimiter keeps one token bucket per client IP and drops buckets
// idle for more than three minutes.
type ipLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    rate.Limit
	burst   int
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(r rate.Limit, burst int) *ipLimiter {
	l := &ipLimiter{
		buckets: make(map[string]*bucket),
		rate:    r,
		burst:   burst,
	}
	go l.evictLoop()
	return l
}

func (l *ipLimiter) evictLoop() {
	for range time.Tick(time.Minute) {
		l.mu.Lock()
		for ip, b := range l.buckets {
			if time.Since(b.lastSeen) > 3*time.Minute {
				delete(l.buckets, ip)
			}
		}
		l.mu.Unlock()
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = time.Now()

	return b.limiter.Allow()
}

func (l *ipLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}

// Tiers: the public form and auth endpoints get tight limits, uploads
// sit in between, everything else shares the general bucket.
var (
	generalLimiter = newIPLimiter(rate.Every(time.Second), 10)
	authLimiter    = newIPLimiter(rate.Every(time.Minute), 5)
	uploadLimiter  = newIPLimiter(rate.Every(time.Minute), 10)
	contactLimiter = newIPLimiter(rate.Every(time.Minute), 3)
)

func GeneralRateLimit() gin.HandlerFunc { return generalLimiter.middleware() }
func AuthRateLimit() gin.HandlerFunc    { return authLimiter.middleware() }
func UploadRateLimit() gin.HandlerFunc  { return uploadLimiter.middleware() }
func ContactRateLimit() gin.HandlerFunc { return contactLimiter.middleware() }
