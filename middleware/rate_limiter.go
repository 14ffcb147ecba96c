package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const limiterIdleTimeout = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterRegistry tracks one rate limiter per client IP and evicts entries
// that have gone idle so the map does not grow without bound.
type limiterRegistry struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
}

func newLimiterRegistry() *limiterRegistry {
	r := &limiterRegistry{clients: make(map[string]*clientLimiter)}
	go r.evictIdle()
	return r
}

func (r *limiterRegistry) get(ip string, perMinute int) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.clients[ip]
	if !ok {
		entry = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		}
		r.clients[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

func (r *limiterRegistry) evictIdle() {
	for range time.Tick(time.Minute) {
		cutoff := time.Now().Add(-limiterIdleTimeout)
		r.mu.Lock()
		for ip, entry := range r.clients {
			if entry.lastSeen.Before(cutoff) {
				delete(r.clients, ip)
			}
		}
		r.mu.Unlock()
	}
}

var registry = newLimiterRegistry()

// RateLimitMiddleware limits each client IP to perMinute requests per minute.
func RateLimitMiddleware(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		perMinute = 100
	}
	return func(c *gin.Context) {
		ip := getClientIP(c)
		if !registry.get(ip, perMinute).Allow() {
			zap.L().Warn("rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Try again later.",
			})
			return
		}
		c.Next()
	}
}
