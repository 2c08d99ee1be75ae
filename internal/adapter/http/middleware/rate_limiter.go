package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipRateLimiter keeps one token bucket per client IP. Entries idle past the
// TTL are swept out lazily on access, so the map stays bounded by the set of
// recently active clients rather than every IP ever seen.

type ipEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type ipRateLimiter struct {
	ips       map[string]*ipEntry
	mu        sync.Mutex
	rate      rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
}

func newIPRateLimiter(r rate.Limit, burst int, idleTTL time.Duration) *ipRateLimiter {
	return &ipRateLimiter{
		ips:       make(map[string]*ipEntry),
		rate:      r,
		burst:     burst,
		idleTTL:   idleTTL,
		lastSweep: time.Now(),
	}
}

func (rl *ipRateLimiter) limiter(ip string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.sweepLocked(now)

	if e, exists := rl.ips[ip]; exists {
		e.lastSeen = now
		return e.limiter
	}
	e := &ipEntry{limiter: rate.NewLimiter(rl.rate, rl.burst), lastSeen: now}
	rl.ips[ip] = e
	return e.limiter
}

// sweepLocked drops entries idle past the TTL, at most once per TTL. An
// evicted client restarts from a full bucket on its next request; with the
// TTL at a multiple of the window its bucket would have refilled anyway.
func (rl *ipRateLimiter) sweepLocked(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.idleTTL {
		return
	}
	rl.lastSweep = now
	for ip, e := range rl.ips {
		if now.Sub(e.lastSeen) > rl.idleTTL {
			delete(rl.ips, ip)
		}
	}
}

// RateLimit allows at most max requests per client IP per window, smoothed
// over the window as a token bucket with burst max.
func RateLimit(window time.Duration, max int) gin.HandlerFunc {
	rl := newIPRateLimiter(rate.Every(window/time.Duration(max)), max, 2*window)

	return func(c *gin.Context) {
		if !rl.limiter(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Has excedido el número máximo de solicitudes. Intenta nuevamente más tarde.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
