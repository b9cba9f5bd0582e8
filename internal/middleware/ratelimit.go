package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/shopstack-asia/spi-sdb-app/internal/result"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client address.
type IPRateLimiter struct {
	mu     sync.Mutex
	ips    map[string]*visitor
	r      rate.Limit
	b      int
	idle   time.Duration
	sweeps int
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips:  make(map[string]*visitor),
		r:    r,
		b:    b,
		idle: 10 * time.Minute,
	}
}

func (i *IPRateLimiter) Allow(ip string, now time.Time) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	v, ok := i.ips[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(i.r, i.b)}
		i.ips[ip] = v
	}
	v.lastSeen = now

	i.sweeps++
	if i.sweeps >= 1000 {
		i.sweeps = 0
		for k, other := range i.ips {
			if now.Sub(other.lastSeen) > i.idle {
				delete(i.ips, k)
			}
		}
	}
	return v.limiter.AllowN(now, 1)
}

func RateLimit(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewIPRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP(), time.Now()) {
			result.Abort(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}
