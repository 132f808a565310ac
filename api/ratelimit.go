package api

import (
	"context"
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL    = 10 * time.Minute
	limiterSweepEvery = time.Minute
	defaultPerMinute  = 60
	defaultRetryAfter = 60
)

type ipLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP. It guards the endpoints
// that mount dashboards and store events. Proxy headers are ignored unless
// TrustProxyHeaders is enabled, so clients cannot rotate X-Forwarded-For to
// get a fresh bucket.
type IPRateLimiter struct {
	mu         sync.Mutex
	limiters   map[string]*ipLimiterEntry
	rate       rate.Limit
	burst      int
	retryAfter int
	trustProxy bool
	now        func() time.Time
}

// NewIPRateLimiter creates a limiter that refills r tokens per second up to burst.
func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	retryAfter := defaultRetryAfter
	if r > 0 {
		if secs := int(math.Round(1 / float64(r))); secs > 0 {
			retryAfter = secs
		} else {
			retryAfter = 1
		}
	}
	return &IPRateLimiter{
		limiters:   make(map[string]*ipLimiterEntry),
		rate:       r,
		burst:      burst,
		retryAfter: retryAfter,
		now:        time.Now,
	}
}

// NewPerMinuteLimiter creates a limiter allowing perMinute requests per IP per
// minute with the given burst.
func NewPerMinuteLimiter(perMinute, burst int) *IPRateLimiter {
	if perMinute <= 0 {
		perMinute = defaultPerMinute
	}
	return NewIPRateLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
}

// TrustProxyHeaders makes the limiter key clients by X-Forwarded-For and
// X-Real-IP. Enable it only behind a reverse proxy that overwrites them.
func (rl *IPRateLimiter) TrustProxyHeaders(trust bool) *IPRateLimiter {
	rl.trustProxy = trust
	return rl
}

func (rl *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	entry, exists := rl.limiters[ip]
	if !exists {
		entry = &ipLimiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// Sweep evicts limiters not seen for ttl and returns how many were evicted.
func (rl *IPRateLimiter) Sweep(ttl time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	evicted := 0
	now := rl.now()
	for ip, entry := range rl.limiters {
		if now.Sub(entry.lastSeen) > ttl {
			delete(rl.limiters, ip)
			evicted++
		}
	}
	return evicted
}

// Run sweeps idle limiters every minute until ctx is done.
func (rl *IPRateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(limiterSweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.Sweep(limiterIdleTTL)
		case <-ctx.Done():
			return
		}
	}
}

// Size returns the number of tracked client IPs.
func (rl *IPRateLimiter) Size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// getClientIP returns the peer address. With trustProxy it prefers the proxy
// headers first.
func getClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if first = strings.TrimSpace(first); first != "" {
				return first
			}
		}
		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// ClientIP exposes the client address used for rate limiting and session metadata.
func ClientIP(r *http.Request, trustProxy bool) string {
	return getClientIP(r, trustProxy)
}

// Handler wraps next with per-IP limiting. Exceeding the limit answers 429.
func (rl *IPRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.getLimiter(getClientIP(r, rl.trustProxy)).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(rl.retryAfter))
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{"error": "too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HandlerFunc is Handler for plain handler functions.
func (rl *IPRateLimiter) HandlerFunc(next http.HandlerFunc) http.HandlerFunc {
	return rl.Handler(next).ServeHTTP
}
