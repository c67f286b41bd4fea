package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig sizes the per-client token bucket.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

const (
	limiterSweepEvery = 5 * time.Minute
	limiterStaleAfter = 10 * time.Minute
)

// clientLimiters holds one token bucket per client IP and drops buckets for
// clients that have gone quiet.
type clientLimiters struct {
	cfg     RateLimitConfig
	buckets sync.Map // ip -> *clientBucket
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func (c *clientLimiters) get(ip string) *rate.Limiter {
	if v, ok := c.buckets.Load(ip); ok {
		b := v.(*clientBucket)
		b.lastSeen = time.Now()
		return b.limiter
	}
	b := &clientBucket{
		limiter:  rate.NewLimiter(rate.Limit(c.cfg.RequestsPerSecond), c.cfg.Burst),
		lastSeen: time.Now(),
	}
	c.buckets.Store(ip, b)
	return b.limiter
}

func (c *clientLimiters) sweep() {
	for {
		time.Sleep(limiterSweepEvery)
		c.buckets.Range(func(key, value any) bool {
			if time.Since(value.(*clientBucket).lastSeen) > limiterStaleAfter {
				c.buckets.Delete(key)
			}
			return true
		})
	}
}

// RateLimiter returns a middleware enforcing cfg per client IP. Requests over
// the limit get 429 with a Retry-After hint; admitted requests carry the
// usual X-RateLimit-* headers.
func RateLimiter(cfg RateLimitConfig) func(http.Handler) http.Handler {
	clients := &clientLimiters{cfg: cfg}
	go clients.sweep()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter := clients.get(clientIP(r))

			res := limiter.Reserve()
			if !res.OK() {
				writeTooManyRequests(w, 0)
				return
			}
			if delay := res.Delay(); delay > 0 {
				// Over the sustained rate. Give the tokens back so the
				// rejected request doesn't eat into the next window.
				res.Cancel()
				writeTooManyRequests(w, int(delay.Seconds())+1)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Burst))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Second).Unix(), 10))
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP keys the limiter by RemoteAddr without the port. X-Forwarded-For
// is deliberately ignored: a spoofable header must not select the bucket.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeTooManyRequests(w http.ResponseWriter, retryAfterSecs int) {
	if retryAfterSecs > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSecs))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    429,
		"message": "rate limit exceeded",
	})
}
