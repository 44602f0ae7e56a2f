package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	perr "dashkit/internal/platform/errors"
	pnet "dashkit/internal/platform/net"
	phttp "dashkit/internal/platform/net/http"

	"golang.org/x/time/rate"
)

// RateLimitOptions configures the per client token bucket
type RateLimitOptions struct {
	// RPS is the sustained rate per client, <= 0 disables limiting
	RPS float64
	// Burst is the bucket size, defaults to ceil(RPS)
	Burst int
	// TTL evicts buckets of clients idle for longer, defaults to 10m
	TTL time.Duration
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter keeps one limiter per client ip
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
	ttl     time.Duration
	swept   time.Time
	now     func() time.Time
}

// NewRateLimiter builds a limiter from opt
func NewRateLimiter(opt RateLimitOptions) *RateLimiter {
	burst := opt.Burst
	if burst <= 0 {
		burst = int(math.Ceil(opt.RPS))
	}
	ttl := opt.TTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RateLimiter{
		buckets: map[string]*bucket{},
		limit:   rate.Limit(opt.RPS),
		burst:   max(burst, 1),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Allow reports whether key may proceed now, and if not how long until it may
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(rl.limit, rl.burst)}
		rl.buckets[key] = b
	}
	b.seen = now

	res := b.lim.ReserveN(now, 1)
	if d := res.DelayFrom(now); d > 0 {
		res.CancelAt(now)
		return false, d
	}
	return true, 0
}

// Len is the number of tracked clients
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}

// sweep drops idle buckets at most once per ttl; caller holds mu
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.swept) < rl.ttl {
		return
	}
	for k, b := range rl.buckets {
		if now.Sub(b.seen) >= rl.ttl {
			delete(rl.buckets, k)
		}
	}
	rl.swept = now
}

// Handler rejects requests over the limit with a 429 envelope and Retry-After
func (rl *RateLimiter) Handler() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, wait := rl.Allow(pnet.ClientIP(r))
			if !ok {
				secs := int(math.Ceil(wait.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
				phttp.RespondError(w, r, perr.Newf(perr.ErrorCodeTooManyRequests, "rate limit exceeded"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit is the middleware form of NewRateLimiter; a non positive RPS passes everything
func RateLimit(opt RateLimitOptions) Middleware {
	if opt.RPS <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return NewRateLimiter(opt).Handler()
}
