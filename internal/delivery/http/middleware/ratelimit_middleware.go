package middleware

import (
	"math"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"holo-api/pkg/response"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type RateLimiterConfig struct {
	Rate            rate.Limit
	Burst           int
	CleanupInterval time.Duration
	// TrustForwardedFor keys clients by X-Forwarded-For. Enable it only
	// behind a proxy that overwrites or appends to the header.
	TrustForwardedFor bool
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter applies a token bucket per client IP. Idle entries are
// dropped by a background goroutine until Stop is called.
type RateLimiter struct {
	config RateLimiterConfig
	log    *logrus.Logger

	mu       sync.Mutex
	limiters map[string]*clientLimiter

	stopOnce sync.Once
	stopCh   chan struct{}
}

func NewRateLimiter(config RateLimiterConfig, log *logrus.Logger) *RateLimiter {
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 5 * time.Minute
	}
	if config.Burst <= 0 {
		config.Burst = 1
	}

	rl := &RateLimiter{
		config:   config,
		log:      log,
		limiters: make(map[string]*clientLimiter),
		stopCh:   make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Handle is a no-op when the configured rate is not positive.
func (rl *RateLimiter) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.config.Rate <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		ip := ClientIP(r, rl.config.TrustForwardedFor)
		if !rl.limiterFor(ip).Allow() {
			rl.log.WithFields(logrus.Fields{
				"remote_ip": ip,
				"path":      r.URL.Path,
			}).Warn("rate limit exceeded")
			response.TooManyRequests(w, "Too many requests, please try again later", rl.retryAfter())
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) ClientCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.limiters[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.config.Rate, rl.config.Burst)}
		rl.limiters[ip] = cl
	}
	cl.lastAccess = time.Now()
	return cl.limiter
}

func (rl *RateLimiter) retryAfter() int {
	seconds := int(math.Ceil(1.0 / float64(rl.config.Rate)))
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup drops entries idle for more than two cleanup intervals.
func (rl *RateLimiter) cleanup(now time.Time) {
	ttl := rl.config.CleanupInterval * 2

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, cl := range rl.limiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.limiters, ip)
		}
	}
}

// ClientIP returns the connection address. With trustForwardedFor it
// returns the last X-Forwarded-For hop instead, which is the address the
// nearest proxy saw; earlier hops are client supplied.
func ClientIP(r *http.Request, trustForwardedFor bool) string {
	if trustForwardedFor {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			hops := strings.Split(fwd, ",")
			if ip := strings.TrimSpace(hops[len(hops)-1]); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
