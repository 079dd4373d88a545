package handler

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// SecurityHeaders adds security response headers (CSP, X-Frame-Options, etc.)
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("X-XSS-Protection", "0")
		h.Set("Cross-Origin-Resource-Policy", "same-site")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		h.Set("Content-Security-Policy", "default-src 'self'; img-src 'self' data:; frame-ancestors 'none'")
		h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// Recover turns a panic in a handler into a generic 500 response.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				slog.Error("panic serving request",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", v,
					"stack", string(debug.Stack()),
				)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

const rateWindow = time.Minute

// limitStore counts requests per client key within rateWindow.
type limitStore interface {
	// allow records one request for key and reports whether it is within
	// limit. When it is not, retryAfter says when the client may try again.
	allow(ctx context.Context, key string, limit int) (ok bool, retryAfter time.Duration, err error)
}

// RateLimiter provides IP-based rate limiting.
type RateLimiter struct {
	maxPerMinute      int
	trustedProxyCount int
	store             limitStore
}

// NewRateLimiter creates an in-process rate limiter using a sliding window.
// Assumes a single trusted reverse proxy by default.
func NewRateLimiter(maxPerMinute int) *RateLimiter {
	return &RateLimiter{
		maxPerMinute:      maxPerMinute,
		trustedProxyCount: 1,
		store:             newMemoryStore(),
	}
}

// NewRedisRateLimiter creates a rate limiter whose counters live in Redis so
// that several instances share them. It uses a fixed one-minute window.
func NewRedisRateLimiter(maxPerMinute int, client *redis.Client) *RateLimiter {
	return &RateLimiter{
		maxPerMinute:      maxPerMinute,
		trustedProxyCount: 1,
		store:             &redisStore{client: client, prefix: "ratelimit:"},
	}
}

// Middleware returns an http.Handler that enforces rate limits. If the store
// fails the request is let through.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.clientIP(r)
		ok, retryAfter, err := rl.store.allow(r.Context(), ip, rl.maxPerMinute)
		if err != nil {
			slog.Warn("rate limit store unavailable", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if !ok {
			w.Header().Set("Retry-After", retryAfterSeconds(retryAfter))
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func retryAfterSeconds(d time.Duration) string {
	secs := int(d.Seconds()) + 1
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// clientIP extracts the real client IP, reading from the rightmost trusted
// proxy position in X-Forwarded-For to prevent spoofing.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" && rl.trustedProxyCount > 0 {
		parts := strings.Split(xff, ",")
		// The rightmost entry added by our infrastructure is at
		// index len(parts) - trustedProxyCount.
		idx := len(parts) - rl.trustedProxyCount
		if idx >= 0 && idx < len(parts) {
			return strings.TrimSpace(parts[idx])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// memoryStore is a sliding-window limitStore kept in process memory.
type memoryStore struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
}

type clientWindow struct {
	timestamps []time.Time
}

func newMemoryStore() *memoryStore {
	s := &memoryStore{clients: make(map[string]*clientWindow)}
	go s.cleanupLoop()
	return s
}

// cleanupLoop periodically removes stale entries from the clients map.
func (s *memoryStore) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		windowStart := time.Now().Add(-rateWindow)
		s.mu.Lock()
		for ip, cw := range s.clients {
			cw.prune(windowStart)
			if len(cw.timestamps) == 0 {
				delete(s.clients, ip)
			}
		}
		s.mu.Unlock()
	}
}

func (cw *clientWindow) prune(windowStart time.Time) {
	// in-place filter on shared backing array
	valid := cw.timestamps[:0]
	for _, ts := range cw.timestamps {
		if ts.After(windowStart) {
			valid = append(valid, ts)
		}
	}
	cw.timestamps = valid
}

func (s *memoryStore) allow(_ context.Context, key string, limit int) (bool, time.Duration, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	cw, ok := s.clients[key]
	if !ok {
		cw = &clientWindow{}
		s.clients[key] = cw
	}
	cw.prune(now.Add(-rateWindow))

	if len(cw.timestamps) >= limit {
		oldest := cw.timestamps[0]
		return false, oldest.Add(rateWindow).Sub(now), nil
	}
	cw.timestamps = append(cw.timestamps, now)
	return true, 0, nil
}

// redisStore is a fixed-window limitStore backed by INCR/PEXPIRE.
type redisStore struct {
	client *redis.Client
	prefix string
}

func (s *redisStore) allow(ctx context.Context, key string, limit int) (bool, time.Duration, error) {
	k := s.prefix + key

	n, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return false, 0, err
	}
	if n == 1 {
		if err := s.client.PExpire(ctx, k, rateWindow).Err(); err != nil {
			return false, 0, err
		}
	}
	if n <= int64(limit) {
		return true, 0, nil
	}

	ttl, err := s.client.PTTL(ctx, k).Result()
	if err != nil {
		return false, 0, err
	}
	if ttl < 0 {
		// counter lost its expiry; start a new window
		if err := s.client.PExpire(ctx, k, rateWindow).Err(); err != nil {
			return false, 0, err
		}
		ttl = rateWindow
	}
	return false, ttl, nil
}
