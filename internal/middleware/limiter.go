package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"storefront-be/internal/utils"

	"golang.org/x/time/rate"
)

// Rate Limit Tiers
const (
	// Login / register / uploads / test mail (Strict)
	limitStrict = rate.Limit(2)
	burstStrict = 5

	// General (Default)
	limitGeneral = rate.Limit(10)
	burstGeneral = 20

	// Internal / trusted services
	limitInternal = rate.Limit(100)
	burstInternal = 200
)

const (
	visitorIdle     = 3 * time.Minute
	cleanupInterval = time.Minute
)

var strictPrefixes = []string{
	"/api/auth/",
	"/api/admin/uploads",
	"/api/admin/test-email",
}

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per identity and tier.
type Limiter struct {
	internalKey string
	now         func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor
}

// NewLimiter builds a limiter. Requests carrying internalKey in X-Service-Auth
// get the internal tier; an empty key disables that tier.
func NewLimiter(internalKey string) *Limiter {
	return &Limiter{
		internalKey: internalKey,
		now:         time.Now,
		visitors:    make(map[string]*visitor),
	}
}

func (l *Limiter) get(key string, r rate.Limit, b int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		l.visitors[key] = &visitor{limiter, l.now()}
		return limiter
	}

	v.lastSeen = l.now()
	return v.limiter
}

// Sweep drops visitors idle for longer than visitorIdle.
func (l *Limiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, v := range l.visitors {
		if l.now().Sub(v.lastSeen) > visitorIdle {
			delete(l.visitors, key)
		}
	}
}

// Cleanup sweeps periodically until ctx is done.
func (l *Limiter) Cleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}

// Middleware must run after AuthMiddleware so signed-in users are keyed by id.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, burst, tier := l.resolveTier(r)
		key := fmt.Sprintf("%s:%s", identity(r), tier)

		if !l.get(key, limit, burst).Allow() {
			w.Header().Set("Retry-After", "1")
			writeError(w, r, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func identity(r *http.Request) string {
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return fmt.Sprintf("user:%d", userID)
	}
	if deviceID := r.Header.Get("X-Device-ID"); deviceID != "" {
		return "device:" + deviceID
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}

func (l *Limiter) resolveTier(r *http.Request) (rate.Limit, int, string) {
	if l.internalKey != "" && r.Header.Get("X-Service-Auth") == l.internalKey {
		return limitInternal, burstInternal, "internal"
	}

	for _, prefix := range strictPrefixes {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return limitStrict, burstStrict, "strict"
		}
	}

	return limitGeneral, burstGeneral, "general"
}
