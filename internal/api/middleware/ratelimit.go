package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimit caps requests per client IP. It guards the credential endpoints,
// where every request costs a bcrypt comparison. A limit of 0 disables the
// middleware. The key is the connection's remote address; forwarding headers
// are not trusted.
func RateLimit(perMinute int) func(http.Handler) http.Handler {
	store := newLimiterStore(perMinute)
	return func(next http.Handler) http.Handler {
		if perMinute <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !store.limiter(clientIP(r)).Allow() {
				w.Header().Set("Retry-After", "60")
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type limiterStore struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	perMinute int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLimiterStore(perMinute int) *limiterStore {
	store := &limiterStore{
		limiters:  make(map[string]*limiterEntry),
		perMinute: perMinute,
	}
	if perMinute > 0 {
		go store.cleanupLoop()
	}
	return store
}

func (s *limiterStore) limiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.limiters[key]; ok {
		entry.lastSeen = time.Now()
		return entry.limiter
	}

	interval := time.Minute / time.Duration(s.perMinute)
	entry := &limiterEntry{
		limiter:  rate.NewLimiter(rate.Every(interval), s.perMinute),
		lastSeen: time.Now(),
	}
	s.limiters[key] = entry
	return entry.limiter
}

// cleanupLoop drops entries not seen in 15 minutes so the map stays bounded
// under churn.
func (s *limiterStore) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.cleanup()
	}
}

func (s *limiterStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, entry := range s.limiters {
		if now.Sub(entry.lastSeen) > 15*time.Minute {
			delete(s.limiters, key)
		}
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
