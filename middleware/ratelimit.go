// middleware/ratelimit.go
package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"assetdesk/utils"
)

// Per-client limiter for credential endpoints. Entries idle for an hour are
// dropped by the cleanup loop.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rate    rate.Limit
	burst   int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newRateLimiter(r rate.Limit, burst int) *rateLimiter {
	rl := &rateLimiter{
		clients: make(map[string]*clientLimiter),
		rate:    r,
		burst:   burst,
	}
	go rl.cleanup()
	return rl
}

func (rl *rateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.clients[key] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter.Allow()
}

func (rl *rateLimiter) cleanup() {
	for range time.Tick(10 * time.Minute) {
		rl.mu.Lock()
		for key, cl := range rl.clients {
			if time.Since(cl.lastSeen) > time.Hour {
				delete(rl.clients, key)
			}
		}
		rl.mu.Unlock()
	}
}

var loginLimiter = newRateLimiter(rate.Every(2*time.Second), 5)

// LoginRateLimit throttles login attempts per remote address.
func LoginRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}

		if !loginLimiter.allow(host) {
			utils.RespondWithError(w, http.StatusTooManyRequests, "too many login attempts, slow down")
			return
		}

		next.ServeHTTP(w, r)
	})
}
