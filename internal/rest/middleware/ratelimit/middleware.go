// Package ratelimit provides per-client request limiting for the REST server.
package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/sweeplabs/modsweep/internal/setup/config"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const errRateLimit = "rate limit exceeded"

// pruneInterval bounds how often idle limiter entries are swept.
const pruneInterval = 10 * time.Minute

type limiterState struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Middleware implements per-IP rate limiting for API requests.
type Middleware struct {
	mu        sync.Mutex
	limiters  map[string]*limiterState
	lastPrune time.Time
	config    *config.RateLimit
	logger    *zap.Logger
}

// New creates a new rate limiting middleware.
func New(config *config.RateLimit, logger *zap.Logger) *Middleware {
	return &Middleware{
		limiters:  make(map[string]*limiterState),
		lastPrune: time.Now(),
		config:    config,
		logger:    logger,
	}
}

// AsRESTMiddleware returns a bunrouter middleware handler for rate limiting.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		clientIP := clientIP(req.Request)

		if !m.allow(clientIP) {
			m.logger.Debug("Rate limit exceeded", zap.String("ip", clientIP))
			http.Error(w, errRateLimit, http.StatusTooManyRequests)

			return nil
		}

		return next(w, req)
	}
}

// allow reserves one token for the client, creating its limiter on first use.
func (m *Middleware) allow(clientIP string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()

	if now.Sub(m.lastPrune) > pruneInterval {
		for ip, state := range m.limiters {
			if now.Sub(state.lastSeen) > pruneInterval {
				delete(m.limiters, ip)
			}
		}

		m.lastPrune = now
	}

	state, ok := m.limiters[clientIP]
	if !ok {
		state = &limiterState{
			limiter: rate.NewLimiter(rate.Limit(m.config.RequestsPerSecond), m.config.BurstSize),
		}
		m.limiters[clientIP] = state
	}

	state.lastSeen = now

	return state.limiter.Allow()
}

// clientIP extracts the remote IP, falling back to the raw remote address.
func clientIP(req *http.Request) string {
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}

	return host
}
