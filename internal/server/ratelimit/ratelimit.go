// Package ratelimit provides per-client request limiting using token buckets.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// Rule is the rate limit for one route. A Path ending in "/" matches by
// prefix; any other Path requires an exact match.
type Rule struct {
	Path   string
	Method string
	Limit  int // maximum requests per Window
	Window time.Duration
	Burst  int // bucket capacity; defaults to Limit when 0
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Exempt          map[string]bool // client IDs that bypass limiting
	Rules           []Rule
}

// Info reports the limiter's view of one request.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// clientBucket pairs a bucket with its last access time so idle entries can
// be dropped by the cleanup loop.
type clientBucket struct {
	bucket   *tokenBucket
	lastSeen time.Time
}

// Limiter tracks one token bucket per client and matched rule.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*clientBucket
	config  *Config

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// NewLimiter creates a rate limiter with the given configuration. A nil
// config enables limiting with the package defaults.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    defaultLimit,
			DefaultWindow:   time.Minute,
			CleanupInterval: defaultCleanupInterval,
			Rules:           DefaultRules(),
		}
	}

	l := &Limiter{
		buckets: make(map[string]*clientBucket),
		config:  config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanupLoop()
	}

	return l
}

// Allow reports whether a request from the given client for the path and
// method may proceed, along with rate limit information for response headers.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Exempt[clientID] {
		return true, Info{Allowed: true}
	}

	rule := l.matchRule(path, method)
	if rule.Limit <= 0 {
		// Unlimited route, e.g. the health check.
		return true, Info{Allowed: true}
	}

	// Buckets are keyed by rule rather than by concrete path, so requests to
	// /api/v1/sessions/{a} and /api/v1/sessions/{b} share one budget.
	key := clientID + ":" + rule.Method + ":" + rule.Path
	allowed, remaining, reset := l.bucketFor(key, rule).take()

	info := Info{
		Allowed:   allowed,
		Limit:     rule.Limit,
		Remaining: remaining,
		ResetTime: reset,
	}
	if !allowed {
		if retryAfter := time.Until(reset); retryAfter > 0 {
			info.RetryAfter = retryAfter
		}
	}

	return allowed, info
}

// matchRule finds the rule covering a request: exact path matches win over
// prefix matches, and unmatched requests fall back to the default limit.
func (l *Limiter) matchRule(path, method string) Rule {
	if path == healthPath {
		return Rule{}
	}

	for _, r := range l.config.Rules {
		if r.Method == method && r.Path == path {
			return r
		}
	}

	for _, r := range l.config.Rules {
		if r.Method == method && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			return r
		}
	}

	return Rule{Path: "*", Limit: l.config.DefaultLimit, Window: l.config.DefaultWindow}
}

// bucketFor returns the bucket for the given key, creating it on first use,
// and records the access time for cleanup.
func (l *Limiter) bucketFor(key string, r Rule) *tokenBucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	cb, ok := l.buckets[key]
	if !ok {
		burst := r.Burst
		if burst <= 0 {
			burst = r.Limit
		}
		cb = &clientBucket{bucket: newTokenBucket(burst, float64(r.Limit)/r.Window.Seconds())}
		l.buckets[key] = cb
	}
	cb.lastSeen = time.Now()

	return cb.bucket
}

// cleanupLoop periodically drops buckets idle for longer than bucketIdleTTL.
func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.removeIdle(time.Now().Add(-bucketIdleTTL))
		case <-l.cleanupStop:
			return
		}
	}
}

func (l *Limiter) removeIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, cb := range l.buckets {
		if cb.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
	}
	if l.cleanupStop != nil {
		close(l.cleanupStop)
	}
}
