package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultLimit           = 300
	defaultCleanupInterval = 5 * time.Minute
	bucketIdleTTL          = time.Hour
	healthPath             = "/healthz"
)

// LoadConfig reads rate limiting configuration from RATE_LIMIT_* environment
// variables, falling back to defaults for anything unset or unparseable.
func LoadConfig() *Config {
	if !envOr("RATE_LIMIT_ENABLED", strconv.ParseBool, true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envOr("RATE_LIMIT_DEFAULT_LIMIT", strconv.Atoi, defaultLimit),
		DefaultWindow:   envOr("RATE_LIMIT_DEFAULT_WINDOW", time.ParseDuration, time.Minute),
		CleanupInterval: envOr("RATE_LIMIT_CLEANUP_INTERVAL", time.ParseDuration, defaultCleanupInterval),
		Exempt:          parseClientList(os.Getenv("RATE_LIMIT_EXEMPT")),
		Rules:           DefaultRules(),
	}
}

// DefaultRules returns the per-route limits. Session creation runs profile
// extraction and question generation, so it gets the strictest budget; answer
// submission may call the external assist service and sits in the middle.
// Reads are covered by the default limit.
func DefaultRules() []Rule {
	return []Rule{
		{Path: "/api/v1/sessions", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/api/v1/sessions/", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/api/v1/sessions/", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 10},
	}
}

// envOr parses the named variable with parse, returning fallback when the
// variable is unset or does not parse.
func envOr[T any](key string, parse func(string) (T, error), fallback T) T {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := parse(raw)
	if err != nil {
		return fallback
	}
	return value
}

// parseClientList splits a comma-separated client id list into a lookup set.
func parseClientList(list string) map[string]bool {
	set := make(map[string]bool)
	for _, id := range strings.Split(list, ",") {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = true
		}
	}
	return set
}
