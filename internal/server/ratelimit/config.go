package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the rate limit for one endpoint. A Path ending in "/"
// is a prefix rule; Burst of 0 falls back to Limit.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// LoadConfig builds the limiter configuration from RATE_LIMIT_*
// environment variables, with the per-endpoint table fixed in code.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       splitClientList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       splitClientList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint limits.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: expensive operations. Evaluation and URL ingestion call
		// out to the embedding provider and remote job boards.
		{Path: "/api/evaluate", Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},
		{Path: "/api/evaluate/batch", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		{Path: "/api/evaluate/batch/stream", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		{Path: "/api/job-descriptions", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},

		// Tier 2: writes
		{Path: "/api/resumes", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/api/resumes/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/api/job-descriptions/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},

		// Tier 3: login brute-force protection
		{Path: "/auth/login", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},

		// Reads ride the default limit; /health is handled by the matcher.
	}
}

func envBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}

// splitClientList parses a comma-separated list of client IPs into a
// membership set.
func splitClientList(list string) map[string]bool {
	members := make(map[string]bool)
	for _, entry := range strings.Split(list, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			members[entry] = true
		}
	}
	return members
}
