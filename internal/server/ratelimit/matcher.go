package ratelimit

import "strings"

// MatchEndpoint resolves the rate limit configuration for a request.
// Exact path+method matches win; configs whose path ends in "/" act as
// prefix rules for id-bearing routes ("/api/resumes/" covers
// "/api/resumes/{id}"). The health check is always unmetered. A nil
// return means the caller's default applies.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		// a zero limit means unmetered
		return &EndpointConfig{}
	}

	var prefixMatch *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if config.Method != method {
			continue
		}
		if config.Path == path {
			return config
		}
		if prefixMatch == nil && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			prefixMatch = config
		}
	}
	return prefixMatch
}
