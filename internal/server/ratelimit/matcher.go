package ratelimit

import (
	"strings"
)

// unlimited is returned for requests that are never throttled.
var unlimited = EndpointConfig{Limit: 0}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// A config path ending in "/" matches every path below it.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	method = strings.ToUpper(method)

	// Health checks and CORS preflights are free
	if (path == "/health" && method == "GET") || method == "OPTIONS" {
		cfg := unlimited
		return &cfg
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		cfg := &configs[i]
		if cfg.Method == method && strings.HasSuffix(cfg.Path, "/") && strings.HasPrefix(path, cfg.Path) {
			return cfg
		}
	}

	return nil
}
