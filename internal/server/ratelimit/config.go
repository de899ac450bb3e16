package ratelimit

import (
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const defaultLimit = 300

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window; 0 means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

type envConfig struct {
	Enabled         bool          `env:"RATE_LIMIT_ENABLED"          envDefault:"true"`
	DefaultLimit    int           `env:"RATE_LIMIT_DEFAULT_LIMIT"    envDefault:"300"`
	DefaultWindow   time.Duration `env:"RATE_LIMIT_DEFAULT_WINDOW"   envDefault:"1m"`
	CleanupInterval time.Duration `env:"RATE_LIMIT_CLEANUP_INTERVAL" envDefault:"5m"`
	AnalyzePerHour  int           `env:"RATE_LIMIT_ANALYZE_PER_HOUR" envDefault:"20"`
	Whitelist       []string      `env:"RATE_LIMIT_WHITELIST"        envSeparator:","`
	Blacklist       []string      `env:"RATE_LIMIT_BLACKLIST"        envSeparator:","`
}

// LoadConfig loads rate limiting configuration from environment variables.
// Unparseable values fall back to the defaults.
func LoadConfig() *Config {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		log.Printf("[rate-limit] Invalid rate limit environment, using defaults: %v", err)
		ec = envConfig{
			Enabled:         true,
			DefaultLimit:    defaultLimit,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			AnalyzePerHour:  20,
		}
	}

	if !ec.Enabled {
		return &Config{Enabled: false}
	}

	endpoints := DefaultEndpointConfigs()
	for i := range endpoints {
		if endpoints[i].Path == "/api/analyze-voice" {
			endpoints[i].Limit = ec.AnalyzePerHour
		}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    ec.DefaultLimit,
		DefaultWindow:   ec.DefaultWindow,
		CleanupInterval: ec.CleanupInterval,
		Whitelist:       toSet(ec.Whitelist),
		Blacklist:       toSet(ec.Blacklist),
		EndpointConfigs: endpoints,
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: LLM calls cost money per request
		{Path: "/api/analyze-voice", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},

		// Tier 2: calls to the payment provider
		{Path: "/api/checkout", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},
		{Path: "/api/portal", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},

		// Tier 3: form submissions
		{Path: "/api/briefs", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/api/contact", Method: "POST", Limit: 10, Window: time.Hour, Burst: 3},

		// Stripe retries failed deliveries; never throttle them
		{Path: "/api/webhooks/", Method: "POST", Limit: 0},

		// Pages and reads use the default limit; health is unlimited in MatchEndpoint
	}
}

// toSet turns a list of IP addresses into a lookup set.
func toSet(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, ip := range list {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
