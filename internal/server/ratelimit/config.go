package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Defaults used when the environment does not override them
const (
	DefaultLimit           = 600
	DefaultWindow          = time.Minute
	DefaultCleanupInterval = 5 * time.Minute
)

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", DefaultLimit),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", DefaultWindow),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", DefaultCleanupInterval),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(getEnvInt("RATE_LIMIT_ASSESSMENTS_PER_HOUR", 60)),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific limits. Assessments can
// call a text generation provider, so they get the strictest bucket.
func DefaultEndpointConfigs(assessmentsPerHour int) []EndpointConfig {
	burst := assessmentsPerHour / 10
	if burst < 1 {
		burst = 1
	}
	return []EndpointConfig{
		{Path: "/assessments", Method: "POST", Limit: assessmentsPerHour, Window: time.Hour, Burst: burst},
		{Path: "/footprint", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/actions", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},
		// Reads and /health fall through to the default limit and the matcher's special case
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
