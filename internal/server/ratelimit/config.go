package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Tier classifies requests by cost. A report build runs LLM calls and chart
// rendering, validation is pure computation, and health probes must never
// throttle.
type Tier string

const (
	TierGenerate  Tier = "generate"
	TierValidate  Tier = "validate"
	TierDefault   Tier = "default"
	TierUnlimited Tier = "unlimited"
)

// TierFor maps a request to its cost tier.
func TierFor(method, path string) Tier {
	switch {
	case method == "GET" && path == "/health":
		return TierUnlimited
	case method == "POST" && path == "/reports/validate":
		return TierValidate
	case method == "POST" && (path == "/reports" || strings.HasPrefix(path, "/reports/")):
		return TierGenerate
	default:
		return TierDefault
	}
}

// Quota is the request budget for one tier.
type Quota struct {
	Limit  int           // requests per window
	Window time.Duration // refill window
	Burst  int           // bucket capacity; defaults to Limit when 0
}

func (q Quota) capacity() int {
	if q.Burst > 0 {
		return q.Burst
	}
	return q.Limit
}

// Config holds the limiter configuration.
type Config struct {
	Enabled         bool
	CleanupInterval time.Duration
	AllowList       map[string]bool // client IDs that bypass all quotas
	DenyList        map[string]bool // client IDs that are always refused
	Quotas          map[Tier]Quota
}

// DefaultConfig returns the report server's standard tiering.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		CleanupInterval: 5 * time.Minute,
		AllowList:       map[string]bool{},
		DenyList:        map[string]bool{},
		Quotas: map[Tier]Quota{
			TierGenerate: {Limit: 10, Window: time.Hour, Burst: 2},
			TierValidate: {Limit: 100, Window: time.Minute, Burst: 10},
			TierDefault:  {Limit: 1000, Window: time.Minute},
		},
	}
}

// LoadConfig builds the limiter configuration from the environment on top
// of the defaults.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = envBool("RATE_LIMIT_ENABLED", true)
	if !cfg.Enabled {
		return cfg
	}

	cfg.CleanupInterval = envDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.AllowList = clientSet(os.Getenv("RATE_LIMIT_ALLOWLIST"))
	cfg.DenyList = clientSet(os.Getenv("RATE_LIMIT_DENYLIST"))

	generate := cfg.Quotas[TierGenerate]
	generate.Limit = envInt("RATE_LIMIT_GENERATE_PER_HOUR", generate.Limit)
	cfg.Quotas[TierGenerate] = generate

	validate := cfg.Quotas[TierValidate]
	validate.Limit = envInt("RATE_LIMIT_VALIDATE_PER_MINUTE", validate.Limit)
	cfg.Quotas[TierValidate] = validate

	return cfg
}

func envBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// clientSet parses a comma-separated client ID list into a lookup set.
func clientSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, id := range strings.Split(list, ",") {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = true
		}
	}
	return set
}
