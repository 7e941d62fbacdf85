package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds the MCP server defaults, read once at startup.
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Check tool defaults.
	Strict              bool
	DefaultTypeToObject bool
	Concurrency         int

	// Input limits.
	MaxInlineSize   int64
	MaxLimit        int
	AllowPrivateIPs bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASCOMPAT_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
// OASCOMPAT_CACHE_TTL sets the file and content TTLs at once; the specific
// variables win over it.
func loadConfig() *serverConfig {
	ttl := envDuration("OASCOMPAT_CACHE_TTL", 15*time.Minute)
	return &serverConfig{
		CacheEnabled:        envBool("OASCOMPAT_CACHE_ENABLED", true),
		CacheMaxSize:        envInt("OASCOMPAT_CACHE_MAX_SIZE", 10),
		CacheFileTTL:        envDuration("OASCOMPAT_CACHE_FILE_TTL", ttl),
		CacheURLTTL:         envDuration("OASCOMPAT_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:     envDuration("OASCOMPAT_CACHE_CONTENT_TTL", ttl),
		CacheSweepInterval:  envDuration("OASCOMPAT_CACHE_SWEEP_INTERVAL", 60*time.Second),
		Strict:              envBool("OASCOMPAT_STRICT", false),
		DefaultTypeToObject: envBool("OASCOMPAT_DEFAULT_TYPE_TO_OBJECT", false),
		Concurrency:         envInt("OASCOMPAT_CONCURRENCY", 4),
		MaxInlineSize:       int64(envInt("OASCOMPAT_MAX_INLINE_SIZE", 10*1024*1024)),
		MaxLimit:            envInt("OASCOMPAT_MAX_LIMIT", 1000),
		AllowPrivateIPs:     envBool("OASCOMPAT_ALLOW_PRIVATE_IPS", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
