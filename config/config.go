package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Scraper   ScraperConfig
	Graph     GraphConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the per-post Rod browser sessions.
type BrowserConfig struct {
	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// DefaultProxy is the proxy URL applied to every browser session.
	DefaultProxy string
}

// ScraperConfig controls per-post extraction behavior.
type ScraperConfig struct {
	// DefaultTimeout is the per-post extraction budget when the request
	// does not set one.
	DefaultTimeout time.Duration // default: 120s

	// MaxTimeout is the maximum per-post budget accepted from the client.
	MaxTimeout time.Duration // default: 300s

	// PostDelay is the pause between posts in a stream, throttling the
	// request rate against Instagram.
	PostDelay time.Duration // default: 2s
}

// GraphConfig holds the Facebook Graph API credentials and endpoint.
type GraphConfig struct {
	// BaseURL is the graph API root, including version.
	BaseURL string // default: "https://graph.facebook.com/v19.0"

	// BusinessID is the Instagram business account id used for hashtag
	// search and media lookups.
	BusinessID string

	// AccessToken authenticates all graph API calls.
	AccessToken string
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 2

	// Burst is the maximum burst size per API key.
	Burst int // default: 5
}

// CacheConfig controls the hashtag-id lookup cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached hashtag ids.
	MaxEntries int // default: 1000

	// TTL is how long a cached hashtag id stays valid.
	TTL time.Duration // default: 24h
}

// WebhookConfig controls the optional stream-completion webhook.
type WebhookConfig struct {
	// URL receives stream.completed / stream.failed events. Empty disables.
	URL string

	// Secret signs webhook bodies with HMAC-SHA256 when non-empty.
	Secret string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("HASHLENS_HOST", "0.0.0.0"),
			Port: envIntOr("HASHLENS_PORT", 8080),
			Mode: envOr("HASHLENS_MODE", "release"),
		},
		Browser: BrowserConfig{
			NoSandbox:    envBoolOr("HASHLENS_NO_SANDBOX", false),
			BrowserBin:   os.Getenv("HASHLENS_BROWSER_BIN"),
			DefaultProxy: os.Getenv("HASHLENS_PROXY"),
		},
		Scraper: ScraperConfig{
			DefaultTimeout: envDurationOr("HASHLENS_DEFAULT_TIMEOUT", 120*time.Second),
			MaxTimeout:     envDurationOr("HASHLENS_MAX_TIMEOUT", 300*time.Second),
			PostDelay:      envDurationOr("HASHLENS_POST_DELAY", 2*time.Second),
		},
		Graph: GraphConfig{
			BaseURL:     envOr("HASHLENS_GRAPH_BASE_URL", "https://graph.facebook.com/v19.0"),
			BusinessID:  os.Getenv("IG_BUSINESS_ID"),
			AccessToken: os.Getenv("ACCESS_TOKEN"),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("HASHLENS_AUTH_ENABLED", false),
			APIKeys: envSliceOr("HASHLENS_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("HASHLENS_RATE_RPS", 2.0),
			Burst:             envIntOr("HASHLENS_RATE_BURST", 5),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("HASHLENS_CACHE_MAX_ENTRIES", 1000),
			TTL:        envDurationOr("HASHLENS_CACHE_TTL", 24*time.Hour),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("HASHLENS_WEBHOOK_URL"),
			Secret: os.Getenv("HASHLENS_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("HASHLENS_LOG_LEVEL", "info"),
			Format: envOr("HASHLENS_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
