package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the gateway.
type Config struct {
	App          AppConfig
	Auth         AuthConfig
	Fetcher      FetcherConfig
	Search       SearchConfig
	Cache        CacheConfig
	Logger       LoggerConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// AuthConfig defines authentication parameters. ServiceToken is the static
// bearer token agents present; Identity is the fixed string the validate
// operation returns.
type AuthConfig struct {
	ServiceToken          string
	Identity              string
	JWTSecret             string
	AccessTokenTTLMinutes int
}

// FetcherConfig controls the content fetcher.
type FetcherConfig struct {
	UserAgent      string
	TimeoutSeconds int
}

// SearchConfig controls the search gateway.
type SearchConfig struct {
	DefaultEngine  string
	TimeoutSeconds int
	MaxResults     int
}

// CacheConfig holds Redis connection values for the fetch page cache.
// An empty Addr disables caching entirely.
type CacheConfig struct {
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// NotificationConfig holds escalation notification endpoints.
type NotificationConfig struct {
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cacheDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "support-gateway"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8086"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 60),
		},
		Auth: AuthConfig{
			ServiceToken:          os.Getenv("AUTH_TOKEN"),
			Identity:              os.Getenv("SERVICE_IDENTITY"),
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
		},
		Fetcher: FetcherConfig{
			UserAgent:      getEnv("FETCH_USER_AGENT", "support-gateway/1.0"),
			TimeoutSeconds: getEnvAsInt("FETCH_TIMEOUT_SECONDS", 30),
		},
		Search: SearchConfig{
			DefaultEngine:  getEnv("SEARCH_DEFAULT_ENGINE", "duckduckgo"),
			TimeoutSeconds: getEnvAsInt("SEARCH_TIMEOUT_SECONDS", 20),
			MaxResults:     getEnvAsInt("SEARCH_MAX_RESULTS", 6),
		},
		Cache: CacheConfig{
			Addr:       os.Getenv("REDIS_ADDR"),
			Password:   os.Getenv("REDIS_PASSWORD"),
			DB:         cacheDB,
			TTLSeconds: getEnvAsInt("FETCH_CACHE_TTL_SECONDS", 300),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Notification: NotificationConfig{
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	if cfg.Auth.ServiceToken == "" {
		return nil, fmt.Errorf("AUTH_TOKEN must be set")
	}
	if cfg.Auth.Identity == "" {
		return nil, fmt.Errorf("SERVICE_IDENTITY must be set")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the per-fetch timeout duration.
func (f FetcherConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// Timeout returns the per-search timeout duration.
func (s SearchConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
