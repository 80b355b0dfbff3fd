package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/wukonglabs/wukong/internal/auth/service"
)

type Config struct {
	Issuer   string // Issuer claim for session credentials and ID assertions (default: wukong-auth)
	ClientID string // The single registered client, the console (default: console)

	CookieSecret string // Required: deployment secret all signing keys derive from
	CookieName   string // Session cookie name (default: wukong_session)
	CookieDomain string // Optional: cookie Domain attribute

	AuthMode        string // strict or dev-fallback (default: strict; dev-fallback refused when ENV=prod)
	DefaultRedirect string // Where a login lands without an explicit target (default: /)

	DatabaseFile string // Path to the SQLite database file (default: wukong-auth.db)
	RedisAddr    string // Optional: host:port; grants move to Redis when set
	RedisPass    string // Optional: Redis password
	RedisDB      int    // Optional: Redis logical database (default: 0)

	CodeTTL        time.Duration // Authorization code lifetime (default: 10m)
	AccessTokenTTL time.Duration // Opaque access token lifetime (default: 1h)
	SessionTTL     time.Duration // Session credential lifetime (default: 8760h)
	DeviceTTL      time.Duration // Device session lifetime (default: 720h)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	SweepInterval       time.Duration // Expired grant/session purge interval (default: 5m)
}

func LoadConfig() (Config, error) {
	cfg := Config{
		Issuer:   getEnvOrDefault("AUTH_ISSUER", "wukong-auth"),
		ClientID: getEnvOrDefault("AUTH_CLIENT_ID", "console"),

		CookieSecret: os.Getenv("AUTH_COOKIE_SECRET"),
		CookieName:   getEnvOrDefault("AUTH_COOKIE_NAME", "wukong_session"),
		CookieDomain: os.Getenv("AUTH_COOKIE_DOMAIN"),

		AuthMode:        getEnvOrDefault("AUTH_MODE", string(service.ModeStrict)),
		DefaultRedirect: getEnvOrDefault("AUTH_DEFAULT_REDIRECT", "/"),

		DatabaseFile: getEnvOrDefault("AUTH_DATABASE_FILE", "wukong-auth.db"),
		RedisAddr:    os.Getenv("AUTH_REDIS_ADDR"),
		RedisPass:    os.Getenv("AUTH_REDIS_PASSWORD"),
		RedisDB:      getEnvIntOrDefault("AUTH_REDIS_DB", 0),

		CodeTTL:        getEnvDurationOrDefault("AUTH_CODE_TTL", service.DefaultCodeTTL),
		AccessTokenTTL: getEnvDurationOrDefault("AUTH_ACCESS_TOKEN_TTL", service.DefaultAccessTokenTTL),
		SessionTTL:     getEnvDurationOrDefault("AUTH_SESSION_TTL", service.DefaultSessionTTL),
		DeviceTTL:      getEnvDurationOrDefault("AUTH_DEVICE_SESSION_TTL", service.DefaultDeviceSessionTTL),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		SweepInterval:       getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", service.DefaultSweepInterval),
	}

	if cfg.CookieSecret == "" {
		return cfg, fmt.Errorf("AUTH_COOKIE_SECRET is required")
	}

	switch service.AuthenticationMode(cfg.AuthMode) {
	case service.ModeStrict:
	case service.ModeDevFallback:
		// The fallback mints a real identity for any unknown code, so it can
		// never be allowed near production.
		if cfg.Env == "prod" {
			return cfg, fmt.Errorf("AUTH_MODE=dev-fallback is not permitted when ENV=prod")
		}
	default:
		return cfg, fmt.Errorf("unknown AUTH_MODE %q", cfg.AuthMode)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are read as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
