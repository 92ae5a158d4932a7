package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)

	DatabaseFile string // Optional: path to SQLite database file (default: ./auth.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	// AuthcodeSecret seals /o/authcode codes. Empty means the contents of
	// MasterKeyFile, then AUTH_MASTER_KEY, then an ephemeral key.
	AuthcodeSecret string
	MasterKeyFile  string

	CodeTTL         time.Duration // Authorization code lifetime (default: 5m)
	AccessTokenTTL  time.Duration // Access token lifetime (default: 10h)
	RefreshTokenTTL time.Duration // Refresh token lifetime (default: 30 days)
	AuthcodeTTL     time.Duration // Encrypted authcode lifetime (default: 60s)
	DefaultClientID string        // Client used by password grants without client_id (default: public)

	BackoffPeriod   time.Duration // Base delay after the first failed login (default: 2s)
	BackoffMaximum  time.Duration // Ceiling on the login delay (default: 1h)
	BackoffRedisURL string        // Optional: redis://... shares backoff state across replicas

	AuditAMQPURL      string // Optional: amqp://... publishes audit events to RabbitMQ
	AuditAMQPExchange string // Exchange for audit events (default: badgr.audit)

	MetricsEnabled bool   // Enables the OpenTelemetry SDK meter provider (default: false)
	ManifestFile   string // Optional: YAML file with Badge Connect manifest apps
}

func LoadConfig() Config {
	return Config{
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),

		DatabaseFile: getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		PepperFile:   getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),

		AuthcodeSecret: os.Getenv("AUTH_AUTHCODE_SECRET"),
		MasterKeyFile:  os.Getenv("AUTH_MASTER_KEY_FILE"),

		CodeTTL:         getEnvDurationOrDefault("AUTH_CODE_TTL", 5*time.Minute),
		AccessTokenTTL:  getEnvDurationOrDefault("AUTH_ACCESS_TOKEN_TTL", 10*time.Hour),
		RefreshTokenTTL: getEnvDurationOrDefault("AUTH_REFRESH_TOKEN_TTL", 30*24*time.Hour),
		AuthcodeTTL:     getEnvDurationOrDefault("AUTH_AUTHCODE_TTL", 60*time.Second),
		DefaultClientID: getEnvOrDefault("AUTH_DEFAULT_CLIENT_ID", "public"),

		BackoffPeriod:   getEnvDurationOrDefault("BACKOFF_PERIOD", 2*time.Second),
		BackoffMaximum:  getEnvDurationOrDefault("BACKOFF_MAXIMUM", 1*time.Hour),
		BackoffRedisURL: os.Getenv("BACKOFF_REDIS_URL"),

		AuditAMQPURL:      os.Getenv("AUDIT_AMQP_URL"),
		AuditAMQPExchange: getEnvOrDefault("AUDIT_AMQP_EXCHANGE", "badgr.audit"),

		MetricsEnabled: getEnvBoolOrDefault("METRICS_ENABLED", false),
		ManifestFile:   os.Getenv("BADGE_CONNECT_MANIFEST_FILE"),
	}
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
