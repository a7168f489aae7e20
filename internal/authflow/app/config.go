package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	TrustSecret string // Required: HMAC secret for the device-trust token
	AdminToken  string // Optional: token required for operator endpoints; empty disables them

	DatabaseFile  string        // Optional: path to SQLite database file (default: ./authflow.db)
	PepperFile    string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	CookieSecure  bool          // Mark cookies Secure (default: true; disable for local dev)
	CodeTTL       time.Duration // Verification code lifetime (default: 10m)
	TrustTTL      time.Duration // Device-trust window (default: 168h)
	SessionTTL    time.Duration // Session lifetime (default: 24h)
	Mailer        string        // Mailer backend (smtp, log) (default: smtp)
	SMTPHost      string        // SMTP server hostname
	SMTPPort      int           // SMTP server port (default: 587)
	SMTPUsername  string        // Optional: SMTP auth username
	SMTPPassword  string        // Optional: SMTP auth password
	SMTPFrom      string        // Sender address for verification mail

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		TrustSecret: os.Getenv("AUTHFLOW_TRUST_SECRET"),
		AdminToken:  os.Getenv("AUTHFLOW_ADMIN_TOKEN"),

		DatabaseFile: getEnvOrDefault("AUTHFLOW_DATABASE_FILE", "authflow.db"),
		PepperFile:   getEnvOrDefault("AUTHFLOW_PEPPER_FILE", "pepper"),
		CookieSecure: getEnvOrDefault("AUTHFLOW_COOKIE_SECURE", "true") == "true",
		CodeTTL:      getEnvDurationOrDefault("AUTHFLOW_CODE_TTL", 10*time.Minute),
		TrustTTL:     getEnvDurationOrDefault("AUTHFLOW_TRUST_TTL", 7*24*time.Hour),
		SessionTTL:   getEnvDurationOrDefault("AUTHFLOW_SESSION_TTL", 24*time.Hour),

		Mailer:       getEnvOrDefault("AUTHFLOW_MAILER", "smtp"),
		SMTPHost:     os.Getenv("AUTHFLOW_SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("AUTHFLOW_SMTP_PORT", 587),
		SMTPUsername: os.Getenv("AUTHFLOW_SMTP_USERNAME"),
		SMTPPassword: os.Getenv("AUTHFLOW_SMTP_PASSWORD"),
		SMTPFrom:     getEnvOrDefault("AUTHFLOW_SMTP_FROM", "noreply@localhost"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
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
