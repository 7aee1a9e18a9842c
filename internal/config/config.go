package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"bookshelf-api/internal/infrastructure/database"
)

// Config is populated from environment variables (optionally seeded from .env).
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Database  *database.DBConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type HTTPConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	// TrustedProxies lists the IPs/CIDRs whose forwarding headers are believed.
	// Empty means the socket peer is always the client.
	TrustedProxies  []string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

// Load reads the full configuration and validates it.
func Load() (*Config, error) {
	dbConfig, err := LoadDatabaseConfig()
	if err != nil {
		return nil, err
	}

	httpConfig, err := loadHTTPConfig()
	if err != nil {
		return nil, err
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Bookshelf API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		HTTP: *httpConfig,
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		RateLimit: RateLimitConfig{
			Enabled: getEnvBool("RATE_LIMIT_ENABLED", false),
			RPS:     rps,
			Burst:   burst,
		},
		Database: dbConfig,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks values that would only fail later at startup.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.App.Port); err != nil {
		return fmt.Errorf("APP_PORT must be numeric, got %q", c.App.Port)
	}

	if c.App.Environment == "production" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD must be set in production")
	}

	for _, proxy := range c.HTTP.TrustedProxies {
		if net.ParseIP(proxy) == nil {
			if _, _, err := net.ParseCIDR(proxy); err != nil {
				return fmt.Errorf("HTTP_TRUSTED_PROXIES entry %q is not an IP or CIDR", proxy)
			}
		}
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive when rate limiting is enabled")
	}

	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func loadHTTPConfig() (*HTTPConfig, error) {
	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_WRITE_TIMEOUT: %w", err)
	}

	idleTimeout, err := time.ParseDuration(getEnv("HTTP_IDLE_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_IDLE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := time.ParseDuration(getEnv("HTTP_SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_SHUTDOWN_TIMEOUT: %w", err)
	}

	return &HTTPConfig{
		ReadTimeout:     readTimeout,
		WriteTimeout:    writeTimeout,
		IdleTimeout:     idleTimeout,
		ShutdownTimeout: shutdownTimeout,
		TrustedProxies:  splitList(getEnv("HTTP_TRUSTED_PROXIES", "")),
	}, nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
