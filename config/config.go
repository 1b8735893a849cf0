package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Credential is a secret that must never be printed or sent to clients
type Credential string

// String redacts the secret so it is safe in logs and %v formatting
func (c Credential) String() string {
	if c == "" {
		return ""
	}
	return "[REDACTED]"
}

// Reveal returns the raw secret for attaching to upstream requests
func (c Credential) Reveal() string {
	return string(c)
}

// RateLimitConfig indicates how many requests a client may make within an interval
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Enabled reports whether rate limiting is configured
func (r RateLimitConfig) Enabled() bool {
	return r.Requests > 0 && r.Interval > 0
}

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort     string
	ServerHost     string
	AllowedOrigins []string

	// Upstream recipe API configuration
	SpoonacularAPIKey         Credential
	SpoonacularBaseURL        string
	UpstreamTimeout           time.Duration
	UpstreamStatusPassthrough bool

	// Redis configuration, optional
	RedisURL  string
	RateLimit RateLimitConfig

	// Database configuration for the search log, optional
	DBDriver    string
	DatabaseURL string

	LogLevel string
}

const (
	defaultServerPort  = "3001"
	defaultBaseURL     = "https://api.spoonacular.com/recipes"
	defaultTimeout     = 10 * time.Second
	defaultRateLimit   = "60/min"
	defaultSecretsDir  = "/run/secrets"
	apiKeySecretName   = "spoonacular_api_key"
	defaultDBDriver    = "postgres"
	defaultAllowOrigin = "http://localhost:5173"
)

// LoadConfig creates a new Config from a .env file, environment variables and secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	// A missing .env file is normal outside local development
	if env != Production {
		_ = godotenv.Load()
	}

	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}

	if err := ValidateConfig(cfg, env); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	cfg := &Config{
		ServerPort:         getEnv("SERVER_PORT", getEnv("PORT", defaultServerPort)),
		ServerHost:         getEnv("SERVER_HOST", ""),
		AllowedOrigins:     splitList(getEnv("CORS_ALLOWED_ORIGINS", defaultAllowOrigin)),
		SpoonacularBaseURL: strings.TrimRight(getEnv("SPOONACULAR_BASE_URL", defaultBaseURL), "/"),
		RedisURL:           getEnv("REDIS_URL", ""),
		DBDriver:           strings.ToLower(getEnv("DB_DRIVER", defaultDBDriver)),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	key, err := loadAPIKey()
	if err != nil {
		return nil, err
	}
	cfg.SpoonacularAPIKey = key

	timeout, err := time.ParseDuration(getEnv("UPSTREAM_TIMEOUT", defaultTimeout.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT: %w", err)
	}
	cfg.UpstreamTimeout = timeout

	if raw := getEnv("UPSTREAM_STATUS_PASSTHROUGH", ""); raw != "" {
		passthrough, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid UPSTREAM_STATUS_PASSTHROUGH: %w", err)
		}
		cfg.UpstreamStatusPassthrough = passthrough
	}

	rl, err := ParseRateLimit(getEnv("RATE_LIMIT", defaultRateLimit))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT: %w", err)
	}
	cfg.RateLimit = rl

	return cfg, nil
}

// loadAPIKey reads the upstream key from the environment, a key file, or a Docker secret
func loadAPIKey() (Credential, error) {
	if key := strings.TrimSpace(os.Getenv("SPOONACULAR_API_KEY")); key != "" {
		return Credential(key), nil
	}

	if keyFile := os.Getenv("SPOONACULAR_API_KEY_FILE"); keyFile != "" {
		data, err := os.ReadFile(keyFile)
		if err != nil {
			return "", fmt.Errorf("failed to read API key file: %w", err)
		}
		key := strings.TrimSpace(string(data))
		if key == "" {
			return "", fmt.Errorf("API key file is empty")
		}
		return Credential(key), nil
	}

	return Credential(readSecret(apiKeySecretName)), nil
}

// ParseRateLimit parses values like "60/min". "off" or "0" disables limiting.
func ParseRateLimit(value string) (RateLimitConfig, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "0" || strings.EqualFold(value, "off") {
		return RateLimitConfig{}, nil
	}

	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	var interval time.Duration
	switch unit := strings.ToLower(strings.TrimSpace(parts[1])); unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = defaultSecretsDir
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
