package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var supportedDBDrivers = map[string]bool{
	"postgres": true,
	"sqlite":   true,
}

// ValidateConfig checks if the configuration meets the requirements for the given environment
func ValidateConfig(cfg *Config, env Environment) error {
	var errs []error

	// Tests run against fake upstreams and do not need a real key
	if cfg.SpoonacularAPIKey == "" && env != Test {
		errs = append(errs, ValidationError{
			Field:   "SPOONACULAR_API_KEY",
			Message: "upstream API key is required (env, SPOONACULAR_API_KEY_FILE or spoonacular_api_key secret)",
		})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}

	if u, err := url.Parse(cfg.SpoonacularBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{Field: "SPOONACULAR_BASE_URL", Message: fmt.Sprintf("invalid URL %q", cfg.SpoonacularBaseURL)})
	}

	if cfg.UpstreamTimeout <= 0 {
		errs = append(errs, ValidationError{Field: "UPSTREAM_TIMEOUT", Message: "must be positive"})
	}

	if cfg.DatabaseURL != "" && !supportedDBDrivers[cfg.DBDriver] {
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if env == Production && len(cfg.AllowedOrigins) == 0 {
		errs = append(errs, ValidationError{Field: "CORS_ALLOWED_ORIGINS", Message: "at least one origin is required in production"})
	}

	return errors.Join(errs...)
}
