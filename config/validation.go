package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the values the server cannot run without are
// present. Storage and SMTP settings are optional; their features degrade
// gracefully when unset.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.DBUser == "" {
		errors = append(errors, "database user is required (DB_USER or db_user secret)")
	}
	if cfg.DBPassword == "" {
		errors = append(errors, "database password is required (DB_PASSWORD or db_password secret)")
	}
	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT secret is required (JWT_SECRET or jwt_secret secret)")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}
	return nil
}
