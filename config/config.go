package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Storage configuration
	S3Bucket  string
	AWSRegion string
}

// LoadConfig creates a new Config instance with values from environment
// variables, falling back to Docker secrets outside CI. CI pipelines
// provide everything through the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: envOr("SERVER_PORT", "8080"),
		ServerHost: envOr("SERVER_HOST", "0.0.0.0"),

		DBHost:    envOr("DB_HOST", "localhost"),
		DBPort:    envOr("DB_PORT", "5432"),
		DBName:    envOr("DB_NAME", "recipely"),
		DBSSLMode: envOr("DB_SSL_MODE", "disable"),

		RedisHost: envOr("REDIS_HOST", "localhost"),
		RedisPort: envOr("REDIS_PORT", "6379"),
		RedisURL:  os.Getenv("REDIS_URL"),

		S3Bucket:  envOr("S3_BUCKET_NAME", "recipely-images"),
		AWSRegion: envOr("AWS_REGION", "us-east-1"),
	}

	if db, err := strconv.Atoi(envOr("REDIS_DB", "0")); err == nil {
		cfg.RedisDB = db
	}

	if IsCI() {
		cfg.DBUser = os.Getenv("DB_USER")
		cfg.DBPassword = os.Getenv("DB_PASSWORD")
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
		cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	} else {
		cfg.DBUser = envOrSecret("DB_USER", "db_user")
		cfg.DBPassword = envOrSecret("DB_PASSWORD", "db_password")
		cfg.JWTSecret = envOrSecret("JWT_SECRET", "jwt_secret")
		cfg.RedisPassword = envOrSecret("REDIS_PASSWORD", "redis_password")
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envOrSecret prefers the environment variable and falls back to a Docker
// secret file under SECRETS_DIR (default /run/secrets).
func envOrSecret(envKey, secretName string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, secretName)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
