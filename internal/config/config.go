package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	Services ServicesConfig
	Auth     AuthConfig
	Server   ServerConfig
}

// ServicesConfig holds the base URLs and timeouts for the external services
// the console talks to.
type ServicesConfig struct {
	PromotionStoreURL    string
	EvaluationServiceURL string
	RequestTimeout       time.Duration
}

// AuthConfig holds authentication-related configuration. An empty JWTSecret
// disables the admin token guard.
type AuthConfig struct {
	JWTSecret string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int
	WebAppOrigin string
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}

	var err error
	if cfg.Services.PromotionStoreURL, err = requireEnv("PROMOTION_STORE_URL"); err != nil {
		return nil, err
	}
	if cfg.Services.EvaluationServiceURL, err = requireEnv("EVALUATION_SERVICE_URL"); err != nil {
		return nil, err
	}

	timeoutSeconds := getEnvWithDefault("SERVICE_REQUEST_TIMEOUT_SECONDS", "10")
	seconds, err := strconv.Atoi(timeoutSeconds)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVICE_REQUEST_TIMEOUT_SECONDS: %w", err)
	}
	cfg.Services.RequestTimeout = time.Duration(seconds) * time.Second

	// Optional: leave empty to run the console without the admin token guard
	cfg.Auth.JWTSecret = getEnvWithDefault("ADMIN_JWT_SECRET", "")

	cfg.Server.WebAppOrigin = getEnvWithDefault("WEBAPP_ORIGIN", "http://localhost:3000")

	serverPort, err := requireEnv("SERVER_PORT")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}

	return cfg, nil
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
