package config

import (
	"fmt"
	"os"
	"time"
)

const (
	// Membership
	AllowedEmailDomain = "@nd.edu"
	MinPasswordLength  = 6

	// Credentials
	TokenIssuer = "subleasend-api"
	TokenTTL    = 7 * 24 * time.Hour

	// Campus reference point (Notre Dame main building)
	CampusLatitude  = 41.7001
	CampusLongitude = -86.2379
)

// Config holds the process-wide settings, read once at startup and injected
// into the components that need them.
type Config struct {
	ListenAddr  string
	DatabaseDSN string
	RedisAddr   string
	JWTSecret   string
}

// Load builds the config from environment variables. godotenv is expected to
// have populated the environment before this is called.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			envOr("DB_HOST", "localhost"),
			envOr("DB_USER", "user"),
			envOr("DB_PASSWORD", "password"),
			envOr("DB_NAME", "subleasend"),
			envOr("DB_PORT", "5432"),
		)
	}

	return &Config{
		ListenAddr:  envOr("LISTEN_ADDR", ":8080"),
		DatabaseDSN: dsn,
		RedisAddr:   envOr("REDIS_ADDR", "localhost:6379"),
		JWTSecret:   secret,
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
