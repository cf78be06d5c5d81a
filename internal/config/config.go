package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything the process reads from the environment.
type Config struct {
	Env         string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration
	ListenAddr  string
	AutoMigrate bool
}

// Load reads .env if present, then the environment. DATABASE_URL and
// JWT_SECRET are required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:         getenv("APP_ENV", "development"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTTTL:      24 * time.Hour,
		ListenAddr:  getenv("LISTEN_ADDR", ":8080"),
		AutoMigrate: os.Getenv("AUTO_MIGRATE") == "true",
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is empty")
	}

	if v := os.Getenv("JWT_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, errors.New("JWT_TTL is not a valid duration")
		}
		cfg.JWTTTL = ttl
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
