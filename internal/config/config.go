package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string

	JWTSecret string
	JWTExpiry time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	// Tokens default to a week, matching a personal tool where sessions
	// are long-lived and there is no refresh flow.
	expiry, err := time.ParseDuration(getEnv("JWT_EXPIRY", "168h"))
	if err != nil {
		expiry = 168 * time.Hour
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		JWTSecret: getEnvOrPanic("JWT_SECRET"),
		JWTExpiry: expiry,
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvOrPanic(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}
