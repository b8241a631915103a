package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL     string
	RedisURL        string
	JWTSecret       string
	ServerPort      string
	AnthropicAPIKey string
	AnthropicModel  string

	// Hourly AI generation quotas, enforced against the ai_logs history
	// over a sliding 60-minute window.
	AIUserHourlyLimit int
	AIOrgHourlyLimit  int
}

func Load() (*Config, error) {
	godotenv.Load()

	return &Config{
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:         getEnv("JWT_SECRET", "secret"),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		AnthropicAPIKey:   getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:    getEnv("ANTHROPIC_MODEL", "claude-haiku-4-5"),
		AIUserHourlyLimit: getEnvInt("AI_USER_HOURLY_LIMIT", 100),
		AIOrgHourlyLimit:  getEnvInt("AI_ORG_HOURLY_LIMIT", 500),
	}, nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}
