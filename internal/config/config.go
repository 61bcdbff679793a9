package config

import (
	"errors"
	"os"
	"time"
)

// app config, mostly AI provider and cache related
type Config struct {
	Provider   string
	Port       string
	RedisAddr  string
	CacheTTL   time.Duration
	ContextTTL time.Duration
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Provider:   getEnvOrDefault("AI_PROVIDER", "gemini"),
		Port:       getEnvOrDefault("PORT", "8080"),
		RedisAddr:  os.Getenv("REDIS_ADDR"),
		CacheTTL:   getEnvDuration("RESULT_CACHE_TTL", time.Hour),
		ContextTTL: getEnvDuration("FEEDBACK_CACHE_TTL", 15*time.Minute),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini")
	}
	// Gemini validation is handled by gemini.NewConfig()
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
