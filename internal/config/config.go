package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DBUrl             string
	AnthropicAPIKey   string
	LLMModel          string
	SlackWebhookURL   string
	AppEnv            string
	TickInterval      time.Duration
	MorningHour       int
	MiddayHour        int
	EveningHour       int
	ContextWindow     int
	ContextCacheUsers int
	PerUserTimeout    time.Duration
	PollConcurrency   int
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	apiKey, exists := os.LookupEnv("ANTHROPIC_API_KEY")
	if !exists || apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is required")
	}

	return &Config{
		Port:              getEnv("PORT", "3000"),
		DBUrl:             getEnv("DB_URL", ""),
		AnthropicAPIKey:   apiKey,
		LLMModel:          getEnv("LLM_MODEL", "claude-3-sonnet-20240229"),
		SlackWebhookURL:   getEnv("SLACK_WEBHOOK_URL", ""),
		AppEnv:            normalizeEnv(getEnv("APP_ENV", "production")),
		TickInterval:      getEnvDuration("TICK_INTERVAL", time.Hour),
		MorningHour:       getEnvInt("MORNING_HOUR", 9),
		MiddayHour:        getEnvInt("MIDDAY_HOUR", 14),
		EveningHour:       getEnvInt("EVENING_HOUR", 20),
		ContextWindow:     getEnvInt("CONTEXT_WINDOW", 10),
		ContextCacheUsers: getEnvInt("CONTEXT_CACHE_USERS", 1024),
		PerUserTimeout:    getEnvDuration("PER_USER_TIMEOUT", 30*time.Second),
		PollConcurrency:   getEnvInt("POLL_CONCURRENCY", 8),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
