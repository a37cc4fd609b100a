package config

import (
	"os"
	"strconv"
	"time"

	"studyplan/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	AI       AIConfig
	Server   ServerConfig
	Reminder ReminderConfig
	Notify   NotifyConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// AIConfig holds AI/LLM related settings for the insight proxy
type AIConfig struct {
	APIKey             string
	Model              string
	BaseURL            string
	MaxTokens          int
	Temperature        float64
	Timeout            time.Duration
	MonthlyTokenBudget int
	RequestCooldown    time.Duration
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// ReminderConfig holds daily study reminder settings
type ReminderConfig struct {
	Enabled bool
	Hour    int
}

// NotifyConfig holds notification delivery settings
type NotifyConfig struct {
	TelegramToken  string
	TelegramChatID int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		AI: AIConfig{
			APIKey:             os.Getenv("OPENAI_API_KEY"),
			Model:              getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
			BaseURL:            getEnvOrDefault("LLM_BASE_URL", ""),
			MaxTokens:          getEnvIntOrDefault("MAX_TOKENS", 1024),
			Temperature:        getEnvFloatOrDefault("TEMPERATURE", 0.7),
			Timeout:            getEnvDurationOrDefault("LLM_TIMEOUT", 30*time.Second),
			MonthlyTokenBudget: getEnvIntOrDefault("MONTHLY_TOKEN_BUDGET", 200000),
			RequestCooldown:    getEnvDurationOrDefault("INSIGHT_COOLDOWN", 10*time.Second),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Reminder: ReminderConfig{
			Enabled: getEnvBoolOrDefault("REMINDER_ENABLED", false),
			Hour:    getEnvIntOrDefault("REMINDER_HOUR", 18),
		},
		Notify: NotifyConfig{
			TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
			TelegramChatID: int64(getEnvIntOrDefault("TELEGRAM_CHAT_ID", 0)),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	if config.Reminder.Hour < 0 || config.Reminder.Hour > 23 {
		return errors.ConfigInvalid("REMINDER_HOUR must be in [0,23]")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
