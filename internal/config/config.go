package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Inshalc/battery-soh-chatbot/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	AI       AIConfig
	Model    ModelConfig
	Battery  BatteryConfig
	Database DatabaseConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// AIConfig holds generative-provider settings. GeminiModels is the
// fallback priority list; element 0 is the primary model.
type AIConfig struct {
	GeminiKey    string
	GeminiModels []string
	OpenAIKey    string
	OpenAIModel  string
	MaxTokens    int
	Temperature  float64
	Timeout      time.Duration
}

// ModelConfig holds settings for the external regression collaborator
type ModelConfig struct {
	URL     string
	Timeout time.Duration
}

// BatteryConfig holds battery analysis settings
type BatteryConfig struct {
	DefaultThreshold float64
}

// DatabaseConfig holds optional persistence settings. An empty URL
// disables prediction-history and usage recording.
type DatabaseConfig struct {
	URL string
}

// defaultGeminiModels mirrors the model priority order the service was
// tuned against. Overridable via GEMINI_MODELS (comma-separated).
var defaultGeminiModels = []string{
	"gemini-2.0-flash-001",
	"gemini-2.0-flash",
	"gemini-2.5-flash",
	"gemini-2.5-pro",
	"gemini-2.0-flash-lite",
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	aiConfig, err := loadAIConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AI configuration")
	}
	config.AI = *aiConfig

	modelConfig, err := loadModelConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load model configuration")
	}
	config.Model = *modelConfig

	config.Server = *loadServerConfig()
	config.Battery = *loadBatteryConfig()
	config.Database = *loadDatabaseConfig()

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadAIConfig() (*AIConfig, error) {
	geminiKey := os.Getenv("GEMINI_API_KEY")

	models := defaultGeminiModels
	if raw := os.Getenv("GEMINI_MODELS"); raw != "" {
		models = nil
		for _, m := range strings.Split(raw, ",") {
			if m = strings.TrimSpace(m); m != "" {
				models = append(models, m)
			}
		}
		if len(models) == 0 {
			return nil, errors.ConfigInvalid("GEMINI_MODELS must name at least one model")
		}
	}

	return &AIConfig{
		GeminiKey:    geminiKey,
		GeminiModels: models,
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  getEnvOrDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
		MaxTokens:    getEnvIntOrDefault("MAX_TOKENS", 1024),
		Temperature:  getEnvFloatOrDefault("TEMPERATURE", 0.7),
		Timeout:      getEnvDurationOrDefault("PROVIDER_TIMEOUT", 15*time.Second),
	}, nil
}

func loadModelConfig() (*ModelConfig, error) {
	url := getEnvOrDefault("MODEL_SERVICE_URL", "http://localhost:8000")
	return &ModelConfig{
		URL:     url,
		Timeout: getEnvDurationOrDefault("MODEL_TIMEOUT", 10*time.Second),
	}, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "3001"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadBatteryConfig() *BatteryConfig {
	return &BatteryConfig{
		DefaultThreshold: getEnvFloatOrDefault("SOH_THRESHOLD", 0.6),
	}
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URL: getEnvOrDefault("DATABASE_URL", ""),
	}
}

func validateConfig(config *Config) error {
	if config.Model.URL == "" {
		return errors.ConfigInvalid("model service URL is required")
	}
	if config.Battery.DefaultThreshold < 0 || config.Battery.DefaultThreshold > 1 {
		return errors.ConfigInvalid("SOH_THRESHOLD must be in [0,1]")
	}
	if len(config.AI.GeminiModels) == 0 {
		return errors.ConfigInvalid("at least one Gemini model must be configured")
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
