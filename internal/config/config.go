package config

import (
	"os"
	"strconv"
	"time"

	"ilmakase/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	AI       AIConfig
	Auth     AuthConfig
	Server   ServerConfig
	Cache    CacheConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// AIConfig holds generative-text provider settings
type AIConfig struct {
	APIKey        string
	BaseURL       string
	Model         string
	SystemContext string
	MaxTokens     int
	Temperature   float64
	Timeout       time.Duration
	MaxInFlight   int
}

// AuthConfig holds managed auth provider settings
type AuthConfig struct {
	BaseURL     string
	APIKey      string
	RedirectURL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// CacheConfig holds cache tier settings
type CacheConfig struct {
	RedisURL   string
	SessionTTL time.Duration
	StatsTTL   time.Duration
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	dbConfig, err := loadDatabaseConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load database configuration")
	}
	config.Database = *dbConfig

	aiConfig, err := loadAIConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AI configuration")
	}
	config.AI = *aiConfig

	authConfig, err := loadAuthConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load auth configuration")
	}
	config.Auth = *authConfig

	config.Server = *loadServerConfig()
	config.Cache = *loadCacheConfig()

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() (*DatabaseConfig, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	return &DatabaseConfig{
		URL:          url,
		MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
	}, nil
}

func loadAIConfig() (*AIConfig, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.ConfigInvalid("OPENAI_API_KEY is required")
	}

	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &AIConfig{
		APIKey:        apiKey,
		BaseURL:       getEnvOrDefault("LLM_BASE_URL", "https://api.openai.com/v1"),
		Model:         model,
		SystemContext: "You are a career coach who turns daily work logs into portfolio language.",
		MaxTokens:     getEnvIntOrDefault("MAX_TOKENS", 2000),
		Temperature:   getEnvFloatOrDefault("TEMPERATURE", 0.7),
		Timeout:       getEnvDurationOrDefault("LLM_TIMEOUT", 60*time.Second),
		MaxInFlight:   getEnvIntOrDefault("LLM_MAX_IN_FLIGHT", 8),
	}, nil
}

func loadAuthConfig() (*AuthConfig, error) {
	baseURL := os.Getenv("AUTH_BASE_URL")
	if baseURL == "" {
		return nil, errors.ConfigInvalid("AUTH_BASE_URL is required")
	}

	return &AuthConfig{
		BaseURL:     baseURL,
		APIKey:      os.Getenv("AUTH_API_KEY"),
		RedirectURL: getEnvOrDefault("AUTH_REDIRECT_URL", "/worklog"),
	}, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadCacheConfig() *CacheConfig {
	return &CacheConfig{
		RedisURL:   getEnvOrDefault("REDIS_URL", ""),
		SessionTTL: getEnvDurationOrDefault("SESSION_CACHE_TTL", 5*time.Minute),
		StatsTTL:   getEnvDurationOrDefault("STATS_CACHE_TTL", time.Minute),
	}
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("database URL is required")
	}
	if config.AI.APIKey == "" {
		return errors.ConfigInvalid("OpenAI API key is required")
	}
	if config.Auth.BaseURL == "" {
		return errors.ConfigInvalid("auth base URL is required")
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
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
