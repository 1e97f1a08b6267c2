package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"roommate/backend/pkg/errors"
)

// Analytics option values, matching the choices offered by the installer.
const (
	AnalyticsNone       = "None (not recommended)"
	AnalyticsSentry     = "Sentry"
	AnalyticsNightwatch = "Nightwatch"
	AnalyticsBoth       = "Both"
)

// Config holds all application configuration
type Config struct {
	// App
	Port string
	Env  string

	// MongoDB
	MongoURI      string
	MongoDatabase string

	// LLM runtime
	LLMProvider   string // "ollama" or "openai"
	OllamaURL     string
	Model         string
	OpenAIBaseURL string
	OpenAIAPIKey  string

	// Auth
	PasswordFile string // API password is loaded from (or generated into) this file

	// Trial mode for unauthenticated callers
	TrialRequests int

	// Error reporting
	AnalyticsOption  string
	SentryDSN        string
	NightwatchAPIURL string
	NightwatchAPIKey string

	// Feedback export (fine-tuning hand-off)
	FeedbackThreshold  int
	FeedbackExportPath string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "3000"),
		Env:                getEnv("ENV", "development"),
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:      getEnv("MONGO_DATABASE", "roommate"),
		LLMProvider:        getEnv("LLM_PROVIDER", "ollama"),
		OllamaURL:          getEnv("OLLAMA_URL", "http://127.0.0.1:11434"),
		Model:              getEnv("MODEL_ID", "gpt-oss:20b"),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", ""),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		PasswordFile:       getEnv("API_PASSWORD_FILE", "config/api_password.txt"),
		TrialRequests:      getEnvInt("TRIAL_REQUESTS", 5),
		AnalyticsOption:    getEnv("ANALYTICS_OPTION", AnalyticsNone),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
		NightwatchAPIURL:   getEnv("NIGHTWATCH_API_URL", ""),
		NightwatchAPIKey:   getEnv("NIGHTWATCH_API_KEY", ""),
		FeedbackThreshold:  getEnvInt("FEEDBACK_THRESHOLD", 50),
		FeedbackExportPath: getEnv("FEEDBACK_EXPORT_PATH", "fine-tuning/feedback.jsonl"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return errors.NewConfigMissingRequired("MONGO_URI")
	}
	if c.MongoDatabase == "" {
		return errors.NewConfigMissingRequired("MONGO_DATABASE")
	}
	if c.Model == "" {
		return errors.NewConfigMissingRequired("MODEL_ID")
	}
	switch c.LLMProvider {
	case "ollama":
		if c.OllamaURL == "" {
			return errors.NewConfigMissingRequired("OLLAMA_URL")
		}
	case "openai":
		if c.OpenAIBaseURL == "" && c.OpenAIAPIKey == "" {
			return errors.NewConfigMissingRequired("OPENAI_API_KEY")
		}
	default:
		return fmt.Errorf("LLM_PROVIDER must be \"ollama\" or \"openai\", got %q", c.LLMProvider)
	}
	switch c.AnalyticsOption {
	case AnalyticsNone, AnalyticsSentry, AnalyticsNightwatch, AnalyticsBoth:
	default:
		return fmt.Errorf("ANALYTICS_OPTION must be one of %q, %q, %q, %q",
			AnalyticsNone, AnalyticsSentry, AnalyticsNightwatch, AnalyticsBoth)
	}
	// Sentry DSN and Nightwatch credentials are optional; reporting is
	// skipped for whichever backend has no credentials.
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
