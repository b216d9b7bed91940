package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Content Inspector configuration
	InspectorBaseURL string
	InspectorTimeout time.Duration
	PlatformPolicy   string // "optimistic" or "strict"

	// Scoring configuration
	EngagementMaxScore float64

	// Storage configuration
	StorageBackend   string // "file" or "azure"
	StorageDir       string
	StorageAccount   string
	StorageContainer string
	SeedFixtures     bool

	// Schedule configuration
	RefreshSchedule string // "hourly" or "daily"
	ReportSchedule  string // "daily" or "weekly"
	TimeZone        string

	// Notification configuration
	TeamsWebhookURL   string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string

	// API Keys and credentials
	TwitterBearerToken string
	NeynarAPIKey       string
	// Platforms the metrics refresh skips even when credentials are present
	DisabledSources []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		InspectorBaseURL: getEnv("INSPECTOR_BASE_URL", "https://tweet-validator-gagangehani1.replit.app"),
		InspectorTimeout: getDurationEnv("INSPECTOR_TIMEOUT", 15*time.Second),
		PlatformPolicy:   strings.ToLower(getEnv("PLATFORM_POLICY", "optimistic")),

		EngagementMaxScore: getFloatEnv("ENGAGEMENT_MAX_SCORE", 5000),

		StorageBackend:   strings.ToLower(getEnv("STORAGE_BACKEND", "file")),
		StorageDir:       getEnv("STORAGE_DIR", "data"),
		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "submissions"),
		SeedFixtures:     getBoolEnv("SEED_FIXTURES", true),

		RefreshSchedule: strings.ToLower(getEnv("REFRESH_SCHEDULE", "hourly")),
		ReportSchedule:  strings.ToLower(getEnv("REPORT_SCHEDULE", "weekly")),
		TimeZone:        getEnv("TIMEZONE", "UTC"),

		TeamsWebhookURL:   getEnv("TEAMS_WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),

		TwitterBearerToken: getEnv("TWITTER_BEARER_TOKEN", ""),
		NeynarAPIKey:       getEnv("NEYNAR_API_KEY", ""),
		DisabledSources:    getSliceEnv("DISABLED_SOURCES", nil),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.PlatformPolicy != "optimistic" && c.PlatformPolicy != "strict" {
		return fmt.Errorf("PLATFORM_POLICY must be 'optimistic' or 'strict'")
	}

	if c.InspectorTimeout <= 0 {
		return fmt.Errorf("INSPECTOR_TIMEOUT must be positive")
	}

	if c.EngagementMaxScore <= 0 {
		return fmt.Errorf("ENGAGEMENT_MAX_SCORE must be positive")
	}

	switch c.StorageBackend {
	case "file":
		if c.StorageDir == "" {
			return fmt.Errorf("STORAGE_DIR is required for the file storage backend")
		}
	case "azure":
		if c.StorageAccount == "" {
			return fmt.Errorf("AZURE_STORAGE_ACCOUNT is required for the azure storage backend")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be 'file' or 'azure'")
	}

	if c.RefreshSchedule != "hourly" && c.RefreshSchedule != "daily" {
		return fmt.Errorf("REFRESH_SCHEDULE must be 'hourly' or 'daily'")
	}

	if c.ReportSchedule != "daily" && c.ReportSchedule != "weekly" {
		return fmt.Errorf("REPORT_SCHEDULE must be 'daily' or 'weekly'")
	}

	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("TIMEZONE is not a known location: %w", err)
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	return nil
}

// SourceDisabled reports whether the named metrics source was switched off
func (c *Config) SourceDisabled(name string) bool {
	for _, disabled := range c.DisabledSources {
		if strings.EqualFold(strings.TrimSpace(disabled), name) {
			return true
		}
	}
	return false
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
