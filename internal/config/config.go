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
	Port               string
	Debug              bool
	CORSAllowedOrigins []string
	MentionsLimit      int // default cap for /api/mentions, 0 means no cap

	// Brand to track
	BrandQuery string

	// News provider
	NewsAPIKey   string
	NewsAPIURL   string
	NewsLanguage string
	NewsPageSize int

	// Discussion provider (Reddit)
	RedditClientID     string
	RedditClientSecret string
	RedditAuthURL      string
	RedditAPIURL       string
	RedditSubreddit    string
	RedditLimit        int
	RedditUserAgent    string

	// Demo data, used when no provider is configured
	DemoMode bool

	// Schedule configuration
	NewsInterval       time.Duration
	DiscussionInterval time.Duration
	SpikeInterval      time.Duration
	FetchTimeout       time.Duration

	// Store configuration
	StoreCapacity int

	// Spike detection
	SpikeRatio       float64
	SpikeMinMentions int

	// Archive of ingested batches (optional): Azure Blob, or a local directory
	StorageAccount   string
	StorageContainer string
	ArchiveDir       string

	// Notification configuration (optional)
	TeamsWebhookURL   string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "5000"),
		Debug:              getBoolEnv("DEBUG", false),
		CORSAllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		MentionsLimit:      getIntEnv("MENTIONS_LIMIT", 20),

		BrandQuery: getEnv("BRAND_QUERY", "Apple"),

		NewsAPIKey:   getEnv("NEWS_API_KEY", ""),
		NewsAPIURL:   getEnv("NEWS_API_URL", "https://newsapi.org/v2/everything"),
		NewsLanguage: getEnv("NEWS_LANGUAGE", "en"),
		NewsPageSize: getIntEnv("NEWS_PAGE_SIZE", 20),

		RedditClientID:     getEnv("REDDIT_CLIENT_ID", ""),
		RedditClientSecret: getEnv("REDDIT_CLIENT_SECRET", ""),
		RedditAuthURL:      getEnv("REDDIT_AUTH_URL", "https://www.reddit.com/api/v1/access_token"),
		RedditAPIURL:       getEnv("REDDIT_API_URL", "https://oauth.reddit.com"),
		RedditSubreddit:    getEnv("REDDIT_SUBREDDIT", "technology"),
		RedditLimit:        getIntEnv("REDDIT_LIMIT", 10),
		RedditUserAgent:    getEnv("REDDIT_USER_AGENT", "BrandTrackerBot/0.0.1"),

		DemoMode: getBoolEnv("DEMO_MODE", false),

		NewsInterval:       getDurationEnv("NEWS_INTERVAL", 10*time.Minute),
		DiscussionInterval: getDurationEnv("DISCUSSION_INTERVAL", 10*time.Minute),
		SpikeInterval:      getDurationEnv("SPIKE_INTERVAL", time.Hour),
		FetchTimeout:       getDurationEnv("FETCH_TIMEOUT", 60*time.Second),

		StoreCapacity: getIntEnv("STORE_CAPACITY", 0),

		SpikeRatio:       getFloatEnv("SPIKE_RATIO", 1.5),
		SpikeMinMentions: getIntEnv("SPIKE_MIN_MENTIONS", 5),

		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "mentions"),
		ArchiveDir:       getEnv("ARCHIVE_DIR", ""),

		TeamsWebhookURL:   getEnv("TEAMS_WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.BrandQuery) == "" {
		return fmt.Errorf("BRAND_QUERY must not be empty")
	}

	if c.NewsInterval <= 0 || c.DiscussionInterval <= 0 || c.SpikeInterval <= 0 {
		return fmt.Errorf("NEWS_INTERVAL, DISCUSSION_INTERVAL and SPIKE_INTERVAL must be positive")
	}

	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}

	if c.MentionsLimit < 0 {
		return fmt.Errorf("MENTIONS_LIMIT must not be negative")
	}

	if c.StoreCapacity < 0 {
		return fmt.Errorf("STORE_CAPACITY must not be negative")
	}

	if c.SpikeRatio <= 1 {
		return fmt.Errorf("SPIKE_RATIO must be greater than 1")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	return nil
}

// NewsEnabled reports whether news credentials are present
func (c *Config) NewsEnabled() bool {
	return c.NewsAPIKey != ""
}

// DiscussionEnabled reports whether Reddit credentials are present
func (c *Config) DiscussionEnabled() bool {
	return c.RedditClientID != "" && c.RedditClientSecret != ""
}

// UseDemo reports whether demo mentions should be generated. With no
// provider configured there would otherwise be nothing to show.
func (c *Config) UseDemo() bool {
	return c.DemoMode || (!c.NewsEnabled() && !c.DiscussionEnabled())
}

// NotificationsEnabled reports whether any alert channel is configured
func (c *Config) NotificationsEnabled() bool {
	return c.TeamsWebhookURL != "" || c.NotificationEmail != ""
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
		var out []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
