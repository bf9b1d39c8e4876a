package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "Apple", cfg.BrandQuery)
	assert.Equal(t, 10*time.Minute, cfg.NewsInterval)
	assert.Equal(t, 10*time.Minute, cfg.DiscussionInterval)
	assert.Equal(t, time.Hour, cfg.SpikeInterval)
	assert.Equal(t, 20, cfg.MentionsLimit)
	assert.Equal(t, 0, cfg.StoreCapacity)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "technology", cfg.RedditSubreddit)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("BRAND_QUERY", "Acme")
	t.Setenv("NEWS_API_KEY", "news-key")
	t.Setenv("NEWS_INTERVAL", "5m")
	t.Setenv("DISCUSSION_INTERVAL", "7m30s")
	t.Setenv("STORE_CAPACITY", "1000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://dash.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Acme", cfg.BrandQuery)
	assert.Equal(t, "news-key", cfg.NewsAPIKey)
	assert.Equal(t, 5*time.Minute, cfg.NewsInterval)
	assert.Equal(t, 7*time.Minute+30*time.Second, cfg.DiscussionInterval)
	assert.Equal(t, 1000, cfg.StoreCapacity)
	assert.Equal(t, []string{"http://localhost:3000", "https://dash.example.com"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.NewsEnabled())
	assert.False(t, cfg.DiscussionEnabled())
	assert.False(t, cfg.UseDemo())
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("NEWS_INTERVAL", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, cfg.NewsInterval)
}

func TestConfig_validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			BrandQuery:         "Apple",
			NewsInterval:       time.Minute,
			DiscussionInterval: time.Minute,
			SpikeInterval:      time.Hour,
			FetchTimeout:       time.Minute,
			SpikeRatio:         1.5,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "Valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "Empty brand", mutate: func(c *Config) { c.BrandQuery = " " }, wantErr: true},
		{name: "Zero interval", mutate: func(c *Config) { c.NewsInterval = 0 }, wantErr: true},
		{name: "Negative timeout", mutate: func(c *Config) { c.FetchTimeout = -time.Second }, wantErr: true},
		{name: "Negative limit", mutate: func(c *Config) { c.MentionsLimit = -1 }, wantErr: true},
		{name: "Negative capacity", mutate: func(c *Config) { c.StoreCapacity = -5 }, wantErr: true},
		{name: "Spike ratio too low", mutate: func(c *Config) { c.SpikeRatio = 1 }, wantErr: true},
		{
			name:    "Email without SMTP",
			mutate:  func(c *Config) { c.NotificationEmail = "team@example.com" },
			wantErr: true,
		},
		{
			name: "Email with SMTP",
			mutate: func(c *Config) {
				c.NotificationEmail = "team@example.com"
				c.SMTPHost = "smtp.example.com"
				c.SMTPUsername = "bot"
				c.SMTPPassword = "secret"
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_UseDemo(t *testing.T) {
	assert.True(t, (&Config{}).UseDemo())
	assert.True(t, (&Config{NewsAPIKey: "k", DemoMode: true}).UseDemo())
	assert.False(t, (&Config{RedditClientID: "id", RedditClientSecret: "secret"}).UseDemo())
}
