package monitoring

import (
	"github.com/jonboulle/clockwork"
	"github.com/mentiontracker/brand-mentions/internal/config"
	"github.com/mentiontracker/brand-mentions/internal/sources"
)

// BuildSources returns every source the configuration enables. The demo
// source is included when demo mode is on or when no provider has
// credentials.
func BuildSources(cfg *config.Config, classifier sources.SentimentClassifier, clock clockwork.Clock) []sources.Source {
	var enabled []sources.Source

	if cfg.NewsEnabled() {
		enabled = append(enabled, sources.NewNewsSource(sources.NewsConfig{
			APIKey:   cfg.NewsAPIKey,
			BaseURL:  cfg.NewsAPIURL,
			Language: cfg.NewsLanguage,
			PageSize: cfg.NewsPageSize,
		}, classifier))
	}

	if cfg.DiscussionEnabled() {
		enabled = append(enabled, sources.NewRedditSource(sources.RedditConfig{
			ClientID:     cfg.RedditClientID,
			ClientSecret: cfg.RedditClientSecret,
			AuthURL:      cfg.RedditAuthURL,
			APIURL:       cfg.RedditAPIURL,
			Subreddit:    cfg.RedditSubreddit,
			Limit:        cfg.RedditLimit,
			UserAgent:    cfg.RedditUserAgent,
		}, classifier))
	}

	if cfg.UseDemo() {
		enabled = append(enabled, sources.NewDemoSource(classifier, clock))
	}

	return enabled
}
