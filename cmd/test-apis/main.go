package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"
	"github.com/mentiontracker/brand-mentions/internal/config"
	"github.com/mentiontracker/brand-mentions/internal/sentiment"
	"github.com/mentiontracker/brand-mentions/internal/sources"
)

func main() {
	fmt.Println("🔍 Brand Mentions Tracker - API Connectivity Test")
	fmt.Println("=================================================")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	defer cancel()

	classifier := sentiment.NewClassifier(nil)

	fmt.Printf("\n📡 Testing sources for %q...\n", cfg.BrandQuery)
	fmt.Println(strings.Repeat("-", 40))

	testSource(ctx, sources.NewNewsSource(sources.NewsConfig{
		APIKey:   cfg.NewsAPIKey,
		BaseURL:  cfg.NewsAPIURL,
		Language: cfg.NewsLanguage,
		PageSize: cfg.NewsPageSize,
	}, classifier), cfg.BrandQuery, cfg.NewsPageSize)

	testSource(ctx, sources.NewRedditSource(sources.RedditConfig{
		ClientID:     cfg.RedditClientID,
		ClientSecret: cfg.RedditClientSecret,
		AuthURL:      cfg.RedditAuthURL,
		APIURL:       cfg.RedditAPIURL,
		Subreddit:    cfg.RedditSubreddit,
		Limit:        cfg.RedditLimit,
		UserAgent:    cfg.RedditUserAgent,
	}, classifier), cfg.BrandQuery, cfg.RedditLimit)

	testSource(ctx, sources.NewDemoSource(classifier, clockwork.NewRealClock()), cfg.BrandQuery, 0)

	fmt.Println("\n✅ API connectivity test completed!")
	fmt.Println("\n💡 Next steps:")
	fmt.Println("   • Configure missing API keys in .env file")
	fmt.Println("   • Run the tracker with: go run ./cmd/tracker")
}

func testSource(ctx context.Context, source sources.Source, query string, limit int) {
	fmt.Printf("🔸 Testing %s... ", source.GetName())

	result := sources.Fetch(ctx, source, query, limit)
	switch {
	case errors.Is(result.Err, sources.ErrDisabled):
		fmt.Printf("⚠️  DISABLED (missing credentials)\n")
		return
	case result.Err != nil:
		fmt.Printf("❌ ERROR: %v\n", result.Err)
		return
	}

	fmt.Printf("✅ SUCCESS (%d mentions in %v)\n", len(result.Mentions), result.Duration.Round(time.Millisecond))

	if len(result.Mentions) > 0 {
		sample := result.Mentions[0]
		fmt.Printf("   📝 Sample [%s]: \"%s\"\n", sample.Sentiment, sample.Text)
	}
}
