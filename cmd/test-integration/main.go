package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"
	"github.com/mentiontracker/brand-mentions/internal/config"
	"github.com/mentiontracker/brand-mentions/internal/models"
	"github.com/mentiontracker/brand-mentions/internal/monitoring"
	"github.com/mentiontracker/brand-mentions/internal/query"
	"github.com/mentiontracker/brand-mentions/internal/sentiment"
	"github.com/mentiontracker/brand-mentions/internal/store"
)

// consoleArchive prints archive writes instead of uploading them
type consoleArchive struct{}

func (consoleArchive) Store(ctx context.Context, name string, data []byte) error {
	fmt.Printf("   📁 Would archive %d bytes to %s\n", len(data), name)
	return nil
}

// consoleNotifier prints alerts instead of sending them
type consoleNotifier struct{}

func (consoleNotifier) SendAlert(ctx context.Context, alert *models.Alert) error {
	fmt.Printf("🚨 ALERT: %s\n", alert.Message)
	return nil
}

func main() {
	fmt.Println("🧪 Brand Mentions Tracker - Local Integration Test")
	fmt.Println("==================================================")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	clock := clockwork.NewRealClock()
	mentionStore := store.NewMemoryStore(cfg.StoreCapacity)
	service := monitoring.NewService(cfg, mentionStore, consoleArchive{}, consoleNotifier{}, clock)

	fmt.Printf("🔍 Running one fetch cycle per source for %q...\n", cfg.BrandQuery)

	for _, src := range monitoring.BuildSources(cfg, sentiment.NewClassifier(nil), clock) {
		fmt.Printf("\n🔸 %s\n", src.GetName())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
		summary := service.RunSource(ctx, src)
		cancel()

		if summary.Error != "" {
			fmt.Printf("   ❌ Error: %s\n", summary.Error)
			continue
		}
		fmt.Printf("   ✅ Fetched %d, stored %d new (%v)\n", summary.Fetched, summary.Inserted, summary.Duration)
	}

	queryService := query.NewService(mentionStore)
	stats := queryService.Stats()

	fmt.Println("\n📊 Stats")
	fmt.Printf("   Total:    %d\n", stats.TotalMentions)
	fmt.Printf("   Positive: %d\n", stats.PositiveMentions)
	fmt.Printf("   Negative: %d\n", stats.NegativeMentions)
	fmt.Printf("   Neutral:  %d\n", stats.NeutralMentions)

	recent := queryService.Mentions(query.Filter{Limit: 5})
	if len(recent) > 0 {
		fmt.Println("📝 Most recent:")
		for i, mention := range recent {
			fmt.Printf("   %d. [%s/%s] %s\n", i+1, mention.Source, mention.Sentiment, mention.Text)
		}
	} else {
		fmt.Println("ℹ️  No mentions found. Add NEWS_API_KEY or Reddit credentials, or set DEMO_MODE=true.")
	}

	fmt.Println("\n📈 Checking for spikes...")
	alert, err := service.CheckSpikes(context.Background())
	switch {
	case err != nil:
		fmt.Printf("   ❌ Spike check failed: %v\n", err)
	case alert == nil:
		fmt.Println("   No spike in the last hour")
	default:
		fmt.Printf("   🚨 %s\n", alert.Message)
	}

	fmt.Println("\n✅ Local integration test completed!")
}
