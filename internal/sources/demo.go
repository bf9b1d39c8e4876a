package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mentiontracker/brand-mentions/internal/models"
)

var demoHeadlines = []string{
	"%s launches new product with amazing features!",
	"Customers reporting issues with %s's latest update.",
	"%s announces quarterly earnings call date",
	"Analysts praised %s for a great year of growth",
	"Users frustrated as %s app crashes after update",
}

// DemoSource produces sample mentions so the dashboard has data without any
// provider credentials.
type DemoSource struct {
	classifier SentimentClassifier
	clock      clockwork.Clock
}

// NewDemoSource creates a demo source. A nil clock uses the real clock.
func NewDemoSource(classifier SentimentClassifier, clock clockwork.Clock) *DemoSource {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &DemoSource{classifier: classifier, clock: clock}
}

func (d *DemoSource) GetName() string {
	return "demo"
}

func (d *DemoSource) Kind() models.SourceKind {
	return models.SourceDemo
}

func (d *DemoSource) IsEnabled() bool {
	return true
}

// FetchMentions returns one mention per sample headline, each a minute apart
// and ending at the current time.
func (d *DemoSource) FetchMentions(ctx context.Context, query string, limit int) ([]models.Mention, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	count := len(demoHeadlines)
	if limit > 0 && limit < count {
		count = limit
	}

	now := d.clock.Now().UTC().Truncate(time.Second)
	mentions := make([]models.Mention, 0, count)

	for i := 0; i < count; i++ {
		text := fmt.Sprintf(demoHeadlines[i], query)
		timestamp := now.Add(-time.Duration(i) * time.Minute).Format(time.RFC3339)

		mentions = append(mentions, models.Mention{
			ID:        "demo_" + timestamp,
			Text:      text,
			Source:    models.SourceDemo,
			URL:       fmt.Sprintf("https://example.com/demo/%d", now.Unix()-int64(i*60)),
			Timestamp: timestamp,
			Sentiment: d.classifier.Classify(text),
		})
	}

	return mentions, nil
}
