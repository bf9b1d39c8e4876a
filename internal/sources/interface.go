package sources

import (
	"context"
	"errors"

	"github.com/mentiontracker/brand-mentions/internal/models"
)

var (
	// ErrDisabled is returned when a source is asked to fetch without credentials
	ErrDisabled = errors.New("source disabled")
	// ErrAuth is returned when a provider token exchange fails
	ErrAuth = errors.New("authentication failed")
)

// Source interface defines the contract for all data sources
type Source interface {
	GetName() string
	Kind() models.SourceKind
	IsEnabled() bool
	// FetchMentions issues a single best-effort query. Malformed items are
	// skipped; a transport or decode failure returns an error.
	FetchMentions(ctx context.Context, query string, limit int) ([]models.Mention, error)
}

// SentimentClassifier assigns a sentiment bucket to mention text
type SentimentClassifier interface {
	Classify(text string) models.Sentiment
}
