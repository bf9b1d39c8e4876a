package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/mentiontracker/brand-mentions/internal/models"
	"github.com/sirupsen/logrus"
)

// FetchResult is the outcome of one fetch against one source. Mentions is
// always empty when Err is set.
type FetchResult struct {
	Source   string
	Kind     models.SourceKind
	Mentions []models.Mention
	Err      error
	Duration time.Duration
}

// Fetch is the adapter boundary: it runs src once, logs any failure and
// never panics, so one bad provider cannot take down a scheduler tick.
func Fetch(ctx context.Context, src Source, query string, limit int) (result FetchResult) {
	start := time.Now()
	result = FetchResult{Source: src.GetName(), Kind: src.Kind()}
	log := logrus.WithField("source", result.Source)

	defer func() {
		if r := recover(); r != nil {
			result.Mentions = nil
			result.Err = fmt.Errorf("%s source panicked: %v", result.Source, r)
			log.Errorf("Recovered from panic while fetching: %v", r)
		}
		result.Duration = time.Since(start)
	}()

	if !src.IsEnabled() {
		log.Debug("Source disabled - missing credentials")
		result.Err = ErrDisabled
		return result
	}

	mentions, err := src.FetchMentions(ctx, query, limit)
	if err != nil {
		log.WithError(err).Error("Failed to fetch mentions")
		result.Err = err
		return result
	}

	log.WithField("count", len(mentions)).Infof("Fetched %d mentions from %s", len(mentions), result.Source)
	result.Mentions = mentions
	return result
}
