package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mentiontracker/brand-mentions/internal/config"
	"github.com/mentiontracker/brand-mentions/internal/models"
	"github.com/mentiontracker/brand-mentions/internal/monitoring"
	"github.com/mentiontracker/brand-mentions/internal/sources"
	"github.com/mentiontracker/brand-mentions/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	name  string
	kind  models.SourceKind
	calls int32
	err   error
}

func (c *countingSource) GetName() string         { return c.name }
func (c *countingSource) Kind() models.SourceKind { return c.kind }
func (c *countingSource) IsEnabled() bool         { return true }

func (c *countingSource) FetchMentions(ctx context.Context, query string, limit int) ([]models.Mention, error) {
	n := atomic.AddInt32(&c.calls, 1)
	if c.err != nil {
		return nil, c.err
	}
	ts := time.Date(2024, 1, 1, 0, 0, int(n), 0, time.UTC).Format(time.RFC3339)
	return []models.Mention{{
		ID:        c.name + "_" + ts,
		Text:      "mention",
		Source:    c.kind,
		Timestamp: ts,
		Sentiment: models.SentimentNeutral,
	}}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		BrandQuery:         "Apple",
		NewsInterval:       5 * time.Minute,
		DiscussionInterval: 7 * time.Minute,
		SpikeInterval:      time.Hour,
		FetchTimeout:       time.Second,
		SpikeRatio:         1.5,
		SpikeMinMentions:   5,
	}
}

func TestService_StartRunsInitialFetch(t *testing.T) {
	cfg := testConfig()
	mentionStore := store.NewMemoryStore(0)
	monitoringService := monitoring.NewService(cfg, mentionStore, nil, nil, nil)

	news := &countingSource{name: "news", kind: models.SourceNews}
	discussion := &countingSource{name: "reddit", kind: models.SourceDiscussion}

	service := NewService(cfg, monitoringService, []sources.Source{news, discussion})
	require.NoError(t, service.Start())
	defer service.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&news.calls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&discussion.calls))
	assert.Equal(t, 2, mentionStore.Len())

	// one job per source plus the spike check
	assert.Len(t, service.cron.Entries(), 3)
}

func TestService_FailingSourceDoesNotStopOthers(t *testing.T) {
	cfg := testConfig()
	mentionStore := store.NewMemoryStore(0)
	monitoringService := monitoring.NewService(cfg, mentionStore, nil, nil, nil)

	broken := &countingSource{name: "news", kind: models.SourceNews, err: errors.New("provider down")}
	healthy := &countingSource{name: "reddit", kind: models.SourceDiscussion}

	service := NewService(cfg, monitoringService, []sources.Source{broken, healthy})
	require.NoError(t, service.Start())
	defer service.Stop()

	assert.Equal(t, 1, mentionStore.Len())

	// run every scheduled job once by hand
	for _, entry := range service.cron.Entries() {
		entry.Job.Run()
	}

	assert.Equal(t, int32(2), atomic.LoadInt32(&broken.calls))
	assert.Equal(t, int32(2), atomic.LoadInt32(&healthy.calls))
	assert.Equal(t, 2, mentionStore.Len())
}

func TestService_intervalFor(t *testing.T) {
	service := NewService(testConfig(), nil, nil)

	assert.Equal(t, 5*time.Minute, service.intervalFor(models.SourceNews))
	assert.Equal(t, 7*time.Minute, service.intervalFor(models.SourceDiscussion))
	assert.Equal(t, 7*time.Minute, service.intervalFor(models.SourceDemo))
}

func TestEverySpec(t *testing.T) {
	assert.Equal(t, "@every 10m0s", everySpec(10*time.Minute))
	assert.Equal(t, "@every 1h0m0s", everySpec(time.Hour))
}
