package monitoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mentiontracker/brand-mentions/internal/config"
	"github.com/mentiontracker/brand-mentions/internal/models"
	"github.com/mentiontracker/brand-mentions/internal/sentiment"
	"github.com/mentiontracker/brand-mentions/internal/sources"
	"github.com/mentiontracker/brand-mentions/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockArchive is a mock implementation of the archive interface
type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Store(ctx context.Context, name string, data []byte) error {
	args := m.Called(name, data)
	return args.Error(0)
}

// MockNotificationService is a mock implementation of the notification service
type MockNotificationService struct {
	mock.Mock
	lastCtx []context.Context
}

func (m *MockNotificationService) SendAlert(ctx context.Context, alert *models.Alert) error {
	m.lastCtx = append(m.lastCtx, ctx)
	args := m.Called(alert)
	return args.Error(0)
}

// MockSource is a mock implementation of a mention source
type MockSource struct {
	mock.Mock
	name string
	kind models.SourceKind
}

func (m *MockSource) GetName() string         { return m.name }
func (m *MockSource) Kind() models.SourceKind { return m.kind }
func (m *MockSource) IsEnabled() bool         { return true }

func (m *MockSource) FetchMentions(ctx context.Context, query string, limit int) ([]models.Mention, error) {
	args := m.Called(query, limit)
	mentions, _ := args.Get(0).([]models.Mention)
	return mentions, args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		BrandQuery:       "Apple",
		NewsPageSize:     20,
		RedditLimit:      10,
		SpikeRatio:       1.5,
		SpikeMinMentions: 3,
	}
}

func newsMention(id string, s models.Sentiment) models.Mention {
	return models.Mention{
		ID:        id,
		Text:      "text " + id,
		Source:    models.SourceNews,
		URL:       "https://example.com/" + id,
		Timestamp: "2024-03-01T10:00:00Z",
		Sentiment: s,
	}
}

func TestService_RunSource_InsertsAndDeduplicates(t *testing.T) {
	mentionStore := store.NewMemoryStore(0)
	src := &MockSource{name: "news", kind: models.SourceNews}
	src.On("FetchMentions", "Apple", 20).Return([]models.Mention{
		newsMention("news_1", models.SentimentPositive),
		newsMention("news_2", models.SentimentNegative),
	}, nil)

	service := NewService(testConfig(), mentionStore, nil, nil, nil)

	first := service.RunSource(context.Background(), src)
	assert.Equal(t, 2, first.Fetched)
	assert.Equal(t, 2, first.Inserted)
	assert.Empty(t, first.Error)
	assert.NotEmpty(t, first.RunID)

	second := service.RunSource(context.Background(), src)
	assert.Equal(t, 2, second.Fetched)
	assert.Equal(t, 0, second.Inserted)
	assert.NotEqual(t, first.RunID, second.RunID)

	assert.Equal(t, 2, mentionStore.Len())
	src.AssertExpectations(t)
}

func TestService_RunSource_FailureLeavesStoreUntouched(t *testing.T) {
	mentionStore := store.NewMemoryStore(0)
	mentionStore.Insert(newsMention("news_existing", models.SentimentNeutral))

	src := &MockSource{name: "reddit", kind: models.SourceDiscussion}
	src.On("FetchMentions", "Apple", 10).Return(nil, errors.New("connection reset"))

	service := NewService(testConfig(), mentionStore, nil, nil, nil)
	summary := service.RunSource(context.Background(), src)

	assert.Equal(t, "connection reset", summary.Error)
	assert.Equal(t, 0, summary.Inserted)
	assert.Equal(t, 1, mentionStore.Len())
}

func TestService_RunSource_EmptyBatch(t *testing.T) {
	mentionStore := store.NewMemoryStore(0)
	archive := &MockArchive{}

	src := &MockSource{name: "news", kind: models.SourceNews}
	src.On("FetchMentions", "Apple", 20).Return([]models.Mention{}, nil)

	service := NewService(testConfig(), mentionStore, archive, nil, nil)
	summary := service.RunSource(context.Background(), src)

	assert.Equal(t, 0, summary.Fetched)
	assert.Equal(t, 0, mentionStore.Len())
	archive.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
}

func TestService_RunSource_ArchivesOnlyNewMentions(t *testing.T) {
	mentionStore := store.NewMemoryStore(0)
	mentionStore.Insert(newsMention("news_1", models.SentimentPositive))

	archive := &MockArchive{}
	var archived []byte
	archive.On("Store", mock.AnythingOfType("string"), mock.Anything).
		Run(func(args mock.Arguments) { archived = args.Get(1).([]byte) }).
		Return(nil).Once()

	src := &MockSource{name: "news", kind: models.SourceNews}
	src.On("FetchMentions", "Apple", 20).Return([]models.Mention{
		newsMention("news_1", models.SentimentPositive),
		newsMention("news_2", models.SentimentNeutral),
	}, nil)

	service := NewService(testConfig(), mentionStore, archive, nil, nil)
	summary := service.RunSource(context.Background(), src)

	assert.Equal(t, 1, summary.Inserted)
	archive.AssertExpectations(t)
	assert.Contains(t, string(archived), "news_2")
	assert.NotContains(t, string(archived), `"news_1"`)
}

func TestService_RunSource_ArchiveFailureIsNotFatal(t *testing.T) {
	mentionStore := store.NewMemoryStore(0)
	archive := &MockArchive{}
	archive.On("Store", mock.Anything, mock.Anything).Return(errors.New("blob unavailable"))

	src := &MockSource{name: "news", kind: models.SourceNews}
	src.On("FetchMentions", "Apple", 20).Return([]models.Mention{newsMention("news_1", models.SentimentPositive)}, nil)

	service := NewService(testConfig(), mentionStore, archive, nil, nil)
	summary := service.RunSource(context.Background(), src)

	assert.Empty(t, summary.Error)
	assert.Equal(t, 1, summary.Inserted)
	assert.Equal(t, 1, mentionStore.Len())
}

func TestService_RunSource_StatsMatchList(t *testing.T) {
	mentionStore := store.NewMemoryStore(0)
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	demo := sources.NewDemoSource(sentiment.NewClassifier(nil), clock)

	service := NewService(testConfig(), mentionStore, nil, nil, clock)
	service.RunSource(context.Background(), demo)
	clock.Advance(10 * time.Minute)
	service.RunSource(context.Background(), demo)

	stats := mentionStore.CountBySentiment()
	assert.Equal(t, len(mentionStore.List()), stats.TotalMentions)
	assert.Equal(t, stats.TotalMentions, stats.PositiveMentions+stats.NegativeMentions+stats.NeutralMentions)
}

func TestBuildSources(t *testing.T) {
	classifier := sentiment.NewClassifier(nil)

	tests := []struct {
		name     string
		cfg      *config.Config
		expected []string
	}{
		{
			name:     "No credentials falls back to demo",
			cfg:      &config.Config{},
			expected: []string{"demo"},
		},
		{
			name:     "News only",
			cfg:      &config.Config{NewsAPIKey: "key"},
			expected: []string{"news"},
		},
		{
			name: "Both providers",
			cfg: &config.Config{
				NewsAPIKey:         "key",
				RedditClientID:     "id",
				RedditClientSecret: "secret",
			},
			expected: []string{"news", "reddit"},
		},
		{
			name:     "Demo mode alongside providers",
			cfg:      &config.Config{NewsAPIKey: "key", DemoMode: true},
			expected: []string{"news", "demo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var names []string
			for _, src := range BuildSources(tt.cfg, classifier, nil) {
				names = append(names, src.GetName())
			}
			require.Equal(t, tt.expected, names)
		})
	}
}
