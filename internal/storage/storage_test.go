package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mentiontracker/brand-mentions/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Store(ctx context.Context, name string, data []byte) error {
	args := m.Called(name, data)
	return args.Error(0)
}

func TestArchiveName(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 5, 7, 0, time.UTC)
	assert.Equal(t, "mentions/news/2024/03/01/090507-run1.json", ArchiveName("news", at, "run1"))
}

func TestArchiveMentions(t *testing.T) {
	mentions := []models.Mention{
		{ID: "news_1", Text: "hello", Source: models.SourceNews, Sentiment: models.SentimentNeutral},
	}
	expected, err := json.Marshal(mentions)
	require.NoError(t, err)

	archive := &MockArchive{}
	archive.On("Store", "batch.json", expected).Return(nil)

	require.NoError(t, ArchiveMentions(context.Background(), archive, "batch.json", mentions))
	archive.AssertExpectations(t)
}

func TestArchiveMentions_SkipsEmptyBatch(t *testing.T) {
	archive := &MockArchive{}

	require.NoError(t, ArchiveMentions(context.Background(), archive, "batch.json", nil))
	require.NoError(t, ArchiveMentions(context.Background(), nil, "batch.json", []models.Mention{{ID: "x"}}))
	archive.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
}

func TestLocalStorage_Store(t *testing.T) {
	dir := t.TempDir()
	local := NewLocalStorage(dir)

	err := local.Store(context.Background(), "mentions/news/2024/03/01/090507-run1.json", []byte(`[]`))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "mentions", "news", "2024", "03", "01", "090507-run1.json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestLocalStorage_StoreCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewLocalStorage(t.TempDir()).Store(ctx, "x.json", []byte(`[]`))
	assert.ErrorIs(t, err, context.Canceled)
}
