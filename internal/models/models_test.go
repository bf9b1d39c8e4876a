package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStats_Add(t *testing.T) {
	var stats Stats
	stats.Add(SentimentPositive)
	stats.Add(SentimentNegative)
	stats.Add(SentimentNeutral)
	stats.Add(SentimentPositive)

	assert.Equal(t, Stats{
		TotalMentions:    4,
		PositiveMentions: 2,
		NegativeMentions: 1,
		NeutralMentions:  1,
	}, stats)
}

func TestSentiment_Valid(t *testing.T) {
	assert.True(t, SentimentPositive.Valid())
	assert.True(t, SentimentNegative.Valid())
	assert.True(t, SentimentNeutral.Valid())
	assert.False(t, Sentiment("mixed").Valid())
	assert.False(t, Sentiment("").Valid())
}

func TestSourceKind_Valid(t *testing.T) {
	assert.True(t, SourceNews.Valid())
	assert.True(t, SourceDiscussion.Valid())
	assert.True(t, SourceDemo.Valid())
	assert.False(t, SourceKind("reddit").Valid())
}

func TestMention_Time(t *testing.T) {
	at, ok := Mention{Timestamp: "2024-03-01T10:00:00.900Z"}.Time()
	assert.True(t, ok)
	assert.Equal(t, 900*time.Millisecond, time.Duration(at.Nanosecond()))

	_, ok = Mention{Timestamp: "yesterday"}.Time()
	assert.False(t, ok)
}

func TestNewerFirst(t *testing.T) {
	mentions := []Mention{
		{ID: "bad", Timestamp: "yesterday"},
		{ID: "second", Timestamp: "2024-03-01T10:00:00Z"},
		{ID: "offset", Timestamp: "2024-03-01T11:00:00+01:00"},
		{ID: "newest", Timestamp: "2024-03-01T10:00:00.5Z"},
		{ID: "tie", Timestamp: "2024-03-01T10:00:00Z"},
	}

	NewerFirst(mentions)

	got := make([]string, 0, len(mentions))
	for _, m := range mentions {
		got = append(got, m.ID)
	}
	// 11:00+01:00 is 10:00Z, so it ties with "second" and "tie" and keeps its place between them
	assert.Equal(t, []string{"newest", "second", "offset", "tie", "bad"}, got)
}
