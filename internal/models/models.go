package models

import (
	"sort"
	"time"
)

// Sentiment is the polarity bucket assigned to a mention
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Valid reports whether s is one of the three known buckets
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// SourceKind identifies where a mention came from
type SourceKind string

const (
	SourceNews       SourceKind = "news"
	SourceDiscussion SourceKind = "discussion"
	SourceDemo       SourceKind = "demo"
)

// Valid reports whether k is one of the known source kinds
func (k SourceKind) Valid() bool {
	switch k {
	case SourceNews, SourceDiscussion, SourceDemo:
		return true
	}
	return false
}

// Mention represents a single article or post referencing the tracked brand.
// Timestamp is kept as the ISO-8601 string the provider gave us (or that we
// derived from a unix time).
type Mention struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Source    SourceKind `json:"source"`
	URL       string     `json:"url"`
	Timestamp string     `json:"timestamp"`
	Sentiment Sentiment  `json:"sentiment"`
}

// Time parses Timestamp as RFC 3339, fractional seconds included
func (m Mention) Time() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, m.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// NewerFirst sorts mentions by parsed timestamp, newest first. Mentions
// whose timestamp does not parse go after the rest, ordered by string.
// Equal timestamps keep their relative order.
func NewerFirst(mentions []Mention) {
	type keyed struct {
		mention Mention
		at      time.Time
		ok      bool
	}

	items := make([]keyed, len(mentions))
	for i, m := range mentions {
		at, ok := m.Time()
		items[i] = keyed{mention: m, at: at, ok: ok}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case a.ok && b.ok:
			return a.at.After(b.at)
		case a.ok != b.ok:
			return a.ok
		default:
			return a.mention.Timestamp > b.mention.Timestamp
		}
	})

	for i := range items {
		mentions[i] = items[i].mention
	}
}

// Stats is the aggregate sentiment breakdown over stored mentions
type Stats struct {
	TotalMentions    int `json:"total_mentions"`
	PositiveMentions int `json:"positive_mentions"`
	NegativeMentions int `json:"negative_mentions"`
	NeutralMentions  int `json:"neutral_mentions"`
}

// Add counts one mention with the given sentiment
func (s *Stats) Add(sentiment Sentiment) {
	s.TotalMentions++
	switch sentiment {
	case SentimentPositive:
		s.PositiveMentions++
	case SentimentNegative:
		s.NegativeMentions++
	default:
		s.NeutralMentions++
	}
}

// Alert represents an urgent notification
type Alert struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // "spike", "info"
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Brand     string    `json:"brand"`
	Current   int       `json:"current"`  // mentions in the latest window
	Previous  int       `json:"previous"` // mentions in the window before it
	Mentions  []Mention `json:"mentions,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
