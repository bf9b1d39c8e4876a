package query

import (
	"github.com/mentiontracker/brand-mentions/internal/models"
	"github.com/mentiontracker/brand-mentions/internal/store"
)

// Filter narrows a mention listing. Zero values mean "no restriction".
type Filter struct {
	Limit     int
	Source    models.SourceKind
	Sentiment models.Sentiment
}

// Health is the liveness payload
type Health struct {
	Status   string `json:"status"`
	Mentions int    `json:"mentions"`
}

// Service answers read-only questions about stored mentions
type Service struct {
	store store.MentionStore
}

func NewService(mentionStore store.MentionStore) *Service {
	return &Service{store: mentionStore}
}

// Mentions returns stored mentions newest first. Mentions with equal
// timestamps keep their insertion order.
func (s *Service) Mentions(filter Filter) []models.Mention {
	all := s.store.List()

	mentions := all[:0]
	for _, m := range all {
		if filter.Source != "" && m.Source != filter.Source {
			continue
		}
		if filter.Sentiment != "" && m.Sentiment != filter.Sentiment {
			continue
		}
		mentions = append(mentions, m)
	}

	models.NewerFirst(mentions)

	if filter.Limit > 0 && len(mentions) > filter.Limit {
		mentions = mentions[:filter.Limit]
	}

	return mentions
}

func (s *Service) Stats() models.Stats {
	return s.store.CountBySentiment()
}

func (s *Service) Health() Health {
	return Health{Status: "healthy", Mentions: s.store.Len()}
}
