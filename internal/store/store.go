package store

import (
	"sync"

	"github.com/mentiontracker/brand-mentions/internal/models"
)

// MentionStore defines the contract for mention storage
type MentionStore interface {
	// Insert adds m unless a mention with the same ID is already stored.
	// It reports whether the mention was added.
	Insert(m models.Mention) bool
	// List returns a copy of all mentions in insertion order
	List() []models.Mention
	CountBySentiment() models.Stats
	Len() int
}

// MemoryStore keeps mentions for the lifetime of the process. Writers come
// from the scheduler, readers from HTTP handlers.
type MemoryStore struct {
	mu       sync.RWMutex
	index    map[string]struct{}
	mentions []models.Mention
	capacity int
}

// Ensure MemoryStore implements MentionStore
var _ MentionStore = (*MemoryStore)(nil)

// NewMemoryStore creates a store. A capacity of zero or less means unbounded;
// otherwise the oldest inserted mention is evicted once the cap is reached.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity < 0 {
		capacity = 0
	}
	return &MemoryStore{
		index:    make(map[string]struct{}),
		capacity: capacity,
	}
}

func (s *MemoryStore) Insert(m models.Mention) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[m.ID]; exists {
		return false
	}

	if s.capacity > 0 && len(s.mentions) >= s.capacity {
		evicted := s.mentions[0]
		delete(s.index, evicted.ID)
		// copy down rather than reslice so the backing array does not grow forever
		copy(s.mentions, s.mentions[1:])
		s.mentions = s.mentions[:len(s.mentions)-1]
	}

	s.index[m.ID] = struct{}{}
	s.mentions = append(s.mentions, m)
	return true
}

func (s *MemoryStore) List() []models.Mention {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Mention, len(s.mentions))
	copy(out, s.mentions)
	return out
}

func (s *MemoryStore) CountBySentiment() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats models.Stats
	for _, m := range s.mentions {
		stats.Add(m.Sentiment)
	}
	return stats
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mentions)
}
