package monitoring

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mentiontracker/brand-mentions/internal/config"
	"github.com/mentiontracker/brand-mentions/internal/metrics"
	"github.com/mentiontracker/brand-mentions/internal/models"
	"github.com/mentiontracker/brand-mentions/internal/notifications"
	"github.com/mentiontracker/brand-mentions/internal/sources"
	"github.com/mentiontracker/brand-mentions/internal/storage"
	"github.com/mentiontracker/brand-mentions/internal/store"
	"github.com/sirupsen/logrus"
)

// Service runs fetch cycles against sources and feeds the mention store
type Service struct {
	config              *config.Config
	store               store.MentionStore
	archive             storage.Archive
	notificationService notifications.NotificationInterface
	clock               clockwork.Clock
}

// RunSummary describes one completed fetch cycle
type RunSummary struct {
	RunID    string        `json:"run_id"`
	Source   string        `json:"source"`
	Fetched  int           `json:"fetched"`
	Inserted int           `json:"inserted"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// NewService creates a new monitoring service. archive and
// notificationService may be nil; a nil clock uses the real clock.
func NewService(cfg *config.Config, mentionStore store.MentionStore, archive storage.Archive, notificationService notifications.NotificationInterface, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		config:              cfg,
		store:               mentionStore,
		archive:             archive,
		notificationService: notificationService,
		clock:               clock,
	}
}

// Store returns the mention store the service writes to
func (s *Service) Store() store.MentionStore {
	return s.store
}

// RunSource performs one tick for src: fetch, insert with dedup, archive
// what was new. Failures never escape; they are logged and reported in the
// summary.
func (s *Service) RunSource(ctx context.Context, src sources.Source) RunSummary {
	runID := uuid.NewString()
	log := logrus.WithFields(logrus.Fields{
		"source": src.GetName(),
		"run_id": runID,
	})
	log.Debug("Starting fetch cycle")

	result := sources.Fetch(ctx, src, s.config.BrandQuery, s.limitFor(src.Kind()))

	summary := RunSummary{
		RunID:    runID,
		Source:   result.Source,
		Fetched:  len(result.Mentions),
		Duration: result.Duration,
	}

	metrics.FetchDuration.WithLabelValues(result.Source).Observe(result.Duration.Seconds())
	if result.Err != nil {
		summary.Error = result.Err.Error()
		metrics.FetchesTotal.WithLabelValues(result.Source, "error").Inc()
		return summary
	}
	metrics.FetchesTotal.WithLabelValues(result.Source, "success").Inc()
	metrics.MentionsFetched.WithLabelValues(result.Source).Add(float64(len(result.Mentions)))

	var inserted []models.Mention
	for _, mention := range result.Mentions {
		if s.store.Insert(mention) {
			inserted = append(inserted, mention)
			metrics.MentionsStored.WithLabelValues(result.Source, string(mention.Sentiment)).Inc()
		}
	}
	summary.Inserted = len(inserted)
	metrics.StoreSize.Set(float64(s.store.Len()))

	if s.archive != nil && len(inserted) > 0 {
		name := storage.ArchiveName(result.Source, s.clock.Now(), runID)
		if err := storage.ArchiveMentions(ctx, s.archive, name, inserted); err != nil {
			log.WithError(err).Warn("Failed to archive mentions")
		}
	}

	log.WithFields(logrus.Fields{
		"fetched":  summary.Fetched,
		"inserted": summary.Inserted,
	}).Infof("Fetch cycle completed in %v", summary.Duration)

	return summary
}

func (s *Service) limitFor(kind models.SourceKind) int {
	switch kind {
	case models.SourceNews:
		return s.config.NewsPageSize
	case models.SourceDiscussion:
		return s.config.RedditLimit
	default:
		return 0
	}
}
