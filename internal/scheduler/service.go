package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/mentiontracker/brand-mentions/internal/config"
	"github.com/mentiontracker/brand-mentions/internal/models"
	"github.com/mentiontracker/brand-mentions/internal/monitoring"
	"github.com/mentiontracker/brand-mentions/internal/sources"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const stopTimeout = 30 * time.Second

// Service handles scheduling of fetch cycles and spike checks
type Service struct {
	config            *config.Config
	monitoringService *monitoring.Service
	sources           []sources.Source
	cron              *cron.Cron
}

// NewService creates a new scheduler service. Each job skips a tick while
// its previous run is still going, so a slow provider delays its next fetch
// instead of piling up, and a panicking job is recovered.
func NewService(cfg *config.Config, monitoringService *monitoring.Service, srcs []sources.Source) *Service {
	logger := cron.PrintfLogger(logrus.StandardLogger())
	return &Service{
		config:            cfg,
		monitoringService: monitoringService,
		sources:           srcs,
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}
}

// Start runs every source once before returning, so the store has data
// before the first query, then begins the timer loop.
func (s *Service) Start() error {
	logrus.Infof("Running initial fetch for %d sources", len(s.sources))
	for _, src := range s.sources {
		s.runSource(src)
	}

	for _, src := range s.sources {
		src := src
		interval := s.intervalFor(src.Kind())
		if _, err := s.cron.AddFunc(everySpec(interval), func() {
			s.runSource(src)
		}); err != nil {
			return fmt.Errorf("failed to schedule %s: %w", src.GetName(), err)
		}
		logrus.Infof("Scheduled %s every %v", src.GetName(), interval)
	}

	if _, err := s.cron.AddFunc(everySpec(s.config.SpikeInterval), s.runSpikeCheck); err != nil {
		return fmt.Errorf("failed to schedule spike check: %w", err)
	}

	s.cron.Start()
	logrus.Infof("Scheduler started (spike check every %v)", s.config.SpikeInterval)
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Service) Stop() {
	if s.cron == nil {
		return
	}

	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
		logrus.Info("Scheduler stopped")
	case <-time.After(stopTimeout):
		logrus.Warn("Scheduler stop timed out waiting for running jobs")
	}
}

func (s *Service) runSource(src sources.Source) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.FetchTimeout)
	defer cancel()

	s.monitoringService.RunSource(ctx, src)
}

func (s *Service) runSpikeCheck() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.FetchTimeout)
	defer cancel()

	if _, err := s.monitoringService.CheckSpikes(ctx); err != nil {
		logrus.Errorf("Spike check failed: %v", err)
	}
}

func (s *Service) intervalFor(kind models.SourceKind) time.Duration {
	if kind == models.SourceNews {
		return s.config.NewsInterval
	}
	return s.config.DiscussionInterval
}

func everySpec(d time.Duration) string {
	return "@every " + d.String()
}
