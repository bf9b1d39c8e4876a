package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mentiontracker/brand-mentions/internal/metrics"
	"github.com/mentiontracker/brand-mentions/internal/models"
	"github.com/sirupsen/logrus"
)

const spikeWindow = time.Hour

// SpikeReport is the result of comparing the last hour with the hour before
type SpikeReport struct {
	Current  int
	Previous int
	Spike    bool
	Recent   []models.Mention // mentions in the current window, newest first
}

// CheckSpikes compares mention volume in the last hour with the previous
// hour and sends an alert when it jumps. Mentions with unparseable
// timestamps are ignored. The returned alert is nil when there is no spike.
func (s *Service) CheckSpikes(ctx context.Context) (*models.Alert, error) {
	now := s.clock.Now().UTC()
	report := s.evaluateSpike(now)

	log := logrus.WithFields(logrus.Fields{
		"current":  report.Current,
		"previous": report.Previous,
	})

	if !report.Spike {
		log.Debug("No mention spike detected")
		return nil, nil
	}

	metrics.SpikesDetected.Inc()

	alert := &models.Alert{
		ID:        uuid.NewString(),
		Type:      "spike",
		Title:     fmt.Sprintf("%s mentions spike", s.config.BrandQuery),
		Message:   fmt.Sprintf("Mentions of %s rose from %d to %d in the last hour", s.config.BrandQuery, report.Previous, report.Current),
		Brand:     s.config.BrandQuery,
		Current:   report.Current,
		Previous:  report.Previous,
		Mentions:  report.Recent,
		CreatedAt: now,
	}

	log.Warn(alert.Message)

	if s.notificationService == nil {
		return alert, nil
	}

	if err := s.notificationService.SendAlert(ctx, alert); err != nil {
		return alert, fmt.Errorf("failed to send spike alert: %w", err)
	}

	return alert, nil
}

func (s *Service) evaluateSpike(now time.Time) SpikeReport {
	var report SpikeReport

	currentStart := now.Add(-spikeWindow)
	previousStart := now.Add(-2 * spikeWindow)

	for _, mention := range s.store.List() {
		ts, ok := mention.Time()
		if !ok {
			continue
		}

		switch {
		case ts.After(currentStart) && !ts.After(now):
			report.Current++
			report.Recent = append(report.Recent, mention)
		case ts.After(previousStart) && !ts.After(currentStart):
			report.Previous++
		}
	}

	models.NewerFirst(report.Recent)

	report.Spike = isSpike(report.Current, report.Previous, s.config.SpikeRatio, s.config.SpikeMinMentions)
	return report
}

// isSpike: with a previous baseline the current window must reach
// previous*ratio; from a zero baseline it must reach minMentions.
func isSpike(current, previous int, ratio float64, minMentions int) bool {
	if current == 0 {
		return false
	}
	if previous == 0 {
		return minMentions > 0 && current >= minMentions
	}
	return float64(current) >= float64(previous)*ratio
}
