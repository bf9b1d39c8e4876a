package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mentiontracker/brand-mentions/internal/models"
)

// ArchiveName returns the object name for one batch from one source
func ArchiveName(source string, at time.Time, runID string) string {
	at = at.UTC()
	return fmt.Sprintf("mentions/%s/%s/%s-%s.json", source, at.Format("2006/01/02"), at.Format("150405"), runID)
}

// ArchiveMentions writes mentions as a JSON array. Empty batches are skipped.
func ArchiveMentions(ctx context.Context, archive Archive, name string, mentions []models.Mention) error {
	if archive == nil || len(mentions) == 0 {
		return nil
	}

	data, err := json.Marshal(mentions)
	if err != nil {
		return fmt.Errorf("failed to marshal mentions: %w", err)
	}

	return archive.Store(ctx, name, data)
}
