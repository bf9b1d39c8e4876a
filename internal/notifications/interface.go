package notifications

import (
	"context"

	"github.com/mentiontracker/brand-mentions/internal/models"
)

// NotificationInterface defines the contract for notification services
type NotificationInterface interface {
	SendAlert(ctx context.Context, alert *models.Alert) error
}
