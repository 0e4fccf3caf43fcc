package repository

import (
	"context"
	"time"

	"skywatch-service/internal/domain/entity"
)

// AlertRepository defines the interface for price alert operations
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	// ListActive returns all active alerts. routeID 0 means any route.
	ListActive(ctx context.Context, routeID uint) ([]*entity.Alert, error)
	// MarkTriggered deactivates an alert and records the triggering
	// observation. A no-op if the alert is already inactive, so an
	// alert can trigger at most once.
	MarkTriggered(ctx context.Context, alertID, observationID string, triggeredAt time.Time) error
}
