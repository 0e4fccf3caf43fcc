package usecase

import (
	"context"
	"fmt"

	"skywatch-service/internal/domain/entity"
	"skywatch-service/internal/domain/repository"
	"skywatch-service/pkg/logger"
)

// AlertEngine evaluates active alerts against the batch of observations
// produced by one fetch run. The batch is processed as a whole, so the
// outcome never depends on the order observations arrived in.
type AlertEngine struct {
	alertRepo repository.AlertRepository
	logger    logger.Logger
}

// NewAlertEngine creates a new alert engine
func NewAlertEngine(alertRepo repository.AlertRepository, logger logger.Logger) *AlertEngine {
	return &AlertEngine{
		alertRepo: alertRepo,
		logger:    logger,
	}
}

// Evaluate checks every active alert against the batch and returns how
// many alerts were triggered. For an alert with several qualifying
// observations, the cheapest wins; ties go to the earlier observedAt,
// then to batch order.
func (e *AlertEngine) Evaluate(ctx context.Context, batch []*entity.PriceObservation) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	alerts, err := e.alertRepo.ListActive(ctx, 0)
	if err != nil {
		return 0, fmt.Errorf("list active alerts: %w", err)
	}
	if len(alerts) == 0 {
		return 0, nil
	}

	triggered := 0
	for _, alert := range alerts {
		best := e.bestQualifying(alert, batch)
		if best == nil {
			continue
		}

		if err := e.alertRepo.MarkTriggered(ctx, alert.ID, best.ID, best.ObservedAt); err != nil {
			e.logger.Error("Failed to mark alert triggered",
				"alertId", alert.ID,
				"observationId", best.ID,
				"error", err)
			continue
		}

		triggered++
		e.logger.Info("Price alert triggered",
			"alertId", alert.ID,
			"routeId", alert.RouteID,
			"airline", best.AirlineCode,
			"price", best.Price.String(),
			"target", alert.TargetPrice.String())
	}

	return triggered, nil
}

// bestQualifying returns the observation that should trigger the alert,
// or nil if none qualifies.
func (e *AlertEngine) bestQualifying(alert *entity.Alert, batch []*entity.PriceObservation) *entity.PriceObservation {
	var best *entity.PriceObservation
	for _, obs := range batch {
		if obs.RouteID != alert.RouteID || !alert.MatchesAirline(obs.AirlineCode) {
			continue
		}
		if obs.Currency != alert.Currency {
			// Configuration error: threshold and observation are not
			// comparable. Surface it, never convert silently.
			e.logger.Error("Alert currency mismatch",
				"alertId", alert.ID,
				"alertCurrency", alert.Currency,
				"observationCurrency", obs.Currency)
			continue
		}
		if obs.Price.GreaterThan(alert.TargetPrice) {
			continue
		}
		if best == nil ||
			obs.Price.LessThan(best.Price) ||
			(obs.Price.Equal(best.Price) && obs.ObservedAt.Before(best.ObservedAt)) {
			best = obs
		}
	}
	return best
}
