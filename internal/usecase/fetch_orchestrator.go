package usecase

import (
	"context"
	"fmt"
	"time"

	"skywatch-service/internal/domain/entity"
	"skywatch-service/internal/domain/repository"
	"skywatch-service/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// FetchOrchestrator runs one pass over the full (route, airline)
// matrix: concurrent quote calls bounded by a concurrency limit, one
// shared as-of timestamp for the whole batch, and per-pair failure
// isolation. One failing pair never aborts the run.
type FetchOrchestrator struct {
	routeRepo   repository.RouteRepository
	historyRepo repository.HistoryRepository
	source      repository.QuoteSource
	concurrency int
	timeout     time.Duration
	logger      logger.Logger
}

// NewFetchOrchestrator creates a new fetch orchestrator
func NewFetchOrchestrator(
	routeRepo repository.RouteRepository,
	historyRepo repository.HistoryRepository,
	source repository.QuoteSource,
	concurrency int,
	timeout time.Duration,
	logger logger.Logger,
) *FetchOrchestrator {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &FetchOrchestrator{
		routeRepo:   routeRepo,
		historyRepo: historyRepo,
		source:      source,
		concurrency: concurrency,
		timeout:     timeout,
		logger:      logger,
	}
}

type pairResult struct {
	pair  entity.RoutePair
	quote *entity.PriceQuote
	err   error
}

// Run fetches a quote for every valid pair and appends the successful
// observations to history as one batch. The summary always accounts
// for every pair exactly once. A non-nil error indicates a run-level
// failure (pair enumeration or storage); the summary is still returned
// with whatever was counted.
func (o *FetchOrchestrator) Run(ctx context.Context) (*entity.FetchSummary, []*entity.PriceObservation, error) {
	startedAt := time.Now().UTC()
	summary := &entity.FetchSummary{StartedAt: startedAt}

	pairs, err := o.routeRepo.ListValidPairs(ctx)
	if err != nil {
		return summary, nil, fmt.Errorf("list route-airline pairs: %w", err)
	}

	o.logger.Info("Starting fetch run",
		"pairs", len(pairs),
		"source", o.source.Name(),
		"concurrency", o.concurrency)

	runCtx := ctx
	if o.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	// All observations of this run share the run's as-of timestamp,
	// regardless of when each quote call actually completes.
	asOf := startedAt

	results := make([]pairResult, len(pairs))
	g := &errgroup.Group{}
	g.SetLimit(o.concurrency)
	for i, pair := range pairs {
		i, pair := i, pair
		g.Go(func() error {
			results[i].pair = pair
			// Pairs still queued when the run deadline passes are
			// recorded as timed out without calling the source.
			if err := runCtx.Err(); err != nil {
				results[i].err = entity.NewQuoteError(entity.ReasonTimeout, err)
				return nil
			}
			quote, err := o.source.Fetch(runCtx, pair.Route, pair.AirlineCode)
			results[i].quote = quote
			results[i].err = err
			return nil
		})
	}
	g.Wait()

	var observations []*entity.PriceObservation
	for _, res := range results {
		if res.err != nil {
			reason := entity.QuoteReasonOf(res.err)
			summary.Failed++
			summary.Failures = append(summary.Failures, entity.PairFailure{
				Origin:      res.pair.Route.Origin,
				Destination: res.pair.Route.Destination,
				AirlineCode: res.pair.AirlineCode,
				Reason:      reason,
			})
			o.logger.Debug("Quote unavailable",
				"origin", res.pair.Route.Origin,
				"destination", res.pair.Route.Destination,
				"airline", res.pair.AirlineCode,
				"reason", reason,
				"error", res.err)
			continue
		}

		summary.Succeeded++
		observations = append(observations, &entity.PriceObservation{
			RouteID:     res.pair.Route.ID,
			AirlineCode: res.pair.AirlineCode,
			Price:       res.quote.Price,
			Currency:    res.quote.Currency,
			CabinClass:  res.quote.CabinClass,
			ObservedAt:  asOf,
			Source:      res.quote.Source,
		})
	}

	if len(observations) > 0 {
		// Parent ctx, not runCtx: a run that used its whole fetch
		// budget still gets to store what it collected.
		if _, err := o.historyRepo.AppendBatch(ctx, observations); err != nil {
			return summary, nil, fmt.Errorf("append observations: %w", err)
		}
		summary.ObservationsCreated = len(observations)
	}

	o.logger.Info("Fetch run complete",
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"observations", summary.ObservationsCreated)

	return summary, observations, nil
}
