package repository

import (
	"context"
	"time"

	"skywatch-service/internal/domain/entity"
)

// HistoryFilter narrows a price history query. Zero values mean "no
// constraint".
type HistoryFilter struct {
	RouteID     uint
	AirlineCode string
	From        time.Time
	To          time.Time
}

// HistoryRepository defines the interface for the append-only price
// observation store.
type HistoryRepository interface {
	// AppendBatch stores all observations of one fetch run and returns
	// their storage ids in input order. Observations are never updated
	// or deleted afterwards.
	AppendBatch(ctx context.Context, observations []*entity.PriceObservation) ([]string, error)
	// Query returns observations matching the filter, ordered by
	// observedAt ascending with insertion order breaking ties.
	Query(ctx context.Context, filter HistoryFilter) ([]*entity.PriceObservation, error)
}
