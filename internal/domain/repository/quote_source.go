package repository

import (
	"context"

	"skywatch-service/internal/domain/entity"
)

// QuoteSource produces one price quote per (route, airline) call. The
// mock and live variants share this contract and are selected by
// configuration at startup; a single fetch run never mixes variants.
// Failures are reported as *entity.QuoteError.
type QuoteSource interface {
	Name() string
	Fetch(ctx context.Context, route entity.Route, airlineCode string) (*entity.PriceQuote, error)
}
