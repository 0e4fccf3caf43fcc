package quotesource

import (
	"context"
	"time"

	"skywatch-service/internal/domain/entity"
	"skywatch-service/internal/interface/amadeus"
	"skywatch-service/pkg/logger"
)

// How far out the search window departs. Near-term fares move the most,
// which is what alert holders care about.
const defaultDaysAhead = 14

// AmadeusSource adapts the Amadeus search client to the QuoteSource
// contract: one call, one cheapest qualifying fare.
type AmadeusSource struct {
	client    *amadeus.Client
	daysAhead int
	logger    logger.Logger
}

// NewAmadeusSource creates the live quote source
func NewAmadeusSource(client *amadeus.Client, logger logger.Logger) *AmadeusSource {
	return &AmadeusSource{
		client:    client,
		daysAhead: defaultDaysAhead,
		logger:    logger,
	}
}

// Name returns the source tag recorded on observations
func (s *AmadeusSource) Name() string {
	return entity.SourceLive
}

// Fetch searches the route restricted to one airline and maps the
// cheapest fare operated by that airline to a quote. An empty result
// set is a normal NoFaresFound, not a fatal error.
func (s *AmadeusSource) Fetch(ctx context.Context, route entity.Route, airlineCode string) (*entity.PriceQuote, error) {
	departureDate := time.Now().UTC().AddDate(0, 0, s.daysAhead).Format("2006-01-02")

	offers, err := s.client.SearchFlightOffers(ctx, route.Origin, route.Destination, departureDate, []string{airlineCode})
	if err != nil {
		return nil, err
	}

	var cheapest *amadeus.FlightOffer
	for i := range offers {
		offer := &offers[i]
		if offer.AirlineCode != airlineCode {
			continue
		}
		if cheapest == nil || offer.Price.LessThan(cheapest.Price) {
			cheapest = offer
		}
	}

	if cheapest == nil {
		return nil, entity.NewQuoteError(entity.ReasonNoFaresFound, nil)
	}

	return &entity.PriceQuote{
		Price:      cheapest.Price,
		Currency:   cheapest.Currency,
		CabinClass: cheapest.CabinClass,
		Source:     entity.SourceLive,
	}, nil
}
