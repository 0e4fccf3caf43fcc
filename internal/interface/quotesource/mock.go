package quotesource

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"skywatch-service/internal/domain/entity"
	"skywatch-service/pkg/logger"

	"github.com/shopspring/decimal"
)

// Jitter band applied to the derived base price.
const (
	jitterLow  = 0.88
	jitterHigh = 1.15
)

// Base one-way economy prices in USD per route. Unknown routes fall
// back to a bounded random base so the generator stays total.
var basePrices = map[string]float64{
	"LHR-JFK": 450, "JFK-LHR": 420,
	"LAX-NRT": 680, "NRT-LAX": 650,
	"SYD-SIN": 380, "SIN-SYD": 370,
	"LHR-HKG": 620, "HKG-LHR": 600,
	"DOH-LHR": 380, "LHR-DOH": 350,
	"JFK-LAX": 180, "LAX-JFK": 175,
	"MAD-JFK": 420, "JFK-MAD": 400,
	"HEL-NRT": 580, "NRT-HEL": 560,
	"SYD-LAX": 780, "LAX-SYD": 750,
	"LHR-SYD": 950, "SYD-LHR": 920,
	"AMM-LHR": 340,
	"KUL-NRT": 320,
	"CMB-SIN": 180,
	"CMN-JFK": 520,
}

// Some airlines price consistently above or below the route base.
var airlineMultiplier = map[string]float64{
	"AA": 1.00, "BA": 1.15, "CX": 1.05, "AY": 0.95,
	"IB": 0.90, "JL": 1.10, "MH": 0.85, "QF": 1.12,
	"QR": 1.20, "AT": 0.80, "RJ": 0.82, "UL": 0.78,
	"AS": 0.88, "FJ": 0.92,
}

// MockSource is the synthetic quote generator. It derives a base price
// from the route and airline tier and applies bounded random jitter, so
// repeated calls yield plausible but non-identical sequences. It never
// fails, which keeps the whole system operable without external
// dependencies.
type MockSource struct {
	latency time.Duration
	logger  logger.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockSource creates a synthetic quote source. latency optionally
// simulates network delay per call.
func NewMockSource(latency time.Duration, logger logger.Logger) *MockSource {
	return &MockSource{
		latency: latency,
		logger:  logger,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Name returns the source tag recorded on observations
func (s *MockSource) Name() string {
	return entity.SourceMock
}

// Fetch produces one synthetic quote. The error is always nil; the
// signature exists only to satisfy the QuoteSource contract.
func (s *MockSource) Fetch(ctx context.Context, route entity.Route, airlineCode string) (*entity.PriceQuote, error) {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.C:
		}
	}

	s.mu.Lock()
	base, ok := basePrices[route.Origin+"-"+route.Destination]
	if !ok {
		base = 200 + s.rng.Float64()*600
	}
	jitter := jitterLow + s.rng.Float64()*(jitterHigh-jitterLow)
	s.mu.Unlock()

	mult, ok := airlineMultiplier[airlineCode]
	if !ok {
		mult = 1.0
	}

	price := decimal.NewFromFloat(base * mult * jitter).Round(2)

	return &entity.PriceQuote{
		Price:      price,
		Currency:   "USD",
		CabinClass: entity.CabinEconomy,
		Source:     entity.SourceMock,
	}, nil
}

// BasePrice returns the pre-jitter price the generator derives for a
// pair. Exposed for verifying that generated quotes stay within the
// jitter band.
func BasePrice(route entity.Route, airlineCode string) (decimal.Decimal, bool) {
	base, ok := basePrices[route.Origin+"-"+route.Destination]
	if !ok {
		return decimal.Zero, false
	}
	mult, ok := airlineMultiplier[airlineCode]
	if !ok {
		mult = 1.0
	}
	return decimal.NewFromFloat(base * mult), true
}
