package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Observation source tags
const (
	SourceMock = "mock"
	SourceLive = "live"
)

// CabinEconomy is the only cabin class the pipeline monitors
const CabinEconomy = "ECONOMY"

// PriceQuote is the raw result of a single quote source call, before it
// is anchored to a route and an as-of timestamp.
type PriceQuote struct {
	Price      decimal.Decimal
	Currency   string
	CabinClass string
	Source     string
}

// PriceObservation is one stored price point for a (route, airline) pair.
// Observations are append-only: once written they are never updated or
// deleted by the pipeline. ObservedAt is the shared as-of timestamp of
// the fetch run that produced the observation, not the wall-clock instant
// of the individual quote call.
type PriceObservation struct {
	ID          string
	RouteID     uint
	AirlineCode string
	Price       decimal.Decimal
	Currency    string
	CabinClass  string
	ObservedAt  time.Time
	Source      string
}
