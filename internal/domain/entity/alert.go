package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Alert is a user-defined price threshold on a route. AirlineCode is
// empty for any-airline alerts. An alert transitions from active to
// triggered at most once; the engine records the triggering observation
// and deactivates it in the same update.
type Alert struct {
	ID                      string
	RouteID                 uint
	AirlineCode             string
	TargetPrice             decimal.Decimal
	Currency                string
	Email                   string
	Active                  bool
	CreatedAt               time.Time
	TriggeredAt             *time.Time
	TriggeringObservationID string
}

// MatchesAirline reports whether an observation's airline satisfies the
// alert's airline constraint.
func (a *Alert) MatchesAirline(airlineCode string) bool {
	return a.AirlineCode == "" || a.AirlineCode == airlineCode
}
