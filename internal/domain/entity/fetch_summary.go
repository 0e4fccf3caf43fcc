package entity

import "time"

// PairFailure records one (route, airline) pair that produced no
// observation during a fetch run.
type PairFailure struct {
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	AirlineCode string      `json:"airlineCode"`
	Reason      QuoteReason `json:"reason"`
}

// FetchSummary is the structured result of one fetch cycle. The same
// summary is returned whether the cycle was started by the scheduler
// tick or by a manual trigger.
type FetchSummary struct {
	StartedAt           time.Time     `json:"startedAt"`
	Duration            time.Duration `json:"duration"`
	Succeeded           int           `json:"succeeded"`
	Failed              int           `json:"failed"`
	Failures            []PairFailure `json:"failures,omitempty"`
	ObservationsCreated int           `json:"observationsCreated"`
	AlertsTriggered     int           `json:"alertsTriggered"`
	Error               string        `json:"error,omitempty"`
}

// Scheduler states
type SchedulerState string

const (
	SchedulerIdle    SchedulerState = "idle"
	SchedulerRunning SchedulerState = "running"
)

// SchedulerStatus is the observable state of the background scheduler.
type SchedulerStatus struct {
	State          SchedulerState `json:"state"`
	LastRunAt      *time.Time     `json:"lastRunAt,omitempty"`
	LastRunSummary *FetchSummary  `json:"lastRunSummary,omitempty"`
	NextRunAt      *time.Time     `json:"nextRunAt,omitempty"`
}
