package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"skywatch-service/internal/domain/entity"
	"skywatch-service/pkg/logger"
	"skywatch-service/pkg/metrics"
)

// ErrRunInProgress is returned when a fetch cycle is requested while
// another one is still running.
var ErrRunInProgress = errors.New("fetch cycle already in progress")

// Scheduler drives the fetch pipeline: a background ticker and the
// manual trigger both funnel into RunFetchCycle, which is guarded so at
// most one cycle runs at a time. A trigger that arrives mid-run is
// rejected, never queued.
type Scheduler struct {
	orchestrator *FetchOrchestrator
	engine       *AlertEngine
	interval     time.Duration
	metrics      *metrics.Metrics
	logger       logger.Logger

	mu          sync.Mutex
	running     bool
	lastRunAt   *time.Time
	lastSummary *entity.FetchSummary
	nextRunAt   *time.Time
}

// NewScheduler creates a new scheduler. metrics may be nil in tests.
func NewScheduler(
	orchestrator *FetchOrchestrator,
	engine *AlertEngine,
	interval time.Duration,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *Scheduler {
	return &Scheduler{
		orchestrator: orchestrator,
		engine:       engine,
		interval:     interval,
		metrics:      metrics,
		logger:       logger,
	}
}

// Start runs the periodic fetch loop until ctx is canceled. Call in a
// goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.setNextRun(time.Now().UTC().Add(s.interval))
	s.logger.Info("Scheduler started", "interval", s.interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped")
			return
		case <-ticker.C:
			if _, err := s.RunFetchCycle(ctx); err != nil && !errors.Is(err, ErrRunInProgress) {
				s.logger.Error("Scheduled fetch cycle failed", "error", err)
			}
		}
	}
}

// RunFetchCycle executes one fetch-evaluate unit: orchestrator run,
// history append, alert evaluation. It is the single code path shared
// by the ticker and the manual trigger. Run-level failures are folded
// into the summary; the scheduler stays ready for the next tick.
func (s *Scheduler) RunFetchCycle(ctx context.Context) (*entity.FetchSummary, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrRunInProgress
	}
	s.running = true
	s.mu.Unlock()

	startedAt := time.Now().UTC()

	summary, observations, err := s.orchestrator.Run(ctx)
	if err != nil {
		s.logger.Error("Fetch run failed", "error", err)
		summary.Error = err.Error()
	} else if len(observations) > 0 {
		triggered, err := s.engine.Evaluate(ctx, observations)
		if err != nil {
			s.logger.Error("Alert evaluation failed", "error", err)
			summary.Error = err.Error()
		}
		summary.AlertsTriggered = triggered
	}

	summary.Duration = time.Since(startedAt)

	if s.metrics != nil {
		failures := make(map[string]int, len(summary.Failures))
		for _, f := range summary.Failures {
			failures[string(f.Reason)]++
		}
		s.metrics.RecordSummary(summary.ObservationsCreated, summary.AlertsTriggered, failures, summary.Duration.Seconds())
	}

	next := time.Now().UTC().Add(s.interval)
	s.mu.Lock()
	s.running = false
	s.lastRunAt = &startedAt
	s.lastSummary = summary
	s.nextRunAt = &next
	s.mu.Unlock()

	return summary, nil
}

// Status reports the scheduler's observable state.
func (s *Scheduler) Status() entity.SchedulerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := entity.SchedulerIdle
	if s.running {
		state = entity.SchedulerRunning
	}
	return entity.SchedulerStatus{
		State:          state,
		LastRunAt:      s.lastRunAt,
		LastRunSummary: s.lastSummary,
		NextRunAt:      s.nextRunAt,
	}
}

func (s *Scheduler) setNextRun(t time.Time) {
	s.mu.Lock()
	s.nextRunAt = &t
	s.mu.Unlock()
}
