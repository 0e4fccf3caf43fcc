package usecase

import (
	"context"
	"testing"
	"time"

	"skywatch-service/internal/domain/entity"

	"github.com/stretchr/testify/require"
)

func newTestScheduler(source *fakeSource, alertRepo *fakeAlertRepo) (*Scheduler, *fakeHistoryRepo) {
	routeRepo := &fakeRouteRepo{pairs: testPairs()}
	historyRepo := &fakeHistoryRepo{}
	orchestrator := NewFetchOrchestrator(routeRepo, historyRepo, source, 4, time.Minute, testLogger())
	engine := NewAlertEngine(alertRepo, testLogger())
	return NewScheduler(orchestrator, engine, time.Hour, nil, testLogger()), historyRepo
}

func TestRunFetchCycle_RejectsConcurrentTrigger(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, len(testPairs()))
	source := &fakeSource{fetch: func(ctx context.Context, _ entity.Route, _ string) (*entity.PriceQuote, error) {
		started <- struct{}{}
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return staticQuote("300"), nil
	}}
	scheduler, _ := newTestScheduler(source, newFakeAlertRepo())

	type result struct {
		summary *entity.FetchSummary
		err     error
	}
	done := make(chan result, 1)
	go func() {
		summary, err := scheduler.RunFetchCycle(context.Background())
		done <- result{summary, err}
	}()

	// Wait until the first cycle is demonstrably mid-run.
	<-started
	require.Equal(t, entity.SchedulerRunning, scheduler.Status().State)

	_, err := scheduler.RunFetchCycle(context.Background())
	require.ErrorIs(t, err, ErrRunInProgress)

	close(release)
	first := <-done
	require.NoError(t, first.err)
	require.Equal(t, len(testPairs()), first.summary.Succeeded)
	require.Equal(t, entity.SchedulerIdle, scheduler.Status().State)
}

func TestRunFetchCycle_RecordsStatus(t *testing.T) {
	source := &fakeSource{fetch: func(_ context.Context, _ entity.Route, _ string) (*entity.PriceQuote, error) {
		return staticQuote("300"), nil
	}}
	scheduler, _ := newTestScheduler(source, newFakeAlertRepo())

	require.Equal(t, entity.SchedulerIdle, scheduler.Status().State)
	require.Nil(t, scheduler.Status().LastRunAt)

	summary, err := scheduler.RunFetchCycle(context.Background())
	require.NoError(t, err)
	require.Equal(t, len(testPairs()), summary.Succeeded)

	status := scheduler.Status()
	require.Equal(t, entity.SchedulerIdle, status.State)
	require.NotNil(t, status.LastRunAt)
	require.NotNil(t, status.NextRunAt)
	require.Equal(t, summary, status.LastRunSummary)
	require.True(t, status.NextRunAt.After(*status.LastRunAt))
}

func TestRunFetchCycle_EvaluatesAlerts(t *testing.T) {
	source := &fakeSource{fetch: func(_ context.Context, route entity.Route, airlineCode string) (*entity.PriceQuote, error) {
		if route.ID == 1 && airlineCode == "AA" {
			return staticQuote("199"), nil
		}
		return staticQuote("450"), nil
	}}
	alertRepo := newFakeAlertRepo(usdAlert("cheap-lhr", 1, "", "200"))
	scheduler, _ := newTestScheduler(source, alertRepo)

	summary, err := scheduler.RunFetchCycle(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.AlertsTriggered)
	require.False(t, alertRepo.alerts["cheap-lhr"].Active)
}

func TestRunFetchCycle_RunLevelFailureKeepsSchedulerIdle(t *testing.T) {
	source := &fakeSource{fetch: func(_ context.Context, _ entity.Route, _ string) (*entity.PriceQuote, error) {
		return staticQuote("300"), nil
	}}
	routeRepo := &fakeRouteRepo{err: context.DeadlineExceeded}
	orchestrator := NewFetchOrchestrator(routeRepo, &fakeHistoryRepo{}, source, 4, time.Minute, testLogger())
	scheduler := NewScheduler(orchestrator, NewAlertEngine(newFakeAlertRepo(), testLogger()), time.Hour, nil, testLogger())

	summary, err := scheduler.RunFetchCycle(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, summary.Error)

	// Still idle and ready for the next tick.
	require.Equal(t, entity.SchedulerIdle, scheduler.Status().State)
	_, err = scheduler.RunFetchCycle(context.Background())
	require.NoError(t, err)
}
