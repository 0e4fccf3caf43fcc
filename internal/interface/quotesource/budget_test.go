package quotesource

import (
	"context"
	"errors"
	"testing"

	"skywatch-service/internal/domain/entity"
	"skywatch-service/internal/domain/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	calls int
	err   error
}

func (s *stubSource) Name() string { return entity.SourceLive }

func (s *stubSource) Fetch(_ context.Context, _ entity.Route, _ string) (*entity.PriceQuote, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &entity.PriceQuote{
		Price:      decimal.NewFromInt(300),
		Currency:   "USD",
		CabinClass: entity.CabinEconomy,
		Source:     entity.SourceLive,
	}, nil
}

var _ repository.QuoteSource = (*CallBudget)(nil)

func TestCallBudget_FailsFastWhenExhausted(t *testing.T) {
	stub := &stubSource{}
	budget := NewCallBudget(stub, 2)
	route := entity.Route{ID: 1, Origin: "LHR", Destination: "JFK"}

	for i := 0; i < 2; i++ {
		_, err := budget.Fetch(context.Background(), route, "BA")
		require.NoError(t, err)
	}
	require.Equal(t, int64(0), budget.Remaining())

	_, err := budget.Fetch(context.Background(), route, "BA")
	var qe *entity.QuoteError
	require.ErrorAs(t, err, &qe)
	require.Equal(t, entity.ReasonBudgetExhausted, qe.Reason)
	require.Equal(t, 2, stub.calls, "exhausted budget must not reach the wrapped source")
}

func TestCallBudget_FailedCallsDoNotConsumeBudget(t *testing.T) {
	stub := &stubSource{err: entity.NewQuoteError(entity.ReasonNoFaresFound, nil)}
	budget := NewCallBudget(stub, 1)
	route := entity.Route{ID: 1, Origin: "LHR", Destination: "JFK"}

	for i := 0; i < 5; i++ {
		_, err := budget.Fetch(context.Background(), route, "BA")
		require.Error(t, err)
	}
	require.Equal(t, int64(1), budget.Remaining())
	require.Equal(t, 5, stub.calls)
}

func TestCallBudget_ZeroLimitDisablesEnforcement(t *testing.T) {
	stub := &stubSource{}
	budget := NewCallBudget(stub, 0)
	route := entity.Route{ID: 1, Origin: "LHR", Destination: "JFK"}

	for i := 0; i < 10; i++ {
		_, err := budget.Fetch(context.Background(), route, "BA")
		require.NoError(t, err)
	}
	require.Equal(t, int64(-1), budget.Remaining())
}

func TestCallBudget_PreservesWrappedErrors(t *testing.T) {
	wrapped := entity.NewQuoteError(entity.ReasonRateLimited, errors.New("429"))
	stub := &stubSource{err: wrapped}
	budget := NewCallBudget(stub, 10)

	_, err := budget.Fetch(context.Background(), entity.Route{Origin: "LHR", Destination: "JFK"}, "BA")
	require.Equal(t, entity.ReasonRateLimited, entity.QuoteReasonOf(err))
}
