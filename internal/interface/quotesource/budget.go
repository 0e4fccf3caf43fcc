package quotesource

import (
	"context"
	"sync/atomic"

	"skywatch-service/internal/domain/entity"
	"skywatch-service/internal/domain/repository"
)

// CallBudget wraps a quote source and enforces a monthly call budget
// (the Amadeus free tier allows 500 calls per month). Only successful
// calls are counted. Once the budget is spent, further calls fail fast
// with BudgetExhausted and never reach the wrapped source.
type CallBudget struct {
	source repository.QuoteSource
	limit  int64
	used   atomic.Int64
}

// NewCallBudget wraps source with a budget of limit successful calls.
// limit <= 0 disables enforcement.
func NewCallBudget(source repository.QuoteSource, limit int) *CallBudget {
	return &CallBudget{
		source: source,
		limit:  int64(limit),
	}
}

// Name returns the wrapped source's tag
func (b *CallBudget) Name() string {
	return b.source.Name()
}

// Fetch forwards to the wrapped source while budget remains
func (b *CallBudget) Fetch(ctx context.Context, route entity.Route, airlineCode string) (*entity.PriceQuote, error) {
	if b.limit > 0 && b.used.Load() >= b.limit {
		return nil, entity.NewQuoteError(entity.ReasonBudgetExhausted, nil)
	}

	quote, err := b.source.Fetch(ctx, route, airlineCode)
	if err != nil {
		return nil, err
	}

	b.used.Add(1)
	return quote, nil
}

// Remaining reports how many successful calls are left in the budget.
func (b *CallBudget) Remaining() int64 {
	if b.limit <= 0 {
		return -1
	}
	remaining := b.limit - b.used.Load()
	if remaining < 0 {
		return 0
	}
	return remaining
}
