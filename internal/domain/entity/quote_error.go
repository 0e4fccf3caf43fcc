package entity

import (
	"context"
	"errors"
	"fmt"
)

// QuoteReason classifies why a quote source could not produce a price
// for one (route, airline) pair. These failures are expected and stay
// isolated to the pair; they never abort a fetch run.
type QuoteReason string

const (
	ReasonNoFaresFound    QuoteReason = "NoFaresFound"
	ReasonRateLimited     QuoteReason = "RateLimited"
	ReasonBudgetExhausted QuoteReason = "BudgetExhausted"
	ReasonUpstreamError   QuoteReason = "UpstreamError"
	ReasonTimeout         QuoteReason = "Timeout"
)

// QuoteError is the per-pair "quote unavailable" error.
type QuoteError struct {
	Reason QuoteReason
	Err    error
}

func (e *QuoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("quote unavailable (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("quote unavailable (%s)", e.Reason)
}

func (e *QuoteError) Unwrap() error {
	return e.Err
}

// NewQuoteError wraps err with a quote failure reason. err may be nil.
func NewQuoteError(reason QuoteReason, err error) *QuoteError {
	return &QuoteError{Reason: reason, Err: err}
}

// QuoteReasonOf maps an arbitrary quote source error onto the failure
// taxonomy. Context expiry counts as Timeout, anything unclassified as
// UpstreamError.
func QuoteReasonOf(err error) QuoteReason {
	var qe *QuoteError
	if errors.As(err, &qe) {
		return qe.Reason
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ReasonTimeout
	}
	return ReasonUpstreamError
}
