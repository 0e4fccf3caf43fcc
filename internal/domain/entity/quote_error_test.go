package entity

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuoteReasonOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want QuoteReason
	}{
		{"quote error", NewQuoteError(ReasonNoFaresFound, nil), ReasonNoFaresFound},
		{"wrapped quote error", fmt.Errorf("fetch LHR-JFK: %w", NewQuoteError(ReasonRateLimited, nil)), ReasonRateLimited},
		{"deadline", context.DeadlineExceeded, ReasonTimeout},
		{"canceled", context.Canceled, ReasonTimeout},
		{"unclassified", errors.New("connection reset"), ReasonUpstreamError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, QuoteReasonOf(tc.err))
		})
	}
}

func TestAlertMatchesAirline(t *testing.T) {
	anyAirline := &Alert{RouteID: 1}
	require.True(t, anyAirline.MatchesAirline("BA"))
	require.True(t, anyAirline.MatchesAirline("AA"))

	baOnly := &Alert{RouteID: 1, AirlineCode: "BA"}
	require.True(t, baOnly.MatchesAirline("BA"))
	require.False(t, baOnly.MatchesAirline("AA"))
}
